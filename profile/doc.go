// Package profile captures pprof data for CLI runs.
//
// Rendering a large document is CPU-bound in template composition and
// backend compilation, so the quillmark CLI exposes the standard pprof
// surface through flags: --cpu-profile captures the whole run, and the
// snapshot profiles (heap, allocs, goroutine, block, mutex) are written
// once at exit.
//
// Typical usage creates a [Config], registers flags, then brackets command
// execution with a [Profiler]:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	p := cfg.NewProfiler()
//	err := p.Start()
//	...
//	stopErr := p.Stop()
package profile
