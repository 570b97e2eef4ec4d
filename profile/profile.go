package profile

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds the CLI flag names for profiling configuration, so an
// embedding command can rename them without forking the package.
type Flags struct {
	CPU       string
	Heap      string
	Allocs    string
	Goroutine string
	Block     string
	Mutex     string

	MemRate       string
	BlockRate     string
	MutexFraction string
}

// Config holds profiling output paths and sampling rates. A zero-value
// Config has every profile disabled.
//
// Create instances with [NewConfig], register CLI flags with
// [Config.RegisterFlags], and bracket execution with a [Profiler] from
// [Config.NewProfiler].
type Config struct {
	Flags Flags

	// Output paths; empty disables the profile.
	CPU       string
	Heap      string
	Allocs    string
	Goroutine string
	Block     string
	Mutex     string

	// Sampling rates, bound to flags with pprof's conventional defaults.
	MemRate       int
	BlockRate     int
	MutexFraction int
}

// NewConfig creates a Config with default flag names and every profile
// disabled.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			CPU:           "cpu-profile",
			Heap:          "heap-profile",
			Allocs:        "allocs-profile",
			Goroutine:     "goroutine-profile",
			Block:         "block-profile",
			Mutex:         "mutex-profile",
			MemRate:       "mem-profile-rate",
			BlockRate:     "block-profile-rate",
			MutexFraction: "mutex-profile-fraction",
		},
	}
}

// RegisterFlags binds the Config to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPU, c.Flags.CPU, "", "write CPU profile to file")
	flags.StringVar(&c.Heap, c.Flags.Heap, "", "write heap profile to file")
	flags.StringVar(&c.Allocs, c.Flags.Allocs, "", "write allocs profile to file")
	flags.StringVar(&c.Goroutine, c.Flags.Goroutine, "", "write goroutine profile to file")
	flags.StringVar(&c.Block, c.Flags.Block, "", "write block profile to file")
	flags.StringVar(&c.Mutex, c.Flags.Mutex, "", "write mutex profile to file")

	flags.IntVar(&c.MemRate, c.Flags.MemRate, 524288, "memory profile rate (bytes per sample)")
	flags.IntVar(&c.BlockRate, c.Flags.BlockRate, 1, "block profile rate (nanoseconds)")
	flags.IntVar(&c.MutexFraction, c.Flags.MutexFraction, 1, "mutex profile fraction (1/N sampling)")
}

// RegisterCompletions registers shell completions for the rate flags,
// which take integers rather than paths. Path flags keep cobra's default
// file completion.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, name := range []string{c.Flags.MemRate, c.Flags.BlockRate, c.Flags.MutexFraction} {
		if err := cmd.RegisterFlagCompletionFunc(name, noFileComp); err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	return nil
}

// NewProfiler creates a [Profiler] over a snapshot of c.
func (c *Config) NewProfiler() *Profiler {
	return &Profiler{cfg: *c}
}

// Profiler brackets a command run: [Profiler.Start] configures sampling
// rates and begins CPU capture, [Profiler.Stop] ends capture and writes
// the snapshot profiles.
type Profiler struct {
	cfg     Config
	cpuFile *os.File
}

// Start configures runtime sampling rates and, if a CPU path is set,
// begins CPU profiling.
func (p *Profiler) Start() error {
	runtime.MemProfileRate = p.cfg.MemRate
	runtime.SetBlockProfileRate(p.cfg.BlockRate)
	runtime.SetMutexProfileFraction(p.cfg.MutexFraction)

	if p.cfg.CPU == "" {
		return nil
	}

	f, err := os.Create(p.cfg.CPU) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("creating CPU profile: %w", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()

		return fmt.Errorf("starting CPU profile: %w", err)
	}

	p.cpuFile = f

	return nil
}

// Stop ends CPU profiling, if running, and writes every enabled snapshot
// profile.
func (p *Profiler) Stop() error {
	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		if err := p.cpuFile.Close(); err != nil {
			return fmt.Errorf("closing CPU profile: %w", err)
		}

		p.cpuFile = nil
	}

	snapshots := []struct {
		name string
		path string
	}{
		{"heap", p.cfg.Heap},
		{"allocs", p.cfg.Allocs},
		{"goroutine", p.cfg.Goroutine},
		{"block", p.cfg.Block},
		{"mutex", p.cfg.Mutex},
	}

	for _, s := range snapshots {
		if s.path == "" {
			continue
		}

		if err := writeSnapshot(s.name, s.path); err != nil {
			return err
		}
	}

	return nil
}

// writeSnapshot writes one named pprof profile to path.
func writeSnapshot(name, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("unknown profile: %s", name)
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	if err := prof.WriteTo(f, 0); err != nil {
		_ = f.Close()

		return fmt.Errorf("write %s profile: %w", name, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s profile: %w", name, err)
	}

	return nil
}
