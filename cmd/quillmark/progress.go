package main

import (
	"os"

	charmlog "charm.land/log/v2"

	"github.com/quillmark-go/quillmark/diagnostic"
)

// startDiagnosticStream subscribes a [charmlog.Logger] to a fresh
// [diagnostic.Stream], pretty-printing each published Diagnostic as it
// arrives so a long compile streams its warnings live. The returned stop
// func closes the subscription and the stream.
func startDiagnosticStream() (*diagnostic.Stream, func()) {
	stream := diagnostic.NewStream(diagnostic.WithBufferSize(32))
	sub := stream.Subscribe()

	clog := charmlog.New(os.Stderr)
	clog.SetLevel(charmlog.InfoLevel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for d := range sub.C() {
			switch d.Severity {
			case diagnostic.Warning:
				clog.Warn(d.Message, "code", d.Code)
			case diagnostic.Note:
				clog.Info(d.Message, "code", d.Code)
			default:
				clog.Error(d.Message, "code", d.Code)
			}
		}
	}()

	return stream, func() {
		sub.Close()
		stream.Close()
		<-done
	}
}
