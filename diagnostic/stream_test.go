package diagnostic_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillmark-go/quillmark/diagnostic"
)

func warn(msg string) diagnostic.Diagnostic {
	return diagnostic.Warn(diagnostic.CodeQuillTagMismatch, msg)
}

func TestNewStream(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		opts    []diagnostic.StreamOption
		wantCap int
	}{
		"default buffer size": {
			opts:    nil,
			wantCap: 64,
		},
		"custom buffer size": {
			opts:    []diagnostic.StreamOption{diagnostic.WithBufferSize(128)},
			wantCap: 128,
		},
		"clamp zero to one": {
			opts:    []diagnostic.StreamOption{diagnostic.WithBufferSize(0)},
			wantCap: 1,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stream := diagnostic.NewStream(tc.opts...)

			sub := stream.Subscribe()
			defer sub.Close()

			assert.Equal(t, tc.wantCap, cap(sub.C()))
		})
	}
}

func TestStreamPublish(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		numSubscribers int
	}{
		"single subscriber":    {numSubscribers: 1},
		"multiple subscribers": {numSubscribers: 3},
		"no subscribers":       {numSubscribers: 0},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stream := diagnostic.NewStream()

			subs := make([]*diagnostic.Subscription, tc.numSubscribers)
			for i := range subs {
				subs[i] = stream.Subscribe()
			}

			stream.Publish(warn("hello"))

			for _, sub := range subs {
				got := <-sub.C()
				assert.Equal(t, "hello", got.Message)
			}
		})
	}
}

func TestStreamRingBuffer(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		bufSize   int
		published []string
		want      []string
	}{
		"drops oldest on full": {
			bufSize:   2,
			published: []string{"a", "b", "c", "d"},
			want:      []string{"c", "d"},
		},
		"preserves newest entries": {
			bufSize:   3,
			published: []string{"1", "2", "3", "4", "5"},
			want:      []string{"3", "4", "5"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stream := diagnostic.NewStream(diagnostic.WithBufferSize(tc.bufSize))
			sub := stream.Subscribe()

			for _, msg := range tc.published {
				stream.Publish(warn(msg))
			}

			var got []string
			for range tc.want {
				got = append(got, (<-sub.C()).Message)
			}

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSubscriptionClose(t *testing.T) {
	t.Parallel()

	t.Run("stops delivery", func(t *testing.T) {
		t.Parallel()

		stream := diagnostic.NewStream()
		sub := stream.Subscribe()

		stream.Publish(warn("before"))

		sub.Close()

		// Trigger compaction.
		stream.Publish(warn("after"))

		// "before" was buffered prior to close; "after" should not appear.
		got := <-sub.C()
		assert.Equal(t, "before", got.Message)

		_, open := <-sub.C()
		assert.False(t, open, "channel should be closed after subscription close + compaction")
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		stream := diagnostic.NewStream()
		sub := stream.Subscribe()

		sub.Close()
		sub.Close() // should not panic

		stream.Publish(warn("x"))

		_, open := <-sub.C()
		assert.False(t, open)
	})
}

func TestStreamClose(t *testing.T) {
	t.Parallel()

	t.Run("closes all subscriptions", func(t *testing.T) {
		t.Parallel()

		stream := diagnostic.NewStream()
		sub1 := stream.Subscribe()
		sub2 := stream.Subscribe()

		stream.Close()

		_, open1 := <-sub1.C()
		_, open2 := <-sub2.C()

		assert.False(t, open1)
		assert.False(t, open2)
	})

	t.Run("publish after close is no-op", func(t *testing.T) {
		t.Parallel()

		stream := diagnostic.NewStream()
		sub := stream.Subscribe()

		stream.Close()
		stream.Publish(warn("ignored"))

		_, open := <-sub.C()
		assert.False(t, open)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		stream := diagnostic.NewStream()
		stream.Close()
		stream.Close()
	})

	t.Run("subscribe after close", func(t *testing.T) {
		t.Parallel()

		stream := diagnostic.NewStream()
		stream.Close()

		sub := stream.Subscribe()
		_, open := <-sub.C()
		assert.False(t, open, "subscription from closed stream should have closed channel")
	})
}

func TestStreamConcurrency(t *testing.T) {
	t.Parallel()

	stream := diagnostic.NewStream(diagnostic.WithBufferSize(8))

	var wg sync.WaitGroup

	for i := range 5 {
		wg.Go(func() {
			for j := range 100 {
				stream.Publish(warn(fmt.Sprintf("w%d-%d", i, j)))
			}
		})
	}

	for range 5 {
		wg.Go(func() {
			sub := stream.Subscribe()
			for range 20 {
				select {
				case <-sub.C():
				default:
				}
			}

			sub.Close()
		})
	}

	wg.Wait()
	stream.Close()
}
