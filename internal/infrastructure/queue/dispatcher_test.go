package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingPublisher struct {
	mu   sync.Mutex
	got  []string
	fail bool
}

func (p *recordingPublisher) Publish(_ context.Context, contentType string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, contentType)
	if p.fail {
		return errors.New("redis down")
	}
	return nil
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.got...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestDispatcher_PublishesInOrder(t *testing.T) {
	pub := &recordingPublisher{}
	d := NewDispatcher(3, pub, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 5; i++ {
		d.Revalidate(ctx, "users")
	}

	waitFor(t, func() bool { return len(pub.published()) == 5 })
	for _, ct := range pub.published() {
		if ct != "users" {
			t.Fatalf("unexpected content type %q", ct)
		}
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingPublisher{}, zerolog.Nop())

	first := d.shardIndex("users")
	for i := 0; i < 10; i++ {
		if d.shardIndex("users") != first {
			t.Fatalf("shard index changed between calls")
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recordingPublisher{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	pub := &recordingPublisher{}
	d := NewDispatcher(1, pub, zerolog.Nop())

	// Not started: nothing drains the buffer.
	for i := 0; i < channelBuffer+10; i++ {
		d.Revalidate(context.Background(), "users")
	}
	if n := len(d.workers[0]); n != channelBuffer {
		t.Fatalf("expected a full buffer of %d, got %d", channelBuffer, n)
	}
}

func TestDispatcher_PublishErrorKeepsWorkerAlive(t *testing.T) {
	pub := &recordingPublisher{fail: true}
	d := NewDispatcher(1, pub, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Revalidate(ctx, "users")
	d.Revalidate(ctx, "users")

	waitFor(t, func() bool { return len(pub.published()) == 2 })
}
