package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hrpulse/evaluation-system/internal/core/domain"
)

type recordingStore struct {
	mu    sync.Mutex
	saved []*domain.Notification
	done  chan struct{}
}

func (s *recordingStore) Save(_ context.Context, n *domain.Notification) error {
	s.mu.Lock()
	s.saved = append(s.saved, n)
	s.mu.Unlock()
	s.done <- struct{}{}
	return nil
}

func TestDispatcher_ShardIndexStable(t *testing.T) {
	d := NewDispatcher(4, nil, zerolog.Nop())

	for _, id := range []string{"u_1", "u_2", "another-user", ""} {
		first := d.shardIndex(id)
		if first < 0 || first >= 4 {
			t.Fatalf("shard out of range for %q: %d", id, first)
		}
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(id); got != first {
				t.Fatalf("shard for %q not stable: %d then %d", id, first, got)
			}
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Errorf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestDispatcher_DeliversToStore(t *testing.T) {
	store := &recordingStore{done: make(chan struct{}, 1)}
	d := NewDispatcher(2, store, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Dispatch(&domain.Notification{RecipientID: "u_1", Type: domain.NotifyFinalized})

	select {
	case <-store.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification never reached the store")
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.saved) != 1 || store.saved[0].RecipientID != "u_1" {
		t.Fatalf("unexpected stored notifications: %+v", store.saved)
	}
}

// A full shard drops instead of blocking the caller.
func TestDispatcher_FullQueueDoesNotBlock(t *testing.T) {
	d := NewDispatcher(1, nil, zerolog.Nop())
	// Workers never started: the channel only drains by capacity.

	finished := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Dispatch(&domain.Notification{RecipientID: "u_1"})
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Errorf("expected exactly %d buffered, got %d", channelBuffer, got)
	}
}
