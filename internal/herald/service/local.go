package service

import (
	"context"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
)

// localLocker serves single-instance deployments without a shared lock store.
type localLocker struct {
	mu        sync.Mutex
	held      mapset.Set[uint64]
	processed mapset.Set[uint64]
}

var _ Locker = (*localLocker)(nil)

func newLocalLocker() *localLocker {
	return &localLocker{
		held:      mapset.NewThreadUnsafeSet[uint64](),
		processed: mapset.NewThreadUnsafeSet[uint64](),
	}
}

func (l *localLocker) TryAcquire(_ context.Context, height uint64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.processed.Contains(height) {
		return false, nil
	}
	return l.held.Add(height), nil
}

func (l *localLocker) Release(_ context.Context, height uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held.Remove(height)
	return nil
}

func (l *localLocker) MarkProcessed(_ context.Context, height uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held.Remove(height)
	l.processed.Add(height)
	return nil
}

type nopHealth struct{}

func (nopHealth) SetServing(bool) {}
