package inmemorylocker

import (
	"context"
	"sync"

	"github.com/arkade-os/offerd/internal/core/ports"
)

type entry struct {
	sem  chan struct{}
	refs int
}

type locker struct {
	lock sync.Mutex
	keys map[string]*entry
}

func NewLocker() ports.KeyLocker {
	return &locker{keys: make(map[string]*entry)}
}

func (l *locker) Lock(ctx context.Context, key string) (func(), error) {
	l.lock.Lock()
	e, ok := l.keys[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.keys[key] = e
	}
	e.refs++
	l.lock.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.release(key, e)
		})
	}, nil
}

func (l *locker) Close() {}

// release drops the entry once nobody holds or waits for the key.
func (l *locker) release(key string, e *entry) {
	l.lock.Lock()
	defer l.lock.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.keys, key)
	}
}
