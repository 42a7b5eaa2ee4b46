package ports

import "context"

// KeyLocker grants exclusive access to a key across concurrent settlements.
type KeyLocker interface {
	// Lock blocks until the key is acquired or ctx is done. The returned
	// func releases the key.
	Lock(ctx context.Context, key string) (func(), error)
	Close()
}
