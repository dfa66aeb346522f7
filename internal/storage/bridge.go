package storage

import (
	"context"
	"log/slog"
	"sync"

	"github.com/zeity-dev/zeity/internal/store"
)

// Bridge mirrors store state into the durable KV surface. Each bound
// collection is seeded from its key once, then re-serialized after
// every store mutation by a per-binding writer goroutine. Writes are
// asynchronous and coalesce under load; the snapshot is taken at
// write time, so the last settled store state is always the one that
// ends up durable.
type Bridge struct {
	kv     KV
	logger *slog.Logger

	mu       sync.Mutex
	bindings []*binding
	closed   bool
}

type binding struct {
	key      string
	snapshot func() any

	dirty       chan struct{}
	stop        chan struct{}
	done        chan struct{}
	unsubscribe func()
}

// NewBridge creates a bridge over kv.
func NewBridge(kv KV, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{kv: kv, logger: logger}
}

// Bind seeds st from the value stored under key, then watches the
// store and re-persists the subset matching filter on every change.
// Only records matching filter are written back; records the server
// already owns are not re-persisted to the device.
func Bind[T store.Entity](ctx context.Context, b *Bridge, key string, st *store.Store[T], filter func(T) bool) {
	if records, ok := Load[[]T](ctx, b.kv, key, b.logger); ok {
		st.UpsertMany(records)
	}

	bd := &binding{
		key: key,
		snapshot: func() any {
			records := st.Find(filter)
			if records == nil {
				records = []T{}
			}
			return records
		},
		dirty: make(chan struct{}, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	bd.unsubscribe = st.Subscribe(func() {
		select {
		case bd.dirty <- struct{}{}:
		default:
		}
	})

	b.mu.Lock()
	b.bindings = append(b.bindings, bd)
	b.mu.Unlock()

	go b.run(bd)
}

func (b *Bridge) run(bd *binding) {
	for {
		select {
		case <-bd.dirty:
			b.write(bd)
		case <-bd.stop:
			select {
			case <-bd.dirty:
				b.write(bd)
			default:
			}
			close(bd.done)
			return
		}
	}
}

func (b *Bridge) write(bd *binding) {
	if err := Save(context.Background(), b.kv, bd.key, bd.snapshot()); err != nil {
		b.logger.Warn("persisting collection", "key", bd.key, "error", err)
	}
}

// Flush synchronously writes the current state of every binding.
func (b *Bridge) Flush() {
	b.mu.Lock()
	bindings := make([]*binding, len(b.bindings))
	copy(bindings, b.bindings)
	b.mu.Unlock()

	for _, bd := range bindings {
		b.write(bd)
	}
}

// Close stops the writer goroutines, draining any pending write, and
// flushes every binding one final time.
func (b *Bridge) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	bindings := make([]*binding, len(b.bindings))
	copy(bindings, b.bindings)
	b.mu.Unlock()

	for _, bd := range bindings {
		bd.unsubscribe()
		close(bd.stop)
		<-bd.done
	}
	for _, bd := range bindings {
		b.write(bd)
	}
}
