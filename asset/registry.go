package asset

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yurikit/qmedia/archive"
	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/format"
	"github.com/yurikit/qmedia/internal/hash"
	"github.com/yurikit/qmedia/internal/options"
	"github.com/yurikit/qmedia/qoa"
	"github.com/yurikit/qmedia/qoi"
	"github.com/yurikit/qmedia/section"
)

// queueCapacity bounds the pending loads; an asset is queued at most once at a time.
const queueCapacity = section.ArchiveMaxMountedArchives * section.ArchiveListLimit

// Registry tracks the assets of mounted archives and decodes them on a worker pool.
type Registry struct {
	cfg    *registryConfig
	logger *slog.Logger

	mu       sync.RWMutex
	archives []*archive.Reader
	assets   []*Asset
	index    map[uint64]*Asset

	queue   chan *Asset
	workers int
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	closed  atomic.Bool
}

// NewRegistry creates an empty registry. Mount archives and call Start to begin decoding.
func NewRegistry(opts ...Option) (*Registry, error) {
	cfg := newRegistryConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Registry{
		cfg:    cfg,
		logger: cfg.logger.With("component", "assets"),
		index:  make(map[uint64]*Asset),
		queue:  make(chan *Asset, queueCapacity),
	}, nil
}

// Mount adds every entry of r to the registry. When two mounted archives hold the same type
// and name, the first mounted one is used.
//
// Returns:
//   - error: errs.ErrArchiveLimit when ArchiveMaxMountedArchives are already mounted,
//     errs.ErrRegistryClosed after Close
func (reg *Registry) Mount(r *archive.Reader) error {
	if r == nil {
		return fmt.Errorf("nil archive: %w", errs.ErrInvalidArguments)
	}
	if reg.closed.Load() {
		return errs.ErrRegistryClosed
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if len(reg.archives) >= section.ArchiveMaxMountedArchives {
		return fmt.Errorf("%d archives mounted: %w", len(reg.archives), errs.ErrArchiveLimit)
	}

	id := len(reg.archives)
	reg.archives = append(reg.archives, r)

	for _, h := range r.All() {
		a := newAsset(h, r, id)
		reg.assets = append(reg.assets, a)

		if prev, ok := reg.index[h.ID]; ok {
			reg.logger.Debug("asset shadowed",
				"name", h.Name, "type", h.Type.String(), "archive", id, "by", prev.archive)

			continue
		}
		reg.index[h.ID] = a
	}

	reg.logger.Info("archive mounted", "archive", id, "entries", r.Len())

	return nil
}

// Len returns the number of assets across all mounted archives, shadowed ones included.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return len(reg.assets)
}

// Assets returns every tracked asset in mount order.
func (reg *Registry) Assets() []*Asset {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]*Asset, len(reg.assets))
	copy(out, reg.assets)

	return out
}

// Workers returns the number of running decode workers.
func (reg *Registry) Workers() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return reg.workers
}

// Start launches the decode workers. They stop when ctx is done or Close is called.
func (reg *Registry) Start(ctx context.Context) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.closed.Load() {
		return errs.ErrRegistryClosed
	}
	if reg.cancel != nil {
		return errs.ErrAlreadyStarted
	}

	n := reg.cfg.workers
	if n > WorkerLimit {
		reg.logger.Warn("excessive worker count requested, limiting", "requested", n, "limit", WorkerLimit)
		n = WorkerLimit
	}

	ctx, reg.cancel = context.WithCancel(ctx)
	reg.workers = n

	reg.logger.Info("starting workers", "workers", n)
	for i := range n {
		reg.wg.Add(1)
		go reg.work(ctx, i+1)
	}

	return nil
}

func (reg *Registry) work(ctx context.Context, id int) {
	defer reg.wg.Done()

	log := reg.logger.With("worker", id)
	log.Debug("worker spawned")
	defer log.Debug("worker closed")

	for {
		select {
		case <-ctx.Done():
			return
		case a := <-reg.queue:
			reg.process(log, a)
		}
	}
}

func (reg *Registry) process(log *slog.Logger, a *Asset) {
	if !a.state.CompareAndSwap(int32(StateWait), int32(StateBusy)) {
		return
	}

	start := time.Now()
	meta, err := reg.load(a)

	// log before finish: waiters may reuse the handler's writer once woken
	if err != nil {
		log.Error("asset load failed", "name", a.Name(), "type", a.Type().String(), "error", err)
	} else {
		log.Debug("asset loaded", "name", a.Name(), "type", a.Type().String(), "elapsed", time.Since(start))
	}
	a.finish(meta, err)
}

func (reg *Registry) load(a *Asset) (Metadata, error) {
	payload, err := a.source.Open(a.header)
	if err != nil {
		return Metadata{}, err
	}

	switch a.Type() {
	case format.AssetImage:
		img, err := qoi.Decode(payload, qoi.WithMaxPixels(reg.cfg.maxPixels))
		if err != nil {
			return Metadata{}, fmt.Errorf("image %q: %w", a.Name(), err)
		}

		return Metadata{Image: &img}, nil
	case format.AssetAudio:
		audio, err := qoa.Decode(payload, qoa.WithMaxSamples(reg.cfg.maxSamples))
		if err != nil {
			return Metadata{}, fmt.Errorf("audio %q: %w", a.Name(), err)
		}

		return Metadata{Audio: &audio}, nil
	default:
		return Metadata{Data: payload}, nil
	}
}

// Find looks up an asset by type and name.
func (reg *Registry) Find(t format.AssetType, name string) (*Asset, bool) {
	reg.mu.RLock()
	a, ok := reg.index[hash.AssetID(t, name)]
	reg.mu.RUnlock()

	if !ok || a.Type() != t || a.Name() != name {
		return nil, false
	}

	return a, true
}

// Acquire marks a as in use and queues it for loading if it is on disk. An acquired asset
// is never collected.
func (reg *Registry) Acquire(a *Asset) {
	a.used.Add(1)
	if !a.queue() {
		return
	}

	reg.mu.RLock()
	defer reg.mu.RUnlock()

	if reg.closed.Load() {
		a.finish(Metadata{}, errs.ErrRegistryClosed)
		return
	}
	reg.queue <- a
}

// Release undoes one Acquire.
func (reg *Registry) Release(a *Asset) {
	if a.used.Add(-1) < 0 {
		a.used.Add(1)
		reg.logger.Warn("asset released more often than acquired", "name", a.Name(), "type", a.Type().String())
	}
}

// Collect drops the decoded data of every loaded asset that is not acquired.
//
// Returns:
//   - int: number of assets returned to disk
func (reg *Registry) Collect() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	n := 0
	for _, a := range reg.assets {
		if a.used.Load() > 0 {
			continue
		}
		if a.unload(false) {
			n++
		}
	}

	return n
}

// RunCollector calls Collect every interval until ctx is done.
func (reg *Registry) RunCollector(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := reg.Collect(); n > 0 {
				reg.logger.Info("registry collected", "assets", n)
			}
		}
	}
}

// Close stops the workers, fails pending loads with errs.ErrRegistryClosed and drops all
// decoded data. It is safe to call more than once.
func (reg *Registry) Close() error {
	reg.mu.Lock()
	if !reg.closed.CompareAndSwap(false, true) {
		reg.mu.Unlock()
		return nil
	}
	cancel := reg.cancel
	reg.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	reg.wg.Wait()

	for {
		select {
		case a := <-reg.queue:
			if a.state.CompareAndSwap(int32(StateWait), int32(StateBusy)) {
				a.finish(Metadata{}, errs.ErrRegistryClosed)
			}
		default:
			reg.mu.RLock()
			for _, a := range reg.assets {
				a.unload(true)
			}
			reg.mu.RUnlock()

			return nil
		}
	}
}
