package asset

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/yurikit/qmedia/archive"
	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/format"
	"github.com/yurikit/qmedia/qoa"
	"github.com/yurikit/qmedia/qoi"
)

// State is the load state of an asset.
type State int32

const (
	StateDisk State = iota + 1 // not loaded
	StateWait                  // queued for a worker
	StateBusy                  // being decoded
	StateDone                  // loaded, Meta is valid
)

func (s State) String() string {
	switch s {
	case StateDisk:
		return "disk"
	case StateWait:
		return "wait"
	case StateBusy:
		return "busy"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Metadata is the decoded form of an asset. Exactly one field is set: Image for image
// assets, Audio for audio assets, Data for everything else.
//
// Data may alias archive memory and must not be modified.
type Metadata struct {
	Data  []byte
	Image *qoi.Image
	Audio *qoa.Audio
}

// Asset is one archive entry tracked by a Registry.
type Asset struct {
	header  archive.Header
	source  *archive.Reader
	archive int

	state atomic.Int32
	used  atomic.Int32

	mu    sync.Mutex
	meta  Metadata
	err   error
	ready chan struct{}
}

func newAsset(h archive.Header, src *archive.Reader, archiveID int) *Asset {
	a := &Asset{header: h, source: src, archive: archiveID}
	a.state.Store(int32(StateDisk))

	return a
}

// Name returns the asset name.
func (a *Asset) Name() string { return a.header.Name }

// Type returns the asset type.
func (a *Asset) Type() format.AssetType { return a.header.Type }

// Header returns the archive entry the asset is loaded from.
func (a *Asset) Header() archive.Header { return a.header }

// Archive returns the mount index of the archive holding the asset.
func (a *Asset) Archive() int { return a.archive }

// State returns the current load state.
func (a *Asset) State() State { return State(a.state.Load()) }

// Used returns the number of outstanding acquisitions.
func (a *Asset) Used() int { return int(a.used.Load()) }

// Meta returns the decoded asset. The second result is false unless the asset is loaded.
func (a *Asset) Meta() (Metadata, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.State() != StateDone {
		return Metadata{}, false
	}

	return a.meta, true
}

// Wait blocks until the asset is loaded, its load fails, or ctx is done.
//
// Returns:
//   - error: nil once loaded, the load error, errs.ErrNotAcquired when no load is pending,
//     or ctx.Err()
func (a *Asset) Wait(ctx context.Context) error {
	for {
		a.mu.Lock()
		state, ready, err := a.State(), a.ready, a.err
		a.mu.Unlock()

		switch state {
		case StateDone:
			return nil
		case StateDisk:
			if err != nil {
				return err
			}

			return errs.ErrNotAcquired
		}

		select {
		case <-ready:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// queue moves a Disk asset to Wait. It reports whether the caller must hand the asset to a
// worker.
func (a *Asset) queue() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.State() != StateDisk {
		return false
	}
	a.state.Store(int32(StateWait))
	a.err = nil
	a.ready = make(chan struct{})

	return true
}

func (a *Asset) finish(meta Metadata, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		a.err = err
		a.meta = Metadata{}
		a.state.Store(int32(StateDisk))
	} else {
		a.meta = meta
		a.state.Store(int32(StateDone))
	}
	close(a.ready)
}

// unload drops the decoded data if the asset is loaded and unused.
func (a *Asset) unload(force bool) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.State() != StateDone || (!force && a.used.Load() > 0) {
		return false
	}
	a.meta = Metadata{}
	a.state.Store(int32(StateDisk))

	return true
}
