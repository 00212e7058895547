// Package asset manages the lifetime of assets stored in mounted YURI archives.
//
// A Registry indexes every entry of its mounted archives by type and name. Assets start on
// disk. Acquiring one queues it for a worker, which reads and verifies the stored bytes,
// decompresses them and decodes QOI images and QOA sounds. Callers block on Asset.Wait until
// the asset is ready, use Asset.Meta, and Release it when done. Collect returns the decoded
// data of assets nobody holds, so they go back to disk until acquired again.
//
//	reg, _ := asset.NewRegistry(asset.WithWorkers(4))
//	_ = reg.Mount(archiveReader)
//	_ = reg.Start(ctx)
//	defer reg.Close()
//
//	a, ok := reg.Find(format.AssetImage, "/textures/grass")
//	reg.Acquire(a)
//	defer reg.Release(a)
//	if err := a.Wait(ctx); err != nil { ... }
//	meta, _ := a.Meta()
//
// State transitions:
//
//	Disk -> Wait      Acquire of an unloaded asset
//	Wait -> Busy      a worker picks it up
//	Busy -> Done      decoding succeeded
//	Busy -> Disk      decoding failed; Wait reports the error
//	Done -> Disk      Collect with no holders
package asset
