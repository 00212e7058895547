// Package errs defines the sentinel errors returned by qmedia packages.
//
// Every error is terminal for the call that returned it. Callers compare with errors.Is,
// since most call sites wrap the sentinel with additional context.
package errs

import "errors"

// Shared codec errors.
var (
	// ErrInvalidArguments is returned when a required input is missing or out of range.
	ErrInvalidArguments = errors.New("invalid arguments")
	// ErrMemory is returned when a declared buffer size exceeds the configured allocation limit.
	ErrMemory = errors.New("allocation limit exceeded")
	// ErrUnexpectedEOF is returned when the input ends early or is not fully consumed.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
)

// Audio (QOA) errors.
var (
	ErrNotQOA               = errors.New("not a qoa file")
	ErrUnsupportedStreaming = errors.New("qoa streaming mode is not supported")
	ErrTooManyChannels      = errors.New("too many audio channels")
	ErrHeaderMismatch       = errors.New("qoa frame header does not match stream")
	ErrMalformedFrame       = errors.New("malformed qoa frame")
)

// Image (QOI) errors.
var (
	ErrNotQOI            = errors.New("not a qoi file")
	ErrInvalidHeader     = errors.New("invalid qoi header dimensions")
	ErrInvalidColorspace = errors.New("invalid qoi channel or colorspace tag")
)

// Archive errors.
var (
	ErrNotArchive        = errors.New("not a yuri archive")
	ErrUnknownAssetType  = errors.New("unknown asset type")
	ErrChecksumMismatch  = errors.New("asset checksum mismatch")
	ErrEntryNotFound     = errors.New("asset entry not found")
	ErrArchiveLimit      = errors.New("archive entry limit exceeded")
	ErrInvalidEntryName  = errors.New("invalid asset entry name")
	ErrInvalidEntryFlags = errors.New("invalid asset entry flags")
)

// Ingest (WAV/BMP) errors.
var (
	ErrNotRIFF             = errors.New("not a riff file")
	ErrNotWAVE             = errors.New("not a wave file")
	ErrUnsupportedFormat   = errors.New("unsupported wave format")
	ErrUnsupportedBitDepth = errors.New("unsupported wave bit depth")
	ErrMissingData         = errors.New("missing wave data chunk")
	ErrNotBitmap           = errors.New("not a bitmap image")
	ErrUnsupportedBitCount = errors.New("unsupported bitmap bit count")
	ErrInvalidDimensions   = errors.New("invalid bitmap dimensions")
)

// Asset registry errors.
var (
	ErrNotAcquired    = errors.New("asset not acquired")
	ErrRegistryClosed = errors.New("asset registry closed")
	ErrAlreadyStarted = errors.New("asset registry already started")
)
