// Package errs defines the sentinel errors shared by the agx packages.
//
// Errors are returned wrapped with additional context; match them with errors.Is.
package errs

import "errors"

// I/O errors.
var (
	// ErrIO indicates the destination could not be created or written, or the source
	// could not be opened or read.
	ErrIO = errors.New("agx: i/o error")
)

// Format errors, returned by the decoder.
var (
	ErrInvalidMagic        = errors.New("agx: invalid magic, not an AGXB stream")
	ErrInvalidEndianMarker = errors.New("agx: unrecognized endian marker")
	ErrInvalidHeaderSize   = errors.New("agx: invalid header size")
	ErrTruncated           = errors.New("agx: truncated record")
	ErrInvalidRecordSize   = errors.New("agx: invalid record size")
)

// Decoder usage errors.
var (
	// ErrReaderFailed is returned by every decode call after the decoder latched into
	// its error state. The latched cause is wrapped alongside it.
	ErrReaderFailed = errors.New("agx: decoder is in error state")
	// ErrNotSeekable indicates a reset was requested on a forward-only source whose
	// cursor has already moved past the requested region.
	ErrNotSeekable = errors.New("agx: source is not seekable")
	// ErrNoTimeStep indicates NextTimeStepParam was called without a current time step.
	ErrNoTimeStep = errors.New("agx: no time step in progress")
)

// Store errors.
var (
	// ErrTimeStepOutOfRange is returned by strict stores for time step indices outside
	// [0, timeStepCount).
	ErrTimeStepOutOfRange = errors.New("agx: time step index out of range")
	ErrInvalidName        = errors.New("agx: invalid parameter name")
	ErrNilRegistry        = errors.New("agx: nil type registry")
)

// Fixture container errors.
var (
	ErrUnsupportedCompression = errors.New("agx: unsupported compression type")
	ErrInvalidLocation        = errors.New("agx: invalid fixture location")
)
