package media

import "errors"

// Input errors: surfaced to the caller, never retried.
var (
	ErrUnsupportedMedia = errors.New("media: unsupported mime type")
	ErrTooLarge         = errors.New("media: size exceeds cap")
	ErrNotUploaded      = errors.New("media: blob was not uploaded")
	ErrBadPurpose       = errors.New("media: unknown variant purpose")
)

// Conflict and read errors.
var (
	ErrConflict = errors.New("media: status transition conflict")
	ErrNotFound = errors.New("media: descriptor not found")
	ErrNotReady = errors.New("media: descriptor not ready")
)

// Storage errors; backend codes are mapped to these at the adapter boundary.
var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")
)

// ErrConfig means the pipeline is missing a credential or endpoint. Fatal at
// startup; ticket minting refuses to run without it.
var ErrConfig = errors.New("media: pipeline configuration error")

// ProcessingError carries the short stable code written to
// processing_error when a job fails terminally.
type ProcessingError struct {
	Code string
	Err  error
}

func (e *ProcessingError) Error() string {
	if e.Err == nil {
		return e.Code
	}
	return e.Code + ": " + e.Err.Error()
}

func (e *ProcessingError) Unwrap() error { return e.Err }

func procErr(code string, err error) *ProcessingError {
	return &ProcessingError{Code: code, Err: err}
}

// FailureCode extracts the stable code of err, falling back to a generic one.
func FailureCode(err error) string {
	var pe *ProcessingError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return "processing_failed"
}
