package domain

import "errors"

// Pipeline failure modes. Adapters wrap the underlying cause with
// fmt.Errorf("%w: ...") so handlers can map them to HTTP statuses with
// errors.Is while logs keep the vendor detail.
var (
	ErrMissingFile         = errors.New("no file uploaded")
	ErrUnsupportedFormat   = errors.New("invalid file format")
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrSynthesisFailed     = errors.New("speech synthesis failed")
	ErrExternalService     = errors.New("external service error")
)
