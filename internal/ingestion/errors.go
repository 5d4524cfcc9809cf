package ingestion

import "errors"

var (
	// ErrNoSource is returned when no description source is given
	ErrNoSource = errors.New("no job description source given")
	// ErrMultipleSources is returned when more than one source is given
	ErrMultipleSources = errors.New("only one job description source may be given")
	// ErrEmptyDescription is returned when the source holds no text
	ErrEmptyDescription = errors.New("empty job description")
	// ErrContentExtractionFailed is returned when a page yields no usable text
	ErrContentExtractionFailed = errors.New("content extraction failed")
)
