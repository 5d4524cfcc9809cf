// Package ingestion turns a job description given as text, a file or a URL
// into the cleaned text a search query is generated from.
package ingestion

import "context"

// Source names where a job description comes from. Exactly one field is set.
type Source struct {
	Text string
	File string
	URL  string
}

// Ingest dispatches to the ingester for the source that is set.
func Ingest(ctx context.Context, src Source, opts Options) (string, *Metadata, error) {
	set := 0
	for _, v := range []string{src.Text, src.File, src.URL} {
		if v != "" {
			set++
		}
	}
	switch {
	case set == 0:
		return "", nil, ErrNoSource
	case set > 1:
		return "", nil, ErrMultipleSources
	}

	switch {
	case src.URL != "":
		return IngestFromURL(ctx, src.URL, opts)
	case src.File != "":
		return IngestFromFile(src.File)
	default:
		return IngestFromText(src.Text)
	}
}
