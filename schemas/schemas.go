// Package schemas embeds the JSON Schema documents that describe gencv's input files.
package schemas

import (
	_ "embed"
)

// Placeholder describes the payload of a template slot marker.
//
//go:embed placeholder.schema.json
var Placeholder string

// Content describes the source content file.
//
//go:embed content.schema.json
var Content string

// Blocks describes the per-category block descriptor file.
//
//go:embed blocks.schema.json
var Blocks string
