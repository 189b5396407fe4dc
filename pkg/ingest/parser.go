// Package ingest turns stored resume files into persisted profiles: the
// parser, the per-document job and the worker pool that drives it.
package ingest

import (
	"github.com/artem13815/hr/ingest/pkg/decode"
	"github.com/artem13815/hr/ingest/pkg/extract"
	"github.com/artem13815/hr/ingest/pkg/resume"
)

// Parser runs decode and extraction for a single document. It holds no
// mutable state and is safe for concurrent use.
type Parser struct {
	decoder *decode.Decoder
}

func NewParser() *Parser {
	return &Parser{decoder: decode.New()}
}

// Parse decodes data according to ext and extracts a profile from the text.
// Every returned error is a *resume.ParseError.
func (p *Parser) Parse(data []byte, ext string) (resume.ExtractedProfile, error) {
	text, err := p.decoder.Decode(data, ext)
	if err != nil {
		return resume.ExtractedProfile{}, resume.Classify(err)
	}
	return extract.Extract(text), nil
}
