package decode

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/artem13815/hr/ingest/pkg/resume"
)

const docxBody = "word/document.xml"

var errNoDocumentPart = errors.New("no word/document.xml in container")

func (d *Decoder) decodeDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", resume.NewError(resume.KindCorruptedDocx, "", err)
	}
	var part *zip.File
	for _, f := range zr.File {
		if f.Name == docxBody {
			part = f
			break
		}
	}
	if part == nil {
		return "", resume.NewError(resume.KindCorruptedDocx, "", errNoDocumentPart)
	}
	rc, err := part.Open()
	if err != nil {
		return "", resume.NewError(resume.KindCorruptedDocx, "", err)
	}
	defer rc.Close()

	paragraphs, rows, err := walkDocument(io.LimitReader(rc, d.maxXML))
	if err != nil {
		return "", resume.NewError(resume.KindCorruptedDocx, "", err)
	}
	lines := append(paragraphs, rows...)
	return normalizeNewlines(strings.Join(lines, "\n")), nil
}

// walkDocument streams WordprocessingML and returns top-level paragraphs in
// document order followed by table rows, each row's non-empty cells joined by " | ".
// Paragraphs nested in text boxes come out as separate paragraphs just before
// the paragraph that anchors them. mc:Fallback duplicates its mc:Choice and is skipped.
func walkDocument(r io.Reader) (paragraphs, rows []string, err error) {
	dec := xml.NewDecoder(r)

	var (
		tableDepth int
		inText     bool
		paras      []*strings.Builder
		cell       []string
		row        []string
	)
	write := func(f func(b *strings.Builder)) {
		if len(paras) > 0 {
			f(paras[len(paras)-1])
		}
	}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tr":
				if tableDepth == 1 {
					row = row[:0]
				}
			case "tc":
				if tableDepth == 1 {
					cell = cell[:0]
				}
			case "Fallback":
				if err := dec.Skip(); err != nil {
					return nil, nil, fmt.Errorf("document.xml: %w", err)
				}
			case "p":
				paras = append(paras, &strings.Builder{})
			case "t":
				inText = true
			case "tab":
				write(func(b *strings.Builder) { b.WriteByte('\t') })
			case "br", "cr":
				write(func(b *strings.Builder) { b.WriteByte('\n') })
			}
		case xml.CharData:
			if inText {
				write(func(b *strings.Builder) { b.Write(t) })
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if len(paras) == 0 {
					continue
				}
				s := strings.TrimSpace(paras[len(paras)-1].String())
				paras = paras[:len(paras)-1]
				if s == "" {
					continue
				}
				if tableDepth == 0 {
					paragraphs = append(paragraphs, s)
				} else {
					cell = append(cell, s)
				}
			case "tc":
				if tableDepth == 1 {
					if s := strings.TrimSpace(strings.Join(cell, " ")); s != "" {
						row = append(row, s)
					}
				}
			case "tr":
				if tableDepth == 1 && len(row) > 0 {
					rows = append(rows, strings.Join(row, " | "))
				}
			case "tbl":
				tableDepth--
			}
		}
	}
	if tableDepth != 0 {
		return nil, nil, errors.New("document.xml: unbalanced table")
	}
	return paragraphs, rows, nil
}
