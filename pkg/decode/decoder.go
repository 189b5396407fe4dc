// Package decode turns an uploaded resume container (PDF or DOCX) into one
// linear text stream.
package decode

import (
	"path/filepath"
	"strings"

	"github.com/artem13815/hr/ingest/pkg/resume"
)

const (
	ExtPDF  = ".pdf"
	ExtDOCX = ".docx"

	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// MinPDFTextRunes is the shortest text layer accepted from a PDF.
	// Anything shorter is treated as a scanned image.
	MinPDFTextRunes = 50
)

var mimeToExt = map[string]string{
	MimePDF:  ExtPDF,
	MimeDOCX: ExtDOCX,
}

// Decoder dispatches on the declared extension only; the bytes are never sniffed.
type Decoder struct {
	minPDFText int
	maxXML     int64
}

func New() *Decoder {
	return &Decoder{
		minPDFText: MinPDFTextRunes,
		maxXML:     64 << 20,
	}
}

// Decode extracts text from data. Errors are always *resume.ParseError.
func (d *Decoder) Decode(data []byte, ext string) (string, error) {
	switch NormalizeExt(ext) {
	case ExtPDF:
		return d.decodePDF(data)
	case ExtDOCX:
		return d.decodeDOCX(data)
	default:
		return "", resume.NewError(resume.KindUnsupportedFileType, "", nil)
	}
}

// Supported reports whether ext names a container the decoder understands.
func Supported(ext string) bool {
	switch NormalizeExt(ext) {
	case ExtPDF, ExtDOCX:
		return true
	}
	return false
}

// NormalizeExt lower-cases ext and makes sure it starts with a dot.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// ExtFromPath returns the normalized extension of a file name or storage key.
func ExtFromPath(path string) string {
	return NormalizeExt(filepath.Ext(path))
}

// ExtForMIME maps an accepted upload content type to its extension.
func ExtForMIME(mime string) (string, bool) {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	ext, ok := mimeToExt[mime]
	return ext, ok
}

// MIMEForExt is the inverse of ExtForMIME.
func MIMEForExt(ext string) string {
	switch NormalizeExt(ext) {
	case ExtPDF:
		return MimePDF
	case ExtDOCX:
		return MimeDOCX
	}
	return "application/octet-stream"
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\u00A0", " ")
}
