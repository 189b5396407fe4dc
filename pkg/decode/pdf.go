package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	pdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/artem13815/hr/ingest/pkg/resume"
)

var disableConfigDir sync.Once

func (d *Decoder) decodePDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", resume.NewError(resume.KindCorruptedPdf, "", fmt.Errorf("pdf panic: %v", r))
		}
	}()

	if err := inspectPDF(data); err != nil {
		return "", err
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return "", resume.NewError(resume.KindEncryptedPdf, "", err)
		}
		return "", resume.NewError(resume.KindCorruptedPdf, "", err)
	}

	rs, err := r.GetPlainText()
	if err != nil {
		return "", resume.NewError(resume.KindCorruptedPdf, "", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", resume.NewError(resume.KindCorruptedPdf, "", err)
	}

	// каждый текстовый объект начинается с новой строки, пустые строки между ними не нужны
	var b strings.Builder
	for _, line := range strings.Split(normalizeNewlines(buf.String()), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	text = strings.TrimSpace(b.String())
	if err := d.checkTextLayer(text); err != nil {
		return "", err
	}
	return text, nil
}

// inspectPDF classifies the container with pdfcpu before any text is pulled out.
func inspectPDF(data []byte) error {
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "password") || strings.Contains(msg, "encrypt") || bytes.Contains(data, []byte("/Encrypt")) {
			return resume.NewError(resume.KindEncryptedPdf, "", err)
		}
		return resume.NewError(resume.KindCorruptedPdf, "", err)
	}
	if ctx.Encrypt != nil {
		return resume.NewError(resume.KindEncryptedPdf, "", nil)
	}
	return nil
}

func (d *Decoder) checkTextLayer(text string) error {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < d.minPDFText {
		return resume.NewError(resume.KindScannedPdfNoText, "", nil)
	}
	return nil
}
