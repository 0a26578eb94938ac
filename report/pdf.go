package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// PDFText returns the plain text of a PDF document.
func PDFText(buf []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return "", fmt.Errorf("could not read pdf: %w", err)
	}
	txt, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("could not extract pdf text: %w", err)
	}
	var b bytes.Buffer
	if _, err := io.Copy(&b, txt); err != nil {
		return "", err
	}
	return b.String(), nil
}
