// Package extractor turns statement PDFs and receipt images into plain
// text for the parsers. It is the asynchronous, failure-prone edge of the
// system: the parsers themselves never touch files or external tools.
package extractor

import (
	"fmt"
	"io"
	"os/exec"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads a PDF and returns one text string per page, trying
// the text layer first and the external pdftotext tool second. A scanned
// PDF with no usable text layer returns an error; callers then decide
// whether to retry through OCR (ExtractTextOCR).
func ExtractText(filePath string) ([]string, error) {
	pages, libErr := extractWithLibrary(filePath)
	if libErr == nil && usableText(pages) {
		return pages, nil
	}

	if out, err := exec.Command("pdftotext", "-layout", filePath, "-").Output(); err == nil {
		text := strings.TrimSpace(string(out))
		if usableText([]string{text}) {
			return []string{text}, nil
		}
	}

	if libErr != nil {
		return nil, fmt.Errorf("pdf text extraction failed: %w", libErr)
	}
	return nil, fmt.Errorf("pdf has no usable text layer; it may be scanned")
}

// extractWithLibrary pulls the text layer via ledongthuc/pdf, preferring
// row-ordered extraction and falling back to the plain-text reader. The
// library panics on some malformed files, so recover into an error.
func extractWithLibrary(filePath string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if r.NumPage() == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	pages = extractByRow(r)
	if usableText(pages) {
		return pages, nil
	}

	reader, perr := r.GetPlainText()
	if perr != nil {
		return pages, nil
	}
	data, perr := io.ReadAll(reader)
	if perr != nil {
		return pages, nil
	}
	if text := strings.TrimSpace(string(data)); text != "" {
		return []string{text}, nil
	}
	return pages, nil
}

func extractByRow(r *pdf.Reader) []string {
	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// usableText rejects empty or binary-garbage extractions: identity-encoded
// fonts decode into noise that would otherwise flow into the parsers.
// Requires >50 chars and >60% plain ASCII-ish characters.
func usableText(pages []string) bool {
	total, readable := 0, 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				strings.ContainsRune(`.,-/:;()'"£$€%&@#!?+=*`, r) {
				readable++
			}
		}
	}
	if total <= 50 {
		return false
	}
	return float64(readable)/float64(total) > 0.6
}
