package extractor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// ExtractTextOCR renders each PDF page to an image and runs Tesseract
// over it. This is the retry path for scanned statements and for
// documents whose text layer parsed into zero transactions.
// Requires pdftoppm (poppler-utils) and tesseract on PATH.
func ExtractTextOCR(filePath string) ([]string, error) {
	for _, tool := range []string{"pdftoppm", "tesseract"} {
		if _, err := exec.LookPath(tool); err != nil {
			return nil, fmt.Errorf("%s not available: %w", tool, err)
		}
	}

	tmpDir, err := os.MkdirTemp("", "snapspend-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	// 300 DPI renders small statement print legibly for Tesseract.
	prefix := filepath.Join(tmpDir, "page")
	if out, err := exec.Command("pdftoppm", "-r", "300", "-png", filePath, prefix).CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %v (%s)", err, out)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, err
	}
	var images []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			images = append(images, filepath.Join(tmpDir, e.Name()))
		}
	}
	sort.Strings(images)
	if len(images) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no page images")
	}

	var pages []string
	for _, img := range images {
		text, err := OCRImage(img)
		if err != nil {
			continue
		}
		if text != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("ocr produced no text from %d page images", len(images))
	}
	return pages, nil
}

// OCRImage runs Tesseract on a single image (a receipt photo or a
// rendered statement page) and returns the recognized text.
func OCRImage(imagePath string) (string, error) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return "", fmt.Errorf("tesseract not available: %w", err)
	}

	// PSM 4: single column of variably sized text, which fits both
	// receipts and statement tables.
	out, err := exec.Command("tesseract", imagePath, "stdout", "-l", "eng", "--psm", "4").Output()
	if err != nil {
		return "", fmt.Errorf("tesseract failed on %s: %w", filepath.Base(imagePath), err)
	}
	return strings.TrimSpace(string(out)), nil
}
