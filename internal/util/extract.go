package util

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/gen2brain/go-fitz"
)

const minResumeLength = 100

// ExtractResumeText reads the text layer of every page of a PDF resume.
// Pages without a text layer (scans) are OCR'd with tesseract when it is
// installed.
func ExtractResumeText(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	ocrAvailable := checkTesseract() == nil
	var fullText strings.Builder
	var lastErr error

	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: failed to read text: %w", n+1, err)
			slog.Warn("resume page text failed", "page", n+1, "error", err)
			continue
		}
		pageText = strings.TrimSpace(pageText)

		if pageText == "" && ocrAvailable {
			pageText, err = ocrPage(doc, n)
			if err != nil {
				lastErr = err
				slog.Warn("resume page OCR failed", "page", n+1, "error", err)
				continue
			}
		}

		if pageText != "" {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(fullText.String())
	if result == "" {
		if lastErr != nil {
			return "", fmt.Errorf("failed to extract resume text: %w", lastErr)
		}
		return "", fmt.Errorf("no text extracted from PDF")
	}
	if len(result) < minResumeLength {
		return "", fmt.Errorf("resume too short for meaningful analysis")
	}
	return result, nil
}

func ocrPage(doc *fitz.Document, n int) (string, error) {
	img, err := doc.Image(n)
	if err != nil {
		return "", fmt.Errorf("page %d: failed to render image: %w", n+1, err)
	}

	tmpFile, err := os.CreateTemp("", "resume-page-*.png")
	if err != nil {
		return "", fmt.Errorf("page %d: failed to create temp file: %w", n+1, err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	err = png.Encode(tmpFile, image.Image(img))
	tmpFile.Close()
	if err != nil {
		return "", fmt.Errorf("page %d: failed to encode PNG: %w", n+1, err)
	}

	out, err := exec.Command("tesseract", tmpPath, "stdout", "-l", "eng").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("page %d: tesseract error: %w, output: %s", n+1, err, string(out))
	}
	return strings.TrimSpace(string(out)), nil
}

func checkTesseract() error {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return fmt.Errorf("tesseract not found: %w", err)
	}
	return nil
}
