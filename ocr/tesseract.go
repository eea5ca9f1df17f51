package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// TesseractEngine runs the tesseract binary over a temp file and captures
// stdout. The binary path and recognition language are configurable; an
// empty path falls back to whatever is on PATH.
type TesseractEngine struct {
	binaryPath string
	language   string
}

// NewTesseractEngine creates a tesseract-backed OCR engine.
func NewTesseractEngine(binaryPath, language string) *TesseractEngine {
	if binaryPath == "" {
		binaryPath = "tesseract"
	}
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{
		binaryPath: binaryPath,
		language:   language,
	}
}

// Text writes the image to a temporary file and invokes tesseract on it.
func (e *TesseractEngine) Text(ctx context.Context, image []byte) (string, error) {
	tmp, err := os.CreateTemp("", "receipt-*.img")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write temp image file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp image file: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binaryPath, tmp.Name(), "stdout", "-l", e.language)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract failed: %w (%s)", err, stderr.String())
	}

	return stdout.String(), nil
}
