package ocr

import (
	"context"
)

// Engine extracts raw text from an image. Implementations may fail for
// undecodable images or engine errors; callers report the failure to the
// submitting user and record nothing.
type Engine interface {
	Text(ctx context.Context, image []byte) (string, error)
}
