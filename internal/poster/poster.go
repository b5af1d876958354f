// Package poster renders bounded thumbnails of uploaded poster images.
package poster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// MaxEdge caps the requested thumbnail size.
const MaxEdge = 2000

// ErrEmpty is returned when a session has no poster.
var ErrEmpty = errors.New("poster is empty")

// Thumbnail decodes src (PNG, JPEG or GIF) and returns a JPEG no larger
// than maxWidth x maxHeight, preserving the aspect ratio.  A zero bound
// means "same as the other one".
func Thumbnail(src []byte, maxWidth, maxHeight uint) ([]byte, error) {
	if len(src) == 0 {
		return nil, ErrEmpty
	}
	if maxWidth == 0 {
		maxWidth = maxHeight
	}
	if maxHeight == 0 {
		maxHeight = maxWidth
	}
	maxWidth, maxHeight = min(maxWidth, MaxEdge), min(maxHeight, MaxEdge)

	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode poster: %w", err)
	}
	thumb := resize.Thumbnail(maxWidth, maxHeight, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
