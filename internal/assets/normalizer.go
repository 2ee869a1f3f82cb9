package assets

import (
	"bytes"

	"github.com/disintegration/imaging"
	// Registers WebP decoding with image.Decode; JPEG/PNG/GIF come with imaging.
	_ "golang.org/x/image/webp"

	"github.com/craftmarket/catalog-service/internal/apperrors"
)

// Normalizer converts arbitrary uploaded raster images into canonical JPEGs.
// It is pure with respect to the store: bytes in, bytes out. The reconciler
// owns writing the result to disk.
type Normalizer struct {
	MaxWidth     int
	JPEGQuality  int
	ThumbWidth   int
	ThumbQuality int
}

func NewNormalizer(maxWidth, quality, thumbWidth, thumbQuality int) *Normalizer {
	return &Normalizer{
		MaxWidth:     maxWidth,
		JPEGQuality:  quality,
		ThumbWidth:   thumbWidth,
		ThumbQuality: thumbQuality,
	}
}

// Normalize decodes src (JPEG/PNG/WebP/GIF), downscales it so the width does
// not exceed MaxWidth (never upscaling), and re-encodes as JPEG. Re-encoding
// drops any metadata the original carried.
func (n *Normalizer) Normalize(src []byte) ([]byte, error) {
	return n.convert(src, n.MaxWidth, n.JPEGQuality)
}

// Thumbnail is Normalize with the smaller width bound and lower quality,
// trading fidelity for transfer size.
func (n *Normalizer) Thumbnail(src []byte) ([]byte, error) {
	return n.convert(src, n.ThumbWidth, n.ThumbQuality)
}

func (n *Normalizer) convert(src []byte, maxWidth, quality int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(src), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &apperrors.CodecError{Err: err}
	}

	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, &apperrors.CodecError{Err: err}
	}
	return buf.Bytes(), nil
}
