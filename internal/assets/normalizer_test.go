package assets

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftmarket/catalog-service/internal/apperrors"
)

func decodeConfig(t *testing.T, data []byte) image.Config {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	return cfg
}

func TestNormalize_DownscalesWideImages(t *testing.T) {
	n := NewNormalizer(1600, 85, 200, 80)

	out, err := n.Normalize(makeJPEG(t, 3200, 1000))
	require.NoError(t, err)

	cfg := decodeConfig(t, out)
	assert.Equal(t, 1600, cfg.Width)
	// Aspect ratio preserved.
	assert.Equal(t, 500, cfg.Height)
}

func TestNormalize_NeverUpscales(t *testing.T) {
	n := NewNormalizer(1600, 85, 200, 80)

	out, err := n.Normalize(makeJPEG(t, 640, 480))
	require.NoError(t, err)

	cfg := decodeConfig(t, out)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
}

func TestNormalize_ConvertsPNGToJPEG(t *testing.T) {
	n := NewNormalizer(1600, 85, 200, 80)

	out, err := n.Normalize(makePNG(t, 300, 200))
	require.NoError(t, err)

	decodeConfig(t, out)
}

func TestNormalize_RejectsGarbage(t *testing.T) {
	n := NewNormalizer(1600, 85, 200, 80)

	_, err := n.Normalize([]byte("definitely not an image"))
	var codecErr *apperrors.CodecError
	assert.ErrorAs(t, err, &codecErr)
}

func TestThumbnail_UsesThumbBound(t *testing.T) {
	n := NewNormalizer(1600, 85, 200, 80)

	out, err := n.Thumbnail(makeJPEG(t, 800, 600))
	require.NoError(t, err)

	cfg := decodeConfig(t, out)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 150, cfg.Height)
}
