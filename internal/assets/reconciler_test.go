package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftmarket/catalog-service/internal/apperrors"
	"github.com/craftmarket/catalog-service/internal/model"
	"github.com/craftmarket/catalog-service/pkg/logger"
)

const testBaseURL = "http://localhost:5000/images"

type recorderStub struct {
	productID int64
	names     [SlotCount]string
	err       error
	calls     int
}

func (r *recorderStub) UpdateProductImages(_ context.Context, productID int64, names [SlotCount]string) error {
	r.calls++
	r.productID = productID
	r.names = names
	return r.err
}

func newTestReconciler(t *testing.T) (*Reconciler, *Store, *recorderStub) {
	t.Helper()
	store := NewStore(t.TempDir())
	norm := NewNormalizer(1600, 85, 200, 80)
	rec := &recorderStub{}
	return NewReconciler(store, norm, rec, "no-image.png", logger.NewNop()), store, rec
}

func makeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 120, G: 80, B: 40, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG))
	return buf.Bytes()
}

func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 10, G: 200, B: 90, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func writeFile(t *testing.T, store *Store, rel string) {
	t.Helper()
	require.NoError(t, store.Write(rel, []byte("jpeg-bytes")))
}

func product(id int64, slots [SlotCount]string) *model.Product {
	return &model.Product{
		ProductID:     id,
		ProductImage0: slots[0],
		ProductImage1: slots[1],
		ProductImage2: slots[2],
		ProductImage3: slots[3],
	}
}

func TestResolveImageURLs_CanonicalFiles(t *testing.T) {
	r, store, _ := newTestReconciler(t)
	writeFile(t, store, "products/7/7_0.jpg")
	writeFile(t, store, "products/7/7_1.jpg")

	p := product(7, [SlotCount]string{"7_0.jpg", "7_1.jpg", "", ""})
	urls := r.ResolveImageURLs(p, testBaseURL)

	require.Len(t, urls, SlotCount*2)
	assert.Equal(t, testBaseURL+"/products/7/7_0.jpg", urls[0])
	assert.Equal(t, testBaseURL+"/products/7/7_1.jpg", urls[1])
	assert.Empty(t, urls[2])
	assert.Empty(t, urls[3])
}

func TestResolveImageURLs_DeletesDetachedCanonicalFile(t *testing.T) {
	r, store, _ := newTestReconciler(t)
	writeFile(t, store, "products/7/7_0.jpg")
	// Slot 1 file exists on disk but the column was cleared.
	writeFile(t, store, "products/7/7_1.jpg")

	p := product(7, [SlotCount]string{"7_0.jpg", "", "", ""})
	urls := r.ResolveImageURLs(p, testBaseURL)

	assert.NotEmpty(t, urls[0])
	assert.Empty(t, urls[1])
	assert.False(t, store.Exists("products/7/7_1.jpg"))
	assert.True(t, store.Exists("products/7/7_0.jpg"))
}

func TestResolveImageURLs_SweepsOrphans(t *testing.T) {
	r, store, _ := newTestReconciler(t)
	writeFile(t, store, "products/7/7_0.jpg")
	writeFile(t, store, "products/7/7_1.jpg")
	writeFile(t, store, "products/7/stale.jpg")

	p := product(7, [SlotCount]string{"7_0.jpg", "7_1.jpg", "", ""})
	r.ResolveImageURLs(p, testBaseURL)

	assert.True(t, store.Exists("products/7/7_0.jpg"))
	assert.True(t, store.Exists("products/7/7_1.jpg"))
	assert.False(t, store.Exists("products/7/stale.jpg"))
}

func TestResolveImageURLs_SweepsOrphanedThumbnails(t *testing.T) {
	r, store, _ := newTestReconciler(t)
	writeFile(t, store, "products/7/7_0.jpg")
	writeFile(t, store, "products/7/thumbs/7_0.jpg")
	writeFile(t, store, "products/7/thumbs/gone.jpg")

	p := product(7, [SlotCount]string{"7_0.jpg", "", "", ""})
	urls := r.ResolveImageURLs(p, testBaseURL)

	assert.Equal(t, testBaseURL+"/products/7/thumbs/7_0.jpg", urls[SlotCount])
	assert.True(t, store.Exists("products/7/thumbs/7_0.jpg"))
	assert.False(t, store.Exists("products/7/thumbs/gone.jpg"))
}

func TestResolveImageURLs_LegacyFilenames(t *testing.T) {
	r, store, _ := newTestReconciler(t)
	writeFile(t, store, "products/7/old-photo.png")
	writeFile(t, store, "products/7/other.png")

	p := product(7, [SlotCount]string{"old-photo.png", "", "other.png", ""})
	urls := r.ResolveImageURLs(p, testBaseURL)

	assert.Equal(t, testBaseURL+"/products/7/old-photo.png", urls[0])
	assert.Empty(t, urls[1])
	assert.Equal(t, testBaseURL+"/products/7/other.png", urls[2])
}

func TestResolveImageURLs_CanonicalWinsOverLegacy(t *testing.T) {
	r, store, _ := newTestReconciler(t)
	writeFile(t, store, "products/7/7_0.jpg")
	writeFile(t, store, "products/7/old-photo.png")

	// Slot 0 column still carries the legacy name, but the canonical file
	// exists and takes priority; the legacy file becomes an orphan.
	p := product(7, [SlotCount]string{"old-photo.png", "", "", ""})
	urls := r.ResolveImageURLs(p, testBaseURL)

	assert.Equal(t, testBaseURL+"/products/7/7_0.jpg", urls[0])
	assert.False(t, store.Exists("products/7/old-photo.png"))
}

func TestResolveImageURLs_AllEmptyRowAcceptsCanonicalFiles(t *testing.T) {
	r, store, _ := newTestReconciler(t)
	writeFile(t, store, "products/7/7_2.jpg")

	p := product(7, [SlotCount]string{"", "", "", ""})
	urls := r.ResolveImageURLs(p, testBaseURL)

	assert.Equal(t, testBaseURL+"/products/7/7_2.jpg", urls[2])
	assert.True(t, store.Exists("products/7/7_2.jpg"))
}

func TestResolveImageURLs_Placeholder(t *testing.T) {
	r, _, _ := newTestReconciler(t)

	p := product(7, [SlotCount]string{"", "", "", ""})
	urls := r.ResolveImageURLs(p, testBaseURL)

	assert.Equal(t, testBaseURL+"/no-image.png", urls[0])
	for i := 1; i < SlotCount*2; i++ {
		assert.Empty(t, urls[i])
	}
}

func TestResolveImageURLs_Idempotent(t *testing.T) {
	r, store, _ := newTestReconciler(t)
	writeFile(t, store, "products/7/7_0.jpg")
	writeFile(t, store, "products/7/stale.jpg")

	p := product(7, [SlotCount]string{"7_0.jpg", "", "", ""})
	first := r.ResolveImageURLs(p, testBaseURL)
	second := r.ResolveImageURLs(p, testBaseURL)

	assert.Equal(t, first, second)

	entries, err := store.List("products/7")
	require.NoError(t, err)
	assert.Equal(t, []string{"7_0.jpg"}, entries)
}

func TestResolveImageURLs_WaitsForProductLock(t *testing.T) {
	r, store, _ := newTestReconciler(t)
	writeFile(t, store, "products/7/7_0.jpg")
	p := product(7, [SlotCount]string{"7_0.jpg", "", "", ""})

	// While a writer holds the product lock, resolution must not run: its
	// sweep would delete slot files the writer has not yet persisted.
	unlock := r.lock(7)
	done := make(chan struct{})
	go func() {
		r.ResolveImageURLs(p, testBaseURL)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("resolution ran while the product lock was held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("resolution did not proceed after the lock was released")
	}
}

func TestApplyImages_WriteThenRead(t *testing.T) {
	r, store, rec := newTestReconciler(t)

	uploads := [][]byte{makeJPEG(t, 400, 300), makePNG(t, 400, 300)}
	names, slotErrs, err := r.ApplyImages(context.Background(), 7, uploads)
	require.NoError(t, err)
	for i := 0; i < SlotCount; i++ {
		assert.NoError(t, slotErrs[i])
	}
	assert.Equal(t, [SlotCount]string{"7_0.jpg", "7_1.jpg", "", ""}, names)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, int64(7), rec.productID)
	assert.Equal(t, names, rec.names)

	p := product(7, names)
	urls := r.ResolveImageURLs(p, testBaseURL)
	assert.Equal(t, testBaseURL+"/products/7/7_0.jpg", urls[0])
	assert.Equal(t, testBaseURL+"/products/7/7_1.jpg", urls[1])
	assert.Equal(t, testBaseURL+"/products/7/thumbs/7_0.jpg", urls[SlotCount])
	assert.Equal(t, testBaseURL+"/products/7/thumbs/7_1.jpg", urls[SlotCount+1])

	assert.True(t, store.Exists("products/7/7_0.jpg"))
	assert.True(t, store.Exists("products/7/thumbs/7_0.jpg"))
}

func TestApplyImages_DownscalesAndThumbnails(t *testing.T) {
	r, store, _ := newTestReconciler(t)

	_, slotErrs, err := r.ApplyImages(context.Background(), 7, [][]byte{makeJPEG(t, 2400, 1200)})
	require.NoError(t, err)
	require.NoError(t, slotErrs[0])

	assertWidthAtMost(t, store, "products/7/7_0.jpg", 1600)
	assertWidthAtMost(t, store, "products/7/thumbs/7_0.jpg", 200)
}

func TestApplyImages_SlotFailuresAreIsolated(t *testing.T) {
	r, store, rec := newTestReconciler(t)

	uploads := [][]byte{[]byte("not an image"), makeJPEG(t, 100, 100)}
	names, slotErrs, err := r.ApplyImages(context.Background(), 7, uploads)
	require.NoError(t, err)

	var codecErr *apperrors.CodecError
	require.ErrorAs(t, slotErrs[0], &codecErr)
	assert.NoError(t, slotErrs[1])
	assert.Equal(t, [SlotCount]string{"", "7_1.jpg", "", ""}, names)
	assert.Equal(t, names, rec.names)
	assert.False(t, store.Exists("products/7/7_0.jpg"))
	assert.True(t, store.Exists("products/7/7_1.jpg"))
}

func TestApplyImages_SkipsAbsentSlots(t *testing.T) {
	r, store, _ := newTestReconciler(t)

	uploads := [][]byte{nil, nil, makeJPEG(t, 100, 100)}
	names, _, err := r.ApplyImages(context.Background(), 7, uploads)
	require.NoError(t, err)
	assert.Equal(t, [SlotCount]string{"", "", "7_2.jpg", ""}, names)
	assert.False(t, store.Exists("products/7/7_0.jpg"))
}

func TestApplyImages_RecorderFailure(t *testing.T) {
	r, _, rec := newTestReconciler(t)
	rec.err = assert.AnError

	_, _, err := r.ApplyImages(context.Background(), 7, [][]byte{makeJPEG(t, 100, 100)})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestPurgeProduct(t *testing.T) {
	r, store, _ := newTestReconciler(t)
	_, _, err := r.ApplyImages(context.Background(), 7, [][]byte{makeJPEG(t, 100, 100)})
	require.NoError(t, err)

	existed, err := r.PurgeProduct(7)
	require.NoError(t, err)
	assert.True(t, existed)
	assert.False(t, store.Exists("products/7"))

	existed, err = r.PurgeProduct(7)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestCategoryDirs(t *testing.T) {
	r, store, _ := newTestReconciler(t)

	require.NoError(t, r.EnsureCategoryDir("Shoes/Running"))
	assert.True(t, store.IsDir("Shoes/Running"))

	existed, err := r.RemoveCategoryDir("Shoes/Running")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = r.RemoveCategoryDir("Shoes/Running")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestCategoryDirs_RejectsTraversal(t *testing.T) {
	r, _, _ := newTestReconciler(t)

	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, r.EnsureCategoryDir("../evil"), &validationErr)
	assert.ErrorAs(t, r.EnsureCategoryDir("/abs"), &validationErr)

	_, err := r.RemoveCategoryDir("a/../../b")
	assert.ErrorAs(t, err, &validationErr)
}

func assertWidthAtMost(t *testing.T, store *Store, rel string, max int) {
	t.Helper()
	f, err := os.Open(filepath.Join(store.BaseDir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.LessOrEqual(t, cfg.Width, max)
}
