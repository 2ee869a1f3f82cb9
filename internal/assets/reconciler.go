package assets

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/craftmarket/catalog-service/internal/apperrors"
	"github.com/craftmarket/catalog-service/internal/model"
	"github.com/craftmarket/catalog-service/pkg/logger"
)

// SlotCount is the fixed number of image positions a product has.
const SlotCount = 4

const thumbsDir = "thumbs"

// ImageRecorder persists the slot filenames back onto the product row after a
// write. The product repository implements it; the engine stays SQL-free.
type ImageRecorder interface {
	UpdateProductImages(ctx context.Context, productID int64, names [SlotCount]string) error
}

// Reconciler keeps a product's database image references, its on-disk files
// and the URLs handed to clients consistent with each other. The database owns
// which slots should be populated, the filesystem owns whether bytes exist;
// everything that reconciles the two lives here.
type Reconciler struct {
	store       *Store
	norm        *Normalizer
	recorder    ImageRecorder
	logger      logger.ZapLogger
	placeholder string

	// One mutex per productID, held across mutating asset operations so two
	// concurrent writers cannot interleave normalize/write/persist steps.
	locks sync.Map
}

func NewReconciler(store *Store, norm *Normalizer, recorder ImageRecorder, placeholder string, log logger.ZapLogger) *Reconciler {
	return &Reconciler{
		store:       store,
		norm:        norm,
		recorder:    recorder,
		logger:      log,
		placeholder: placeholder,
	}
}

func (r *Reconciler) lock(productID int64) func() {
	v, _ := r.locks.LoadOrStore(productID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func productDir(productID int64) string {
	return path.Join("products", strconv.FormatInt(productID, 10))
}

// CanonicalName is the slot-indexed filename of the canonical layout.
func CanonicalName(productID int64, slot int) string {
	return fmt.Sprintf("%d_%d.jpg", productID, slot)
}

// resolveState carries one resolution pass over a product directory.
type resolveState struct {
	product *model.Product
	baseURL string
	dir     string
	dbNames [SlotCount]string
	// allEmpty means no slot column has a value: a fully-legacy row the
	// database has no opinion about, so files on disk are taken at face value.
	allEmpty bool
	urls     []string        // len 8: slots 0-3 full, 4-7 thumbnails
	valid    map[string]bool // filenames that survived resolution
}

// A resolveStrategy claims slots from the directory and returns how many it
// accepted. Strategies run in fixed priority order; the first one that accepts
// anything ends the chain.
type resolveStrategy func(*resolveState) int

// ResolveImageURLs computes the authoritative 8-URL sequence for a product
// (full images then matching thumbnails, empty string for absent) and sweeps
// any file that no longer has a valid reference. Deletion failures are logged
// and tolerated; a read never fails because cleanup could not complete.
//
// The sweep deletes files, so resolution takes the same per-product lock as
// the write paths: a resolve racing an ApplyImages on a stale row must not
// remove a slot file written but not yet persisted.
func (r *Reconciler) ResolveImageURLs(p *model.Product, baseURL string) []string {
	unlock := r.lock(p.ProductID)
	defer unlock()

	st := &resolveState{
		product:  p,
		baseURL:  baseURL,
		dir:      productDir(p.ProductID),
		dbNames:  p.ImageSlots(),
		allEmpty: true,
		urls:     make([]string, SlotCount*2),
		valid:    make(map[string]bool),
	}
	for _, name := range st.dbNames {
		if name != "" {
			st.allEmpty = false
			break
		}
	}

	strategies := []resolveStrategy{r.resolveCanonical, r.resolveLegacy}
	for _, strategy := range strategies {
		if strategy(st) > 0 {
			break
		}
	}

	r.sweep(st)

	populated := false
	for i := 0; i < SlotCount; i++ {
		if st.urls[i] != "" {
			populated = true
			break
		}
	}
	if !populated {
		st.urls[0] = fmt.Sprintf("%s/%s", baseURL, r.placeholder)
	}

	return st.urls
}

// resolveCanonical probes the slot-indexed layout. A canonical file is
// accepted when its slot column is set, or when the row has no slot columns at
// all. A canonical file whose slot the database explicitly left empty while
// other slots have values was detached on purpose: it is deleted, not revived.
func (r *Reconciler) resolveCanonical(st *resolveState) int {
	accepted := 0
	for i := 0; i < SlotCount; i++ {
		name := CanonicalName(st.product.ProductID, i)
		rel := path.Join(st.dir, name)
		if !r.store.Exists(rel) {
			continue
		}
		if st.dbNames[i] != "" || st.allEmpty {
			r.accept(st, i, name)
			accepted++
			continue
		}
		if err := r.store.Delete(rel); err != nil {
			r.logger.Error("failed to delete unreferenced image", zap.String("file", rel), zap.Error(err))
		} else {
			r.logger.Info("deleted image with no database reference",
				zap.Int64("productID", st.product.ProductID), zap.String("file", name))
		}
	}
	return accepted
}

// resolveLegacy falls back to the filenames stored in the slot columns
// verbatim, for rows written before the canonical naming existed.
func (r *Reconciler) resolveLegacy(st *resolveState) int {
	accepted := 0
	for i := 0; i < SlotCount; i++ {
		name := st.dbNames[i]
		if name == "" {
			continue
		}
		if !r.store.Exists(path.Join(st.dir, name)) {
			continue
		}
		r.accept(st, i, name)
		accepted++
	}
	return accepted
}

func (r *Reconciler) accept(st *resolveState, slot int, name string) {
	st.urls[slot] = fmt.Sprintf("%s/%s/%s", st.baseURL, st.dir, name)
	st.valid[name] = true
	if r.store.Exists(path.Join(st.dir, thumbsDir, name)) {
		st.urls[slot+SlotCount] = fmt.Sprintf("%s/%s/%s/%s", st.baseURL, st.dir, thumbsDir, name)
	}
}

// sweep purges every file in the product directory that resolution did not
// mark valid. The thumbs subdirectory is excluded from the main pass and swept
// on its own, against the same valid set (a thumbnail is only as valid as the
// full image it mirrors). Best effort throughout.
func (r *Reconciler) sweep(st *resolveState) {
	entries, err := r.store.List(st.dir)
	if err != nil {
		r.logger.Error("failed to read product directory", zap.String("dir", st.dir), zap.Error(err))
		return
	}
	for _, name := range entries {
		if name == thumbsDir && r.store.IsDir(path.Join(st.dir, thumbsDir)) {
			continue
		}
		if st.valid[name] {
			continue
		}
		if err := r.store.Delete(path.Join(st.dir, name)); err != nil {
			r.logger.Error("failed to delete orphaned image", zap.String("file", name), zap.Error(err))
		} else {
			r.logger.Info("deleted orphaned image",
				zap.Int64("productID", st.product.ProductID), zap.String("file", name))
		}
	}

	thumbs, err := r.store.List(path.Join(st.dir, thumbsDir))
	if err != nil {
		r.logger.Error("failed to read thumbs directory", zap.String("dir", st.dir), zap.Error(err))
		return
	}
	for _, name := range thumbs {
		if st.valid[name] {
			continue
		}
		if err := r.store.Delete(path.Join(st.dir, thumbsDir, name)); err != nil {
			r.logger.Error("failed to delete orphaned thumbnail", zap.String("file", name), zap.Error(err))
		}
	}
}

// ApplyImages normalizes each supplied upload into its canonical slot file,
// generates the matching thumbnail, and persists the resulting filename array
// back to the product row. Slot failures are isolated: a bad upload in one
// slot never aborts the others, and each failure comes back in slotErrs so the
// caller can report exactly which slots were rejected. Only a failure to
// create the base directory, or to persist the filenames, fails the call.
func (r *Reconciler) ApplyImages(ctx context.Context, productID int64, uploads [][]byte) (names [SlotCount]string, slotErrs [SlotCount]error, err error) {
	unlock := r.lock(productID)
	defer unlock()

	dir := productDir(productID)
	if err := r.store.EnsureDir(dir); err != nil {
		return names, slotErrs, err
	}

	for i := 0; i < SlotCount; i++ {
		if i >= len(uploads) || uploads[i] == nil {
			continue
		}
		name := CanonicalName(productID, i)

		full, cerr := r.norm.Normalize(uploads[i])
		if cerr != nil {
			slotErrs[i] = cerr
			r.logger.Error("failed to normalize upload",
				zap.Int64("productID", productID), zap.Int("slot", i), zap.Error(cerr))
			continue
		}
		if werr := r.store.Write(path.Join(dir, name), full); werr != nil {
			slotErrs[i] = werr
			r.logger.Error("failed to write image",
				zap.Int64("productID", productID), zap.Int("slot", i), zap.Error(werr))
			continue
		}

		// Thumbnail is best effort: the read path treats a missing thumbnail
		// as a legal state, not an error.
		if thumb, terr := r.norm.Thumbnail(uploads[i]); terr == nil {
			if werr := r.store.Write(path.Join(dir, thumbsDir, name), thumb); werr != nil {
				r.logger.Warn("failed to write thumbnail",
					zap.Int64("productID", productID), zap.Int("slot", i), zap.Error(werr))
			}
		}

		names[i] = name
	}

	if r.recorder != nil {
		if perr := r.recorder.UpdateProductImages(ctx, productID, names); perr != nil {
			return names, slotErrs, perr
		}
	}
	return names, slotErrs, nil
}

// PurgeProduct removes the product's entire image directory, thumbnails
// included. A directory that never existed is a benign no-op: (false, nil).
func (r *Reconciler) PurgeProduct(productID int64) (bool, error) {
	unlock := r.lock(productID)
	defer unlock()

	return r.store.RemoveTree(productDir(productID))
}

// EnsureCategoryDir creates the legacy category directory whose existence
// tracks the category row.
func (r *Reconciler) EnsureCategoryDir(categoryPath string) error {
	rel, err := cleanCategoryPath(categoryPath)
	if err != nil {
		return err
	}
	return r.store.EnsureDir(rel)
}

// RemoveCategoryDir deletes a category directory tree. Missing is benign.
func (r *Reconciler) RemoveCategoryDir(categoryPath string) (bool, error) {
	rel, err := cleanCategoryPath(categoryPath)
	if err != nil {
		return false, err
	}
	return r.store.RemoveTree(rel)
}

func cleanCategoryPath(p string) (string, error) {
	cleaned := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if cleaned == "." || cleaned == "/" || strings.HasPrefix(cleaned, "/") ||
		cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", &apperrors.ValidationError{Field: "categoryPath", Reason: "invalid path"}
	}
	return cleaned, nil
}
