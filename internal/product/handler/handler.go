package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/craftmarket/catalog-service/internal/apperrors"
	"github.com/craftmarket/catalog-service/internal/assets"
	"github.com/craftmarket/catalog-service/internal/httputil"
	"github.com/craftmarket/catalog-service/internal/model"
	"github.com/craftmarket/catalog-service/internal/product"
	"github.com/craftmarket/catalog-service/internal/product/dto"
	"github.com/craftmarket/catalog-service/pkg/logger"
)

type ProductHandler struct {
	uc        product.UseCase
	urlPrefix string
	logger    logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, urlPrefix string, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:        uc,
		urlPrefix: urlPrefix,
		logger:    log,
	}
}

// GetByCategory handles GET /products-by-category/:category1ID.
func (h *ProductHandler) GetByCategory(c *gin.Context) {
	category1ID, err := strconv.ParseInt(c.Param("category1ID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "category1ID must be a number"})
		return
	}

	products, err := h.uc.GetProductsByCategory(c.Request.Context(), category1ID, httputil.ImageBaseURL(c, h.urlPrefix))
	if err != nil {
		httputil.RespondError(c, h.logger, err, "Failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetByID handles GET /products/:id.
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id must be a number"})
		return
	}

	p, err := h.uc.GetProduct(c.Request.Context(), id, httputil.ImageBaseURL(c, h.urlPrefix))
	if err != nil {
		httputil.RespondError(c, h.logger, err, "Failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, p)
}

// Add handles POST /products/add: multipart with a productDetails JSON field
// plus up to four image parts named image_0..image_3.
func (h *ProductHandler) Add(c *gin.Context) {
	input, uploads, ok := h.parseMultipart(c)
	if !ok {
		return
	}

	p, slotErrs, err := h.uc.AddProduct(c.Request.Context(), input, uploads, httputil.ImageBaseURL(c, h.urlPrefix))
	h.respondMutation(c, p, slotErrs, err, "Failed to add product")
}

// Edit handles PUT /products/edit with the same multipart shape as Add.
func (h *ProductHandler) Edit(c *gin.Context) {
	input, uploads, ok := h.parseMultipart(c)
	if !ok {
		return
	}

	p, slotErrs, err := h.uc.UpdateProduct(c.Request.Context(), input, uploads, httputil.ImageBaseURL(c, h.urlPrefix))
	h.respondMutation(c, p, slotErrs, err, "Failed to update product")
}

// Delete handles DELETE /products/delete. The body carries the product object;
// only the ID is used.
func (h *ProductHandler) Delete(c *gin.Context) {
	var input dto.DeleteProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "productID is required"})
		return
	}

	if err := h.uc.DeleteProduct(c.Request.Context(), input.Product.ProductID); err != nil {
		// The row is already gone when the purge fails: report the divergence
		// explicitly instead of pretending the whole delete failed.
		var fsErr *apperrors.FilesystemError
		if errors.As(err, &fsErr) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "partial_failure",
				"message": "Product deleted but its image directory could not be removed",
			})
			return
		}
		httputil.RespondError(c, h.logger, err, "Failed to delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (h *ProductHandler) parseMultipart(c *gin.Context) (*dto.ProductDetails, [][]byte, bool) {
	raw := c.PostForm("productDetails")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "productDetails is required"})
		return nil, nil, false
	}

	var input dto.ProductDetails
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "productDetails is not valid JSON"})
		return nil, nil, false
	}
	if input.ProductName == "" || input.Category1ID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "productName and category1ID are required"})
		return nil, nil, false
	}

	uploads := make([][]byte, assets.SlotCount)
	for i := range uploads {
		fh, err := c.FormFile(fmt.Sprintf("image_%d", i))
		if err != nil {
			continue // slot not supplied
		}
		f, err := fh.Open()
		if err != nil {
			h.logger.Error("failed to open upload part", zap.Int("slot", i), zap.Error(err))
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.logger.Error("failed to read upload part", zap.Int("slot", i), zap.Error(err))
			continue
		}
		uploads[i] = data
	}

	return &input, uploads, true
}

// respondMutation assembles the add/edit response. Three outcomes: clean
// success (the stored product, URLs resolved); partial failure (row written,
// asset step failed — reported distinctly from a total failure); total failure.
func (h *ProductHandler) respondMutation(c *gin.Context, p *model.Product, slotErrs [assets.SlotCount]error, err error, generic string) {
	if err != nil {
		if p != nil {
			h.logger.Error("product row written but asset step failed",
				zap.Int64("productID", p.ProductID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "partial_failure",
				"message": "Product saved but image processing failed",
			})
			return
		}
		httputil.RespondError(c, h.logger, err, generic)
		return
	}

	for i, serr := range slotErrs {
		if serr != nil {
			p.ImageErrors = append(p.ImageErrors, fmt.Sprintf("image_%d: %s", i, serr.Error()))
		}
	}
	c.JSON(http.StatusOK, p)
}
