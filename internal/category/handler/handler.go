package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/craftmarket/catalog-service/internal/apperrors"
	"github.com/craftmarket/catalog-service/internal/category"
	"github.com/craftmarket/catalog-service/internal/category/dto"
	"github.com/craftmarket/catalog-service/internal/httputil"
	"github.com/craftmarket/catalog-service/pkg/logger"
)

type CategoryHandler struct {
	uc        category.UseCase
	urlPrefix string
	logger    logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, urlPrefix string, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:        uc,
		urlPrefix: urlPrefix,
		logger:    log,
	}
}

// GetAll handles GET /get-all-categories: the nested navigation tree.
func (h *CategoryHandler) GetAll(c *gin.Context) {
	tree, err := h.uc.GetCategoryTree(c.Request.Context())
	if err != nil {
		httputil.RespondError(c, h.logger, err, "Failed to fetch categories")
		return
	}
	c.JSON(http.StatusOK, tree)
}

// GetAllAdmin handles GET /admin/get-all-categories: the flat join rows the
// admin UI edits against.
func (h *CategoryHandler) GetAllAdmin(c *gin.Context) {
	rows, err := h.uc.GetAllRows(c.Request.Context())
	if err != nil {
		httputil.RespondError(c, h.logger, err, "Failed to fetch categories")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetFeatured handles GET /category1.
func (h *CategoryHandler) GetFeatured(c *gin.Context) {
	products, err := h.uc.GetFeaturedProducts(c.Request.Context(), httputil.ImageBaseURL(c, h.urlPrefix))
	if err != nil {
		httputil.RespondError(c, h.logger, err, "Failed to fetch categories")
		return
	}
	c.JSON(http.StatusOK, products)
}

// Rename handles PUT /categories/rename.
func (h *CategoryHandler) Rename(c *gin.Context) {
	var input dto.RenameCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "categoryName, categoryID and categoryLevel are required; level must be 1, 2, or 3"})
		return
	}

	if err := h.uc.RenameCategory(c.Request.Context(), &input); err != nil {
		httputil.RespondError(c, h.logger, err, "Failed to rename category due to a server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Category renamed successfully!",
		"categoryID":   input.CategoryID,
		"categoryName": input.CategoryName,
	})
}

// Create handles POST /categories/create.
func (h *CategoryHandler) Create(c *gin.Context) {
	var input dto.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "categoryName, categoryLevel and categoryPath are required; level must be 1, 2, or 3"})
		return
	}

	id, err := h.uc.CreateCategory(c.Request.Context(), &input)
	if err != nil {
		// A filesystem error after the insert means the row exists without its
		// directory: report that divergence, not a generic create failure.
		var fsErr *apperrors.FilesystemError
		if errors.As(err, &fsErr) {
			h.logger.Error("category directory creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "partial_failure",
				"message": "Category created but its directory could not be created",
				"id":      id,
			})
			return
		}
		httputil.RespondError(c, h.logger, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":       "Category created successfully!",
		"categoryName":  input.CategoryName,
		"parentId":      input.ParentID,
		"categoryLevel": input.CategoryLevel,
		"id":            id,
	})
}

// Delete handles DELETE /categories/delete.
func (h *CategoryHandler) Delete(c *gin.Context) {
	var input dto.DeleteCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "categoryID, categoryLevel and categoryPath are required; level must be 1, 2, or 3"})
		return
	}

	if err := h.uc.DeleteCategory(c.Request.Context(), &input); err != nil {
		var fsErr *apperrors.FilesystemError
		if errors.As(err, &fsErr) {
			h.logger.Error("category directory removal failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "partial_failure",
				"message": "Category deleted but its directory could not be removed",
			})
			return
		}
		httputil.RespondError(c, h.logger, err, "Failed to delete category due to a server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Category deleted successfully!",
		"categoryID":    input.CategoryID,
		"categoryLevel": input.CategoryLevel,
	})
}
