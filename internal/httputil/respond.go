package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/craftmarket/catalog-service/internal/apperrors"
	"github.com/craftmarket/catalog-service/pkg/logger"
)

// RespondError maps the error taxonomy to HTTP statuses. Validation and
// not-found details are safe to echo; everything else is logged and replaced
// with a generic message so internals never leak.
func RespondError(c *gin.Context, log logger.ZapLogger, err error, generic string) {
	var vErr *apperrors.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"message": vErr.Error()})
		return
	}
	var nfErr *apperrors.NotFoundError
	if errors.As(err, &nfErr) {
		c.JSON(http.StatusNotFound, gin.H{"error": nfErr.Error()})
		return
	}

	log.Error(generic, zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": generic})
}
