package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftmarket/catalog-service/config"
	authhandler "github.com/craftmarket/catalog-service/internal/auth/handler"
	categoryhandler "github.com/craftmarket/catalog-service/internal/category/handler"
	"github.com/craftmarket/catalog-service/internal/middleware"
	producthandler "github.com/craftmarket/catalog-service/internal/product/handler"
	"github.com/craftmarket/catalog-service/pkg/logger"
)

type Handlers struct {
	Auth     *authhandler.AuthHandler
	Category *categoryhandler.CategoryHandler
	Product  *producthandler.ProductHandler
}

// SetupRouter wires middleware, the static image tree, and every endpoint.
func SetupRouter(cfg *config.Config, h Handlers, log logger.ZapLogger) *gin.Engine {
	if cfg.Server.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(log))
	router.Use(middleware.CORS(cfg.Server.CORSAllow))

	// Resolved image URLs all point back into this static tree.
	router.Static(cfg.Assets.URLPrefix, cfg.Assets.BaseDir)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/login", h.Auth.Login)

	router.GET("/products-by-category/:category1ID", h.Product.GetByCategory)
	router.GET("/products/:id", h.Product.GetByID)
	router.GET("/get-all-categories", h.Category.GetAll)
	router.GET("/category1", h.Category.GetFeatured)

	admin := router.Group("/", middleware.AuthRequired(cfg.JWT.SecretKey))
	{
		admin.GET("/admin/get-all-categories", h.Category.GetAllAdmin)
		admin.PUT("/categories/rename", h.Category.Rename)
		admin.POST("/categories/create", h.Category.Create)
		admin.DELETE("/categories/delete", h.Category.Delete)

		admin.POST("/products/add", h.Product.Add)
		admin.PUT("/products/edit", h.Product.Edit)
		admin.DELETE("/products/delete", h.Product.Delete)
	}

	return router
}
