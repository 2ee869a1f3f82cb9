package httputil

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// ImageBaseURL reconstructs the absolute URL prefix the image tree is served
// under, from the caller's point of view (scheme and host taken from the
// request, honoring a forwarding proxy).
func ImageBaseURL(c *gin.Context, prefix string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if fwd := c.GetHeader("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, prefix)
}
