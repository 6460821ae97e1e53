package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP bypasses limits for loopback and private-range callers,
// such as an in-cluster Prometheus scraping /debug/metrics.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		return parsed != nil && (parsed.IsLoopback() || parsed.IsPrivate())
	}
}
