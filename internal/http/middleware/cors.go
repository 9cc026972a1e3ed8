package middleware

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oumacavin/smartlearn-backend/internal/platform/envutil"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

// defaultAllowedOrigins covers the local admin-frontend dev servers.
const defaultAllowedOrigins = "http://localhost:3000,http://localhost:5173,http://127.0.0.1:3000,http://127.0.0.1:5173"

// CORS reads CORS_ALLOWED_ORIGINS (comma-separated) at construction time.
func CORS(log *logger.Logger) gin.HandlerFunc {
	raw := envutil.GetEnv("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins, log)
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	})
}
