// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hydrolink/hydrolink-backend/internal/i18n"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// The HydroLink frontend is Spanish-first
		lang := "es"

		// Handle headers like "es-MX,es;q=0.9,en;q=0.8"
		if header := c.GetHeader("Accept-Language"); header != "" {
			firstLang := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
			for _, supported := range i18n.GetSupportedLanguages() {
				if strings.HasPrefix(firstLang, supported) {
					lang = supported
					break
				}
			}
		}

		// Set language in context
		c.Set("lang", lang)
		c.Next()
	}
}
