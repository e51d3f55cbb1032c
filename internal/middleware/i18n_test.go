// internal/middleware/i18n_test.go
package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestI18nMiddlewareLanguageSelection(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		header   string
		expected string
	}{
		{"es-MX,es;q=0.9,en;q=0.8", "es"},
		{"en-US,en;q=0.9", "en"},
		{"fr-FR,fr;q=0.9", "es"},
		{"", "es"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		if tc.header != "" {
			c.Request.Header.Set("Accept-Language", tc.header)
		}

		I18nMiddleware()(c)

		lang, exists := c.Get("lang")
		assert.True(t, exists, "header %q", tc.header)
		assert.Equal(t, tc.expected, lang, "header %q", tc.header)
	}
}
