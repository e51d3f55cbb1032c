// internal/models/review_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderStars(t *testing.T) {
	cases := []struct {
		rating   int
		expected string
	}{
		{0, "☆☆☆☆☆"},
		{1, "★☆☆☆☆"},
		{3, "★★★☆☆"},
		{5, "★★★★★"},
		{-2, "☆☆☆☆☆"},
		{9, "★★★★★"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, RenderStars(tc.rating), "rating %d", tc.rating)
	}
}

func TestUserDisplayName(t *testing.T) {
	user := &User{Username: "mgarcia", FullName: "María García"}
	assert.Equal(t, "María García", user.DisplayName())

	user.FullName = ""
	assert.Equal(t, "mgarcia", user.DisplayName())
}
