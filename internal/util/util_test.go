package util

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Summer Collection", "summer-collection"},
		{"  Kids & Babies  ", "kids-babies"},
		{"Déjà Vu!!", "d-j-vu"},
		{"---", "untitled"},
		{"", "untitled"},
		{"Already-Slugged", "already-slugged"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), tc.in)
	}
}

func TestOrderNumber(t *testing.T) {
	now := time.Date(2025, 1, 31, 9, 30, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^ORD-20250131-[0-9A-F]{8}$`)

	a := OrderNumber(now)
	b := OrderNumber(now)
	assert.Regexp(t, pattern, a)
	assert.Regexp(t, pattern, b)
	assert.NotEqual(t, a, b)
}
