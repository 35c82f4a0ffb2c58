package newsletter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceValid(t *testing.T) {
	for _, s := range []Source{SourceWebsite, SourceCheckout, SourceFooter, SourceAdmin} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Source("mobile-app").Valid())
	assert.False(t, Source("").Valid())
}
