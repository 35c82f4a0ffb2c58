package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/config"
)

var testPricing = config.Pricing{TaxRate: 0.08, ShippingFee: 10, FreeShippingMin: 100}

func TestQuote(t *testing.T) {
	t.Run("above free shipping threshold", func(t *testing.T) {
		shipping, tax, total := Quote(testPricing, 100)
		assert.Equal(t, 0.0, shipping)
		assert.Equal(t, 8.0, tax)
		assert.Equal(t, 108.0, total)
	})

	t.Run("below threshold pays shipping", func(t *testing.T) {
		shipping, tax, total := Quote(testPricing, 50)
		assert.Equal(t, 10.0, shipping)
		assert.Equal(t, 4.0, tax)
		assert.Equal(t, 64.0, total)
	})

	t.Run("rounds to cents", func(t *testing.T) {
		shipping, tax, total := Quote(testPricing, 19.99)
		assert.Equal(t, 10.0, shipping)
		assert.Equal(t, 1.6, tax)
		assert.Equal(t, 31.59, total)
	})

	t.Run("zero subtotal still ships free over a zero threshold", func(t *testing.T) {
		free := config.Pricing{TaxRate: 0, ShippingFee: 5, FreeShippingMin: 0}
		shipping, tax, total := Quote(free, 0)
		assert.Equal(t, 0.0, shipping)
		assert.Equal(t, 0.0, tax)
		assert.Equal(t, 0.0, total)
	})
}
