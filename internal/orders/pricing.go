package orders

import (
	"math"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/config"
)

// Quote derives shipping, tax and total from a subtotal. Orders hitting
// the free-shipping threshold ship free; tax applies to the subtotal only.
func Quote(p config.Pricing, subtotal float64) (shipping, tax, total float64) {
	shipping = p.ShippingFee
	if subtotal >= p.FreeShippingMin {
		shipping = 0
	}
	tax = round2(subtotal * p.TaxRate)
	total = round2(subtotal + shipping + tax)
	return shipping, tax, total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
