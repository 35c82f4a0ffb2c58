package orders

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/domain/order"
)

// InvoiceDocument assembles the invoice payload from the order snapshot.
// Rendering (PDF etc.) happens outside this service.
func InvoiceDocument(o order.Order) gin.H {
	lines := make([]gin.H, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, gin.H{
			"name":       it.Name,
			"size":       it.Size,
			"color":      it.Color,
			"sku":        it.SKU,
			"unit_price": it.Price,
			"quantity":   it.Quantity,
			"amount":     round2(it.Price * float64(it.Quantity)),
		})
	}
	return gin.H{
		"invoice_number": "INV-" + o.OrderNumber,
		"order_number":   o.OrderNumber,
		"issued_at":      o.CreatedAt,
		"bill_to": gin.H{
			"name":    o.Shipping.FirstName + " " + o.Shipping.LastName,
			"email":   o.Shipping.Email,
			"street":  o.Shipping.Street,
			"city":    o.Shipping.City,
			"state":   o.Shipping.State,
			"zip":     o.Shipping.Zip,
			"country": o.Shipping.Country,
		},
		"lines":    lines,
		"subtotal": o.Subtotal,
		"shipping": o.ShippingFee,
		"tax":      o.Tax,
		"total":    o.Total,
		"paid":     o.IsPaid,
	}
}

func ShippingLabelDocument(o order.Order) gin.H {
	units := 0
	for _, it := range o.Items {
		units += it.Quantity
	}
	return gin.H{
		"order_number": o.OrderNumber,
		"recipient":    o.Shipping.FirstName + " " + o.Shipping.LastName,
		"phone":        o.Shipping.Phone,
		"address": fmt.Sprintf("%s, %s, %s %s, %s",
			o.Shipping.Street, o.Shipping.City, o.Shipping.State, o.Shipping.Zip, o.Shipping.Country),
		"units":  units,
		"status": o.Status,
	}
}
