package orders

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/domain/order"
)

func sampleOrder() order.Order {
	sku := "TS-BLK-M"
	return order.Order{
		ID:          7,
		OrderNumber: "ORD-20250131-9F2C41AB",
		Items: []order.LineItem{
			{Name: "Linen Shirt", Size: "M", Color: "Black", SKU: &sku, Price: 39.99, Quantity: 2},
			{Name: "Silk Scarf", Size: "One Size", Color: "Red", Price: 20.02, Quantity: 1},
		},
		Shipping: order.Address{
			FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
			Phone: "555-0100", Street: "1 Analytical Way", City: "London",
			State: "LDN", Zip: "E1 6AN", Country: "UK",
		},
		Subtotal:    100,
		ShippingFee: 0,
		Tax:         8,
		Total:       108,
		Status:      order.StatusProcessing,
		CreatedAt:   time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC),
	}
}

func TestInvoiceDocument(t *testing.T) {
	doc := InvoiceDocument(sampleOrder())

	assert.Equal(t, "INV-ORD-20250131-9F2C41AB", doc["invoice_number"])
	assert.Equal(t, 100.0, doc["subtotal"])
	assert.Equal(t, 108.0, doc["total"])
	assert.Equal(t, false, doc["paid"])

	lines, ok := doc["lines"].([]gin.H)
	require.True(t, ok)
	require.Len(t, lines, 2)
	assert.Equal(t, 79.98, lines[0]["amount"])
	assert.Equal(t, 20.02, lines[1]["amount"])

	billTo, ok := doc["bill_to"].(gin.H)
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", billTo["name"])
}

func TestShippingLabelDocument(t *testing.T) {
	doc := ShippingLabelDocument(sampleOrder())

	assert.Equal(t, "Ada Lovelace", doc["recipient"])
	assert.Equal(t, 3, doc["units"])
	assert.Equal(t, "1 Analytical Way, London, LDN E1 6AN, UK", doc["address"])
	assert.Equal(t, order.StatusProcessing, doc["status"])
}
