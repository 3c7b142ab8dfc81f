package storefront

import (
	"slices"

	"github.com/Lixing-Zhang/online-store/internal/models"
	"github.com/shopspring/decimal"
)

// CartItem is a product copy paired with the quantity the shopper wants
type CartItem struct {
	models.Product
	Quantity int `json:"quantity"`
}

// Subtotal is price × quantity
func (i CartItem) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds line items in the order they were first added.
// Product IDs are unique within the cart; quantities are always >= 1.
type Cart struct {
	items []CartItem
}

// Add puts one unit of product in the cart, incrementing an existing line
func (c *Cart) Add(product models.Product) {
	if idx := c.find(product.ID); idx >= 0 {
		c.items[idx].Quantity++
		return
	}
	c.items = append(c.items, CartItem{Product: product, Quantity: 1})
}

// UpdateQuantity sets the quantity of a line. Below 1 removes the line.
// Unknown IDs are ignored.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		c.Remove(productID)
		return
	}
	if idx := c.find(productID); idx >= 0 {
		c.items[idx].Quantity = quantity
	}
}

// Remove drops the line for productID if present
func (c *Cart) Remove(productID string) {
	if idx := c.find(productID); idx >= 0 {
		c.items = slices.Delete(c.items, idx, idx+1)
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the lines
func (c *Cart) Items() []CartItem {
	return slices.Clone(c.items)
}

// Quantity returns the quantity of productID, or 0 when absent
func (c *Cart) Quantity(productID string) int {
	if idx := c.find(productID); idx >= 0 {
		return c.items[idx].Quantity
	}
	return 0
}

// Len is the number of distinct lines
func (c *Cart) Len() int {
	return len(c.items)
}

// Units is the sum of all quantities
func (c *Cart) Units() int {
	units := 0
	for _, item := range c.items {
		units += item.Quantity
	}
	return units
}

// Total is the sum of price × quantity over all lines
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (c *Cart) find(productID string) int {
	return slices.IndexFunc(c.items, func(item CartItem) bool {
		return item.ID == productID
	})
}
