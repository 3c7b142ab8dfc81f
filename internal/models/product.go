package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// DefaultImage is the placeholder image assigned to products created without one
const DefaultImage = "/images/product.jpg"

// Product represents a catalog entry
// JSON field names match what the storefront expects
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Rating      float64 `json:"rating"`
	Image       string  `json:"image"`
}

// InStock reports whether at least one unit is available
func (p Product) InStock() bool {
	return p.Stock > 0
}

// ErrInvalidProduct is returned by Validate
var ErrInvalidProduct = errors.New("invalid product")

// Validate checks the stored-product invariants: non-blank name and category,
// finite price above zero, non-negative stock and rating within 0..5.
func (p Product) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case strings.TrimSpace(p.Category) == "":
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	case math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price <= 0:
		return fmt.Errorf("%w: price must be greater than zero", ErrInvalidProduct)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	case math.IsNaN(p.Rating) || p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrInvalidProduct)
	}
	return nil
}

// ProductFilter narrows a product listing. Zero values disable a predicate.
type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	InStock  bool
}

// Matches reports whether the product satisfies every enabled predicate
func (f ProductFilter) Matches(p Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.InStock && !p.InStock() {
		return false
	}
	return true
}

// ProductList is the response body of the product listing endpoint
type ProductList struct {
	Count    int       `json:"count"`
	Products []Product `json:"products"`
}

// ProductFields carries a raw create or update payload.
// Values are whatever the body decoder produced: strings, json.Number,
// float64, bool or nil.
type ProductFields map[string]any
