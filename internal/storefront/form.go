package storefront

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/online-store/internal/models"
)

var (
	ErrFormName     = errors.New("enter a product name")
	ErrFormCategory = errors.New("choose a category")
	ErrFormPrice    = errors.New("enter a valid price")
	ErrFormStock    = errors.New("enter a valid quantity")
	ErrFormRating   = errors.New("rating must be between 0 and 5")
)

// ProductForm holds the raw text of the create/edit form
type ProductForm struct {
	Name        string
	Category    string
	Description string
	Price       string
	Stock       string
	Rating      string
	Image       string
}

// NewProductForm prefills the form from product, or returns a blank form for nil
func NewProductForm(product *models.Product) ProductForm {
	if product == nil {
		return ProductForm{}
	}
	return ProductForm{
		Name:        product.Name,
		Category:    product.Category,
		Description: product.Description,
		Price:       formatNumber(product.Price),
		Stock:       strconv.Itoa(product.Stock),
		Rating:      formatNumber(product.Rating),
		Image:       product.Image,
	}
}

// Validate checks the form and converts it into an API payload.
// Price must be positive, stock a non-negative integer (blank means 0),
// rating blank or within 0..5.
func (f ProductForm) Validate() (models.ProductFields, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return nil, ErrFormName
	}
	category := strings.TrimSpace(f.Category)
	if category == "" {
		return nil, ErrFormCategory
	}

	price, ok := parseNumber(f.Price)
	if !ok || price <= 0 {
		return nil, ErrFormPrice
	}

	stock := 0.0
	if strings.TrimSpace(f.Stock) != "" {
		stock, ok = parseNumber(f.Stock)
		if !ok || stock < 0 || stock != math.Trunc(stock) {
			return nil, ErrFormStock
		}
	}

	rating := 0.0
	if strings.TrimSpace(f.Rating) != "" {
		rating, ok = parseNumber(f.Rating)
		if !ok || rating < 0 || rating > 5 {
			return nil, ErrFormRating
		}
	}

	fields := models.ProductFields{
		"name":        name,
		"category":    category,
		"description": strings.TrimSpace(f.Description),
		"price":       price,
		"stock":       int(stock),
		"rating":      rating,
	}
	if image := strings.TrimSpace(f.Image); image != "" {
		fields["image"] = image
	}
	return fields, nil
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
