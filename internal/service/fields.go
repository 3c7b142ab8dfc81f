package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Mutable product fields accepted in create and update payloads
const (
	fieldName        = "name"
	fieldCategory    = "category"
	fieldDescription = "description"
	fieldPrice       = "price"
	fieldStock       = "stock"
	fieldRating      = "rating"
	fieldImage       = "image"
)

// toNumber converts a decoded body value to a finite float.
// Strings are parsed after trimming; anything else is not a number.
func toNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toText converts a decoded body value to a trimmed string.
// Numbers are formatted; other types report false.
func toText(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), true
	case json.Number:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	default:
		return "", false
	}
}

// parsePrice requires a finite number greater than zero
func parsePrice(v any) (float64, error) {
	price, ok := toNumber(v)
	if !ok || price <= 0 {
		return 0, ErrInvalidPrice
	}
	return price, nil
}

// parseStock coerces non-numeric input to 0 and rejects negative or fractional counts
func parseStock(v any) (int, error) {
	stock, ok := toNumber(v)
	if !ok {
		return 0, nil
	}
	if stock < 0 || stock != math.Trunc(stock) || stock > math.MaxInt32 {
		return 0, ErrInvalidStock
	}
	return int(stock), nil
}

// parseRating coerces non-numeric input to 0 and rejects values outside 0..5
func parseRating(v any) (float64, error) {
	rating, ok := toNumber(v)
	if !ok {
		return 0, nil
	}
	if rating < 0 || rating > 5 {
		return 0, ErrInvalidRating
	}
	return rating, nil
}

// requiredText returns the trimmed value or err when missing or blank
func requiredText(v any, err error) (string, error) {
	s, ok := toText(v)
	if !ok || s == "" {
		return "", err
	}
	return s, nil
}

// optionalText returns the trimmed value, or "" for null and non-text input
func optionalText(v any) string {
	s, _ := toText(v)
	return s
}
