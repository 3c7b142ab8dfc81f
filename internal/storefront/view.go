package storefront

import (
	"math"
	"strings"

	"github.com/Lixing-Zhang/online-store/internal/models"
	"github.com/shopspring/decimal"
)

const (
	hitRating          = 4.5
	installmentMonths  = 24
	badgeInStock       = "In stock"
	badgeOutOfStock    = "Out of stock"
	badgeHit           = "Hit"
	maxStars           = 5
	starFull, starNone = "★", "☆"
)

// Card is the display data for one product tile
type Card struct {
	Product     models.Product
	Badges      []string
	Stars       string
	Installment decimal.Decimal
	CanAdd      bool
}

// NewCard derives badges, the star row and the monthly installment hint
func NewCard(product models.Product) Card {
	card := Card{
		Product:     product,
		Stars:       stars(product.Rating),
		Installment: installment(product.Price),
		CanAdd:      product.InStock(),
	}

	if product.InStock() {
		card.Badges = append(card.Badges, badgeInStock)
	} else {
		card.Badges = append(card.Badges, badgeOutOfStock)
	}
	if product.Rating >= hitRating {
		card.Badges = append(card.Badges, badgeHit)
	}

	return card
}

// installment is price / 24 rounded to whole currency units
func installment(price float64) decimal.Decimal {
	return decimal.NewFromFloat(price).
		Div(decimal.NewFromInt(installmentMonths)).
		Round(0)
}

func stars(rating float64) string {
	full := int(math.Round(rating))
	full = max(0, min(maxStars, full))
	return strings.Repeat(starFull, full) + strings.Repeat(starNone, maxStars-full)
}
