package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/online-store/internal/models"
	"github.com/Lixing-Zhang/online-store/internal/repository"
)

var (
	ErrNameRequired     = errors.New("name is required")
	ErrCategoryRequired = errors.New("category is required")
	ErrInvalidPrice     = errors.New("price must be a number greater than zero")
	ErrInvalidStock     = errors.New("stock must be a non-negative integer")
	ErrInvalidRating    = errors.New("rating must be between 0 and 5")
	ErrEmptyUpdate      = errors.New("request body must contain at least one field")
)

var validationErrors = []error{
	ErrNameRequired,
	ErrCategoryRequired,
	ErrInvalidPrice,
	ErrInvalidStock,
	ErrInvalidRating,
	ErrEmptyUpdate,
}

// IsValidationError reports whether err is caused by a bad client payload
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ProductService handles business logic for products
type ProductService struct {
	repo             repository.ProductRepository
	placeholderImage string
}

// ServiceOption configures a ProductService
type ServiceOption func(*ProductService)

// WithPlaceholderImage sets the image assigned to products created without one
func WithPlaceholderImage(image string) ServiceOption {
	return func(s *ProductService) {
		if image != "" {
			s.placeholderImage = image
		}
	}
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductRepository, opts ...ServiceOption) *ProductService {
	s := &ProductService{
		repo:             repo,
		placeholderImage: models.DefaultImage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListProducts returns the products matching filter together with their count
func (s *ProductService) ListProducts(ctx context.Context, filter models.ProductFilter) (*models.ProductList, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return &models.ProductList{
		Count:    len(products),
		Products: products,
	}, nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates a raw payload and stores the resulting product.
// name, category and price are required; stock and rating fall back to 0 when
// they are not numbers.
func (s *ProductService) CreateProduct(ctx context.Context, fields models.ProductFields) (*models.Product, error) {
	name, err := requiredText(fields[fieldName], ErrNameRequired)
	if err != nil {
		return nil, err
	}
	category, err := requiredText(fields[fieldCategory], ErrCategoryRequired)
	if err != nil {
		return nil, err
	}
	price, err := parsePrice(fields[fieldPrice])
	if err != nil {
		return nil, err
	}
	stock, err := parseStock(fields[fieldStock])
	if err != nil {
		return nil, err
	}
	rating, err := parseRating(fields[fieldRating])
	if err != nil {
		return nil, err
	}

	image := optionalText(fields[fieldImage])
	if image == "" {
		image = s.placeholderImage
	}

	return s.repo.Create(ctx, models.Product{
		Name:        name,
		Category:    category,
		Description: optionalText(fields[fieldDescription]),
		Price:       price,
		Stock:       stock,
		Rating:      rating,
		Image:       image,
	})
}

// UpdateProduct overwrites every mutable field present in fields.
// An empty payload is rejected before the product is looked up.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, fields models.ProductFields) (*models.Product, error) {
	if len(fields) == 0 {
		return nil, ErrEmptyUpdate
	}

	return s.repo.Update(ctx, id, func(p *models.Product) error {
		return s.applyFields(p, fields)
	})
}

func (s *ProductService) applyFields(p *models.Product, fields models.ProductFields) error {
	var err error

	if v, ok := fields[fieldName]; ok {
		if p.Name, err = requiredText(v, ErrNameRequired); err != nil {
			return err
		}
	}
	if v, ok := fields[fieldCategory]; ok {
		if p.Category, err = requiredText(v, ErrCategoryRequired); err != nil {
			return err
		}
	}
	if v, ok := fields[fieldDescription]; ok {
		p.Description = optionalText(v)
	}
	if v, ok := fields[fieldPrice]; ok {
		if p.Price, err = parsePrice(v); err != nil {
			return err
		}
	}
	if v, ok := fields[fieldStock]; ok {
		if p.Stock, err = parseStock(v); err != nil {
			return err
		}
	}
	if v, ok := fields[fieldRating]; ok {
		if p.Rating, err = parseRating(v); err != nil {
			return err
		}
	}
	if v, ok := fields[fieldImage]; ok {
		p.Image = optionalText(v)
		if p.Image == "" {
			p.Image = s.placeholderImage
		}
	}

	return nil
}

// DeleteProduct removes a product by ID
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ListCategories returns the distinct categories of the current products
func (s *ProductService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CountProducts returns how many products are stored
func (s *ProductService) CountProducts(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
