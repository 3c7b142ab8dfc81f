package repository

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/Lixing-Zhang/online-store/internal/models"
	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrIDUnavailable   = errors.New("no unused product id could be generated")
)

// maxIDAttempts bounds how many generator draws Create makes before giving up
const maxIDAttempts = 32

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product models.Product) (*models.Product, error)
	Update(ctx context.Context, id string, mutate func(*models.Product) error) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
}

// Option configures an InMemoryProductRepository
type Option func(*InMemoryProductRepository)

// WithProducts seeds the repository. Products without an ID get a generated one;
// later duplicates of an ID, and products no ID can be generated for, are dropped.
func WithProducts(products []models.Product) Option {
	return func(r *InMemoryProductRepository) {
		r.seed = products
	}
}

// WithIDGenerator overrides the identifier source used by Create
func WithIDGenerator(gen func() string) Option {
	return func(r *InMemoryProductRepository) {
		if gen != nil {
			r.newID = gen
		}
	}
}

// InMemoryProductRepository implements ProductRepository with in-memory storage.
// Products keep insertion order; every method holds the lock for its whole run,
// so each operation is atomic with respect to the others.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	index    map[string]int
	newID    func() string
	seed     []models.Product
}

// NewInMemoryProductRepository creates a new in-memory product repository
func NewInMemoryProductRepository(opts ...Option) *InMemoryProductRepository {
	r := &InMemoryProductRepository{
		index: make(map[string]int),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, p := range r.seed {
		if p.ID == "" {
			id, err := r.uniqueID()
			if err != nil {
				continue
			}
			p.ID = id
		}
		if _, exists := r.index[p.ID]; exists {
			continue
		}
		r.index[p.ID] = len(r.products)
		r.products = append(r.products, p)
	}
	r.seed = nil

	return r
}

// List returns the products matching filter in insertion order
func (r *InMemoryProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(r.products))
	for _, product := range r.products {
		if filter.Matches(product) {
			products = append(products, product)
		}
	}
	return products, nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, exists := r.index[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	product := r.products[i]
	return &product, nil
}

// Create stores product under a freshly generated ID and appends it to the list.
// Any ID set on the argument is ignored. Returns ErrIDUnavailable when the
// generator keeps producing empty or taken IDs.
func (r *InMemoryProductRepository) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.uniqueID()
	if err != nil {
		return nil, err
	}
	product.ID = id
	r.index[product.ID] = len(r.products)
	r.products = append(r.products, product)

	return &product, nil
}

// Update applies mutate to a copy of the product and stores the copy only when
// mutate succeeds. The ID cannot be changed.
func (r *InMemoryProductRepository) Update(ctx context.Context, id string, mutate func(*models.Product) error) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, exists := r.index[id]
	if !exists {
		return nil, ErrProductNotFound
	}

	updated := r.products[i]
	if err := mutate(&updated); err != nil {
		return nil, err
	}
	updated.ID = id
	r.products[i] = updated

	return &updated, nil
}

// Delete removes a product, keeping the order of the remaining ones
func (r *InMemoryProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, exists := r.index[id]
	if !exists {
		return ErrProductNotFound
	}

	r.products = slices.Delete(r.products, i, i+1)
	delete(r.index, id)
	for j := i; j < len(r.products); j++ {
		r.index[r.products[j].ID] = j
	}

	return nil
}

// Categories returns the distinct categories in first-seen order
func (r *InMemoryProductRepository) Categories(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, product := range r.products {
		if _, ok := seen[product.Category]; ok {
			continue
		}
		seen[product.Category] = struct{}{}
		categories = append(categories, product.Category)
	}
	return categories, nil
}

// Count returns the number of stored products
func (r *InMemoryProductRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products), nil
}

// uniqueID draws IDs until one is unused, at most maxIDAttempts times.
// Caller must hold the write lock (or be the constructor).
func (r *InMemoryProductRepository) uniqueID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := r.newID()
		if _, taken := r.index[id]; !taken && id != "" {
			return id, nil
		}
	}
	return "", ErrIDUnavailable
}
