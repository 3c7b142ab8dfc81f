package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Lixing-Zhang/online-store/internal/models"
)

const (
	msgSaveFailed      = "Failed to save product"
	msgDeleteFailed    = "Failed to delete product"
	msgDeleteConfirm   = "Delete this product?"
	msgCheckoutPending = "Checkout is not available yet"
)

var (
	ErrOutOfStock          = errors.New("product is out of stock")
	ErrCheckoutUnavailable = errors.New("checkout is not available")
	ErrUnknownTheme        = errors.New("unknown theme")
)

// CatalogAPI is the subset of the catalog REST API the storefront drives
type CatalogAPI interface {
	ListProducts(ctx context.Context, filter models.ProductFilter) (*models.ProductList, error)
	CreateProduct(ctx context.Context, fields models.ProductFields) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, fields models.ProductFields) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
}

// Alerter surfaces a blocking message to the shopper
type Alerter interface {
	Alert(message string)
}

// Confirmer asks the shopper a yes/no question
type Confirmer interface {
	Confirm(message string) bool
}

// Theme is the visual theme of the storefront
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme accepts "dark" or "light"
func ParseTheme(s string) (Theme, error) {
	switch theme := Theme(strings.ToLower(strings.TrimSpace(s))); theme {
	case ThemeDark, ThemeLight:
		return theme, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
	}
}

// Filters are the shopper's grid controls. Category and InStock are
// applied by the server; SortBy is applied locally.
type Filters struct {
	Category string
	InStock  bool
	SortBy   SortMode
}

// Page is the storefront view model: the loaded catalog, the shopper's
// search and filters, the cart and the product modal.
// A Page is not safe for concurrent use.
type Page struct {
	api     CatalogAPI
	alerter Alerter
	confirm Confirmer
	logger  *slog.Logger

	loading     bool
	theme       Theme
	searchQuery string
	filters     Filters

	products   []models.Product
	categories []string

	cart     Cart
	cartOpen bool

	modalOpen bool
	editing   *models.Product
}

// PageOption configures a Page
type PageOption func(*Page)

// WithAlerter sets where alerts are shown
func WithAlerter(a Alerter) PageOption {
	return func(p *Page) { p.alerter = a }
}

// WithConfirmer sets how delete confirmations are asked
func WithConfirmer(c Confirmer) PageOption {
	return func(p *Page) { p.confirm = c }
}

// WithLogger sets the page logger
func WithLogger(l *slog.Logger) PageOption {
	return func(p *Page) { p.logger = l }
}

// WithTheme sets the initial theme
func WithTheme(t Theme) PageOption {
	return func(p *Page) { p.theme = t }
}

// NewPage creates a page backed by api. Without a Confirmer every delete
// is declined.
func NewPage(api CatalogAPI, opts ...PageOption) *Page {
	p := &Page{
		api:     api,
		logger:  slog.Default(),
		theme:   ThemeDark,
		filters: Filters{SortBy: SortDefault},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load fetches products for the current filters and the category list.
// Failures are logged and leave the previous state in place.
func (p *Page) Load(ctx context.Context) {
	p.loadProducts(ctx)
	p.loadCategories(ctx)
}

func (p *Page) loadProducts(ctx context.Context) {
	p.loading = true
	defer func() { p.loading = false }()

	list, err := p.api.ListProducts(ctx, models.ProductFilter{
		Category: p.filters.Category,
		InStock:  p.filters.InStock,
	})
	if err != nil {
		p.logger.Error("failed to load products", "error", err)
		return
	}

	p.products = slices.Clone(list.Products)
	p.logger.Debug("products loaded", "count", len(p.products))
}

func (p *Page) loadCategories(ctx context.Context) {
	categories, err := p.api.Categories(ctx)
	if err != nil {
		p.logger.Error("failed to load categories", "error", err)
		return
	}
	p.categories = categories
}

// Loading reports whether a product fetch is in flight
func (p *Page) Loading() bool { return p.loading }

// Products returns the loaded products in server order
func (p *Page) Products() []models.Product { return slices.Clone(p.products) }

// Categories returns the known categories
func (p *Page) Categories() []string { return slices.Clone(p.categories) }

// Theme returns the active theme
func (p *Page) Theme() Theme { return p.theme }

// SetTheme switches the theme
func (p *Page) SetTheme(t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	p.theme = t
	return nil
}

// ToggleTheme flips between dark and light
func (p *Page) ToggleTheme() Theme {
	if p.theme == ThemeDark {
		p.theme = ThemeLight
	} else {
		p.theme = ThemeDark
	}
	return p.theme
}

// SearchQuery returns the current search text
func (p *Page) SearchQuery() string { return p.searchQuery }

// SetSearchQuery changes the search text; no refetch happens
func (p *Page) SetSearchQuery(q string) { p.searchQuery = q }

// Filters returns the current filters
func (p *Page) Filters() Filters { return p.filters }

// SetFilters replaces the filters. Products are refetched only when a
// server-side filter (category or in-stock) changed.
func (p *Page) SetFilters(ctx context.Context, f Filters) {
	if f.SortBy == "" {
		f.SortBy = SortDefault
	}
	prev := p.filters
	p.filters = f

	if prev.Category != f.Category || prev.InStock != f.InStock {
		p.loadProducts(ctx)
	}
}

// ResetFilters restores the default filters
func (p *Page) ResetFilters(ctx context.Context) {
	p.SetFilters(ctx, Filters{SortBy: SortDefault})
}

// VisibleProducts applies the search query and sort order to the loaded
// products. Search is a case-insensitive substring match on the name.
func (p *Page) VisibleProducts() []models.Product {
	query := strings.ToLower(strings.TrimSpace(p.searchQuery))

	visible := make([]models.Product, 0, len(p.products))
	for _, product := range p.products {
		if query == "" || strings.Contains(strings.ToLower(product.Name), query) {
			visible = append(visible, product)
		}
	}

	return sortProducts(visible, p.filters.SortBy)
}

// Cart returns the shopper's cart
func (p *Page) Cart() *Cart { return &p.cart }

// CartOpen reports whether the cart drawer is shown
func (p *Page) CartOpen() bool { return p.cartOpen }

// OpenCart shows the cart drawer
func (p *Page) OpenCart() { p.cartOpen = true }

// CloseCart hides the cart drawer
func (p *Page) CloseCart() { p.cartOpen = false }

// AddToCart adds one unit and opens the cart. Out-of-stock products are
// refused.
func (p *Page) AddToCart(product models.Product) error {
	if !product.InStock() {
		return ErrOutOfStock
	}
	p.cart.Add(product)
	p.cartOpen = true
	return nil
}

// UpdateCartQuantity sets a line quantity; below 1 removes the line
func (p *Page) UpdateCartQuantity(productID string, quantity int) {
	p.cart.UpdateQuantity(productID, quantity)
}

// RemoveFromCart drops a line from the cart
func (p *Page) RemoveFromCart(productID string) {
	p.cart.Remove(productID)
}

// Checkout is not implemented; the shopper is told so and the cart is kept
func (p *Page) Checkout() error {
	p.alert(msgCheckoutPending)
	return ErrCheckoutUnavailable
}

// ModalOpen reports whether the product modal is shown
func (p *Page) ModalOpen() bool { return p.modalOpen }

// Editing returns the product being edited, or nil when creating
func (p *Page) Editing() *models.Product {
	if p.editing == nil {
		return nil
	}
	product := *p.editing
	return &product
}

// OpenCreate opens an empty product modal
func (p *Page) OpenCreate() {
	p.editing = nil
	p.modalOpen = true
}

// OpenEdit opens the modal prefilled with product
func (p *Page) OpenEdit(product models.Product) {
	p.editing = &product
	p.modalOpen = true
}

// CloseModal hides the modal and forgets the edited product
func (p *Page) CloseModal() {
	p.modalOpen = false
	p.editing = nil
}

// Form returns the initial form for the open modal
func (p *Page) Form() ProductForm {
	return NewProductForm(p.editing)
}

// Submit validates form and saves it: an update when a product is being
// edited, a create otherwise. On success the local list is patched, the
// modal closes and categories are refetched. On failure the shopper is
// alerted and nothing changes.
func (p *Page) Submit(ctx context.Context, form ProductForm) (*models.Product, error) {
	fields, err := form.Validate()
	if err != nil {
		p.alert(err.Error())
		return nil, err
	}

	var saved *models.Product
	if p.editing != nil {
		saved, err = p.api.UpdateProduct(ctx, p.editing.ID, fields)
	} else {
		saved, err = p.api.CreateProduct(ctx, fields)
	}
	if err != nil {
		p.logger.Error("failed to save product", "error", err)
		p.alert(msgSaveFailed)
		return nil, err
	}

	if idx := p.indexOf(saved.ID); idx >= 0 {
		p.products[idx] = *saved
	} else {
		p.products = append(p.products, *saved)
	}

	p.CloseModal()
	p.loadCategories(ctx)

	return saved, nil
}

// Delete asks for confirmation and deletes the product. The product is
// removed locally only after the server confirms. Cart lines are kept.
// The returned bool reports whether a delete happened.
func (p *Page) Delete(ctx context.Context, productID string) (bool, error) {
	if p.confirm == nil || !p.confirm.Confirm(msgDeleteConfirm) {
		return false, nil
	}

	if err := p.api.DeleteProduct(ctx, productID); err != nil {
		p.logger.Error("failed to delete product", "product_id", productID, "error", err)
		p.alert(msgDeleteFailed)
		return false, err
	}

	if idx := p.indexOf(productID); idx >= 0 {
		p.products = slices.Delete(p.products, idx, idx+1)
	}
	return true, nil
}

// FindProduct looks up a loaded product by id
func (p *Page) FindProduct(productID string) (models.Product, bool) {
	if idx := p.indexOf(productID); idx >= 0 {
		return p.products[idx], true
	}
	return models.Product{}, false
}

func (p *Page) indexOf(productID string) int {
	return slices.IndexFunc(p.products, func(product models.Product) bool {
		return product.ID == productID
	})
}

func (p *Page) alert(message string) {
	if p.alerter != nil {
		p.alerter.Alert(message)
		return
	}
	p.logger.Warn("alert", "message", message)
}
