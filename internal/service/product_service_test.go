package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Lixing-Zhang/online-store/internal/models"
	"github.com/Lixing-Zhang/online-store/internal/repository"
)

func newTestService(t *testing.T) (*ProductService, *repository.InMemoryProductRepository) {
	t.Helper()
	repo := repository.NewInMemoryProductRepository(repository.WithProducts([]models.Product{
		{ID: "1", Name: "Bose QuietComfort", Category: "Audio", Price: 24990, Stock: 5, Rating: 4.8, Image: "/img/bose.jpg"},
		{ID: "2", Name: "Galaxy S24", Category: "Phones", Price: 89990, Stock: 0, Rating: 4.6},
		{ID: "3", Name: "AirPods Pro", Category: "Audio", Price: 21990, Stock: 12, Rating: 4.5},
	}))
	return NewProductService(repo), repo
}

func TestProductService_ListProducts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	max := 22000.0

	tests := []struct {
		name    string
		filter  models.ProductFilter
		wantIDs []string
	}{
		{"no filter", models.ProductFilter{}, []string{"1", "2", "3"}},
		{"category", models.ProductFilter{Category: "Audio"}, []string{"1", "3"}},
		{"in stock", models.ProductFilter{InStock: true}, []string{"1", "3"}},
		{"max price", models.ProductFilter{MaxPrice: &max}, []string{"3"}},
		{"no match", models.ProductFilter{Category: "Phones", InStock: true}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.ListProducts(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListProducts() unexpected error = %v", err)
			}
			if list.Count != len(list.Products) {
				t.Errorf("count = %d, len(products) = %d", list.Count, len(list.Products))
			}
			if len(list.Products) != len(tt.wantIDs) {
				t.Fatalf("got %d products, want %d", len(list.Products), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if list.Products[i].ID != id {
					t.Errorf("products[%d].ID = %s, want %s", i, list.Products[i].ID, id)
				}
			}
		})
	}
}

func TestProductService_CreateProduct(t *testing.T) {
	tests := []struct {
		name    string
		fields  models.ProductFields
		wantErr error
		check   func(*testing.T, *models.Product)
	}{
		{
			name:   "minimal payload gets defaults",
			fields: models.ProductFields{"name": "Test", "category": "Audio", "price": 100.0},
			check: func(t *testing.T, p *models.Product) {
				if p.Stock != 0 || p.Rating != 0 {
					t.Errorf("stock/rating = %d/%v, want 0/0", p.Stock, p.Rating)
				}
				if p.Image != models.DefaultImage {
					t.Errorf("image = %s, want placeholder", p.Image)
				}
				if p.Description != "" {
					t.Errorf("description = %q, want empty", p.Description)
				}
			},
		},
		{
			name: "form values are coerced and trimmed",
			fields: models.ProductFields{
				"name": "  iPad Pro ", "category": " Tablets ", "description": " 11 inch ",
				"price": "79990", "stock": "4", "rating": "4.7", "image": "/img/ipad.jpg",
			},
			check: func(t *testing.T, p *models.Product) {
				if p.Name != "iPad Pro" || p.Category != "Tablets" || p.Description != "11 inch" {
					t.Errorf("strings not trimmed: %+v", p)
				}
				if p.Price != 79990 || p.Stock != 4 || p.Rating != 4.7 {
					t.Errorf("numbers not coerced: %+v", p)
				}
				if p.Image != "/img/ipad.jpg" {
					t.Errorf("image = %s", p.Image)
				}
			},
		},
		{
			name:   "json numbers",
			fields: models.ProductFields{"name": "Watch", "category": "Wearables", "price": json.Number("34990.5"), "stock": json.Number("3")},
			check: func(t *testing.T, p *models.Product) {
				if p.Price != 34990.5 || p.Stock != 3 {
					t.Errorf("unexpected numbers: %+v", p)
				}
			},
		},
		{
			name:   "non-numeric stock and rating become zero",
			fields: models.ProductFields{"name": "Cable", "category": "Accessories", "price": 10.0, "stock": "lots", "rating": true},
			check: func(t *testing.T, p *models.Product) {
				if p.Stock != 0 || p.Rating != 0 {
					t.Errorf("stock/rating = %d/%v, want 0/0", p.Stock, p.Rating)
				}
			},
		},
		{"missing name", models.ProductFields{"category": "Audio", "price": 1.0}, ErrNameRequired, nil},
		{"blank name", models.ProductFields{"name": "   ", "category": "Audio", "price": 1.0}, ErrNameRequired, nil},
		{"missing category", models.ProductFields{"name": "x", "price": 1.0}, ErrCategoryRequired, nil},
		{"missing price", models.ProductFields{"name": "x", "category": "Audio"}, ErrInvalidPrice, nil},
		{"zero price", models.ProductFields{"name": "x", "category": "Audio", "price": 0.0}, ErrInvalidPrice, nil},
		{"negative price", models.ProductFields{"name": "x", "category": "Audio", "price": "-5"}, ErrInvalidPrice, nil},
		{"non-numeric price", models.ProductFields{"name": "x", "category": "Audio", "price": "abc"}, ErrInvalidPrice, nil},
		{"negative stock", models.ProductFields{"name": "x", "category": "Audio", "price": 1.0, "stock": -1.0}, ErrInvalidStock, nil},
		{"fractional stock", models.ProductFields{"name": "x", "category": "Audio", "price": 1.0, "stock": 1.5}, ErrInvalidStock, nil},
		{"rating above five", models.ProductFields{"name": "x", "category": "Audio", "price": 1.0, "rating": 5.1}, ErrInvalidRating, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t)
			ctx := context.Background()
			before, _ := repo.Count(ctx)

			product, err := svc.CreateProduct(ctx, tt.fields)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("CreateProduct() error = %v, wantErr %v", err, tt.wantErr)
				}
				if !IsValidationError(err) {
					t.Errorf("expected %v to be a validation error", err)
				}
				after, _ := repo.Count(ctx)
				if after != before {
					t.Errorf("store changed on failed create: %d -> %d", before, after)
				}
				return
			}

			if err != nil {
				t.Fatalf("CreateProduct() unexpected error = %v", err)
			}
			if product.ID == "" {
				t.Fatal("created product has empty id")
			}
			for _, existing := range []string{"1", "2", "3"} {
				if product.ID == existing {
					t.Errorf("created product reused id %s", existing)
				}
			}
			after, _ := repo.Count(ctx)
			if after != before+1 {
				t.Errorf("count = %d, want %d", after, before+1)
			}
			if tt.check != nil {
				tt.check(t, product)
			}
		})
	}
}

func TestProductService_CreateProduct_CustomPlaceholder(t *testing.T) {
	repo := repository.NewInMemoryProductRepository()
	svc := NewProductService(repo, WithPlaceholderImage("https://cdn.example.com/none.png"))

	p, err := svc.CreateProduct(context.Background(), models.ProductFields{"name": "x", "category": "y", "price": 1.0})
	if err != nil {
		t.Fatalf("CreateProduct() unexpected error = %v", err)
	}
	if p.Image != "https://cdn.example.com/none.png" {
		t.Errorf("image = %s", p.Image)
	}
}

func TestProductService_UpdateProduct(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		fields  models.ProductFields
		wantErr error
		check   func(*testing.T, *models.Product)
	}{
		{
			name:   "partial update keeps other fields",
			id:     "1",
			fields: models.ProductFields{"price": "19990", "name": " Bose QC Ultra "},
			check: func(t *testing.T, p *models.Product) {
				if p.Price != 19990 || p.Name != "Bose QC Ultra" {
					t.Errorf("unexpected update: %+v", p)
				}
				if p.Category != "Audio" || p.Stock != 5 || p.Image != "/img/bose.jpg" {
					t.Errorf("untouched fields changed: %+v", p)
				}
			},
		},
		{
			name:   "clearing image restores placeholder",
			id:     "1",
			fields: models.ProductFields{"image": ""},
			check: func(t *testing.T, p *models.Product) {
				if p.Image != models.DefaultImage {
					t.Errorf("image = %s", p.Image)
				}
			},
		},
		{
			name:   "unknown keys count as a non-empty body",
			id:     "2",
			fields: models.ProductFields{"color": "black"},
			check: func(t *testing.T, p *models.Product) {
				if p.Name != "Galaxy S24" {
					t.Errorf("unexpected change: %+v", p)
				}
			},
		},
		{"empty body on existing id", "1", models.ProductFields{}, ErrEmptyUpdate, nil},
		{"empty body on unknown id", "999", nil, ErrEmptyUpdate, nil},
		{"unknown id", "999", models.ProductFields{"name": "x"}, repository.ErrProductNotFound, nil},
		{"blank category", "1", models.ProductFields{"category": " "}, ErrCategoryRequired, nil},
		{"invalid price", "1", models.ProductFields{"price": 0.0}, ErrInvalidPrice, nil},
		{"invalid rating", "1", models.ProductFields{"name": "ok", "rating": -1.0}, ErrInvalidRating, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t)
			ctx := context.Background()
			before, _ := repo.List(ctx, models.ProductFilter{})

			product, err := svc.UpdateProduct(ctx, tt.id, tt.fields)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("UpdateProduct() error = %v, wantErr %v", err, tt.wantErr)
				}
				after, _ := repo.List(ctx, models.ProductFilter{})
				for i := range before {
					if before[i] != after[i] {
						t.Errorf("store changed on failed update: %+v -> %+v", before[i], after[i])
					}
				}
				return
			}

			if err != nil {
				t.Fatalf("UpdateProduct() unexpected error = %v", err)
			}
			if product.ID != tt.id {
				t.Errorf("id = %s, want %s", product.ID, tt.id)
			}
			stored, _ := repo.GetByID(ctx, tt.id)
			if *stored != *product {
				t.Errorf("stored %+v differs from returned %+v", stored, product)
			}
			tt.check(t, product)
		})
	}
}

func TestProductService_DeleteThenGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.DeleteProduct(ctx, "2"); err != nil {
		t.Fatalf("DeleteProduct() unexpected error = %v", err)
	}
	if _, err := svc.GetProduct(ctx, "2"); err != repository.ErrProductNotFound {
		t.Errorf("GetProduct() error = %v, want %v", err, repository.ErrProductNotFound)
	}
	if err := svc.DeleteProduct(ctx, "2"); err != repository.ErrProductNotFound {
		t.Errorf("DeleteProduct() error = %v, want %v", err, repository.ErrProductNotFound)
	}
}

func TestProductService_ListCategories(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateProduct(ctx, models.ProductFields{"name": "Kindle", "category": "Readers", "price": 9990.0}); err != nil {
		t.Fatalf("CreateProduct() unexpected error = %v", err)
	}

	categories, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories() unexpected error = %v", err)
	}
	want := []string{"Audio", "Phones", "Readers"}
	if len(categories) != len(want) {
		t.Fatalf("categories = %v, want %v", categories, want)
	}
	for i := range want {
		if categories[i] != want[i] {
			t.Errorf("categories[%d] = %s, want %s", i, categories[i], want[i])
		}
	}
}

func TestIsValidationError(t *testing.T) {
	if IsValidationError(repository.ErrProductNotFound) {
		t.Error("not found must not be a validation error")
	}
	if !IsValidationError(ErrInvalidStock) {
		t.Error("ErrInvalidStock should be a validation error")
	}
}
