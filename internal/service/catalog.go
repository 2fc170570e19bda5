package service

import (
	"context"
	"errors"

	"github.com/iliyamo/booth-market/internal/model"
	"github.com/iliyamo/booth-market/internal/repository"
)

// DefaultPageSize is the page size used when none is requested.
const DefaultPageSize = 20

// CatalogService manages vendor products.
type CatalogService struct {
	products     ProductStore
	deletePolicy string
}

func NewCatalogService(products ProductStore, deletePolicy string) *CatalogService {
	return &CatalogService{products: products, deletePolicy: deletePolicy}
}

// ProductInput carries the writable product fields.  Absent fields default
// to '' and 0.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Count       int     `json:"count"`
	Price       float64 `json:"price"`
}

// ListForVendor returns the vendor's products.
func (s *CatalogService) ListForVendor(ctx context.Context, vendorID uint64) ([]model.Product, error) {
	list, err := s.products.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, storage("Error fetching products", err)
	}
	return list, nil
}

// Get returns the product with the given id as a zero-or-one slice.
func (s *CatalogService) Get(ctx context.Context, id uint64) ([]model.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return []model.Product{}, nil
	}
	if err != nil {
		return nil, storage("Error fetching product", err)
	}
	return []model.Product{*p}, nil
}

// Create adds a product for the vendor and returns the stored row.
func (s *CatalogService) Create(ctx context.Context, vendorID uint64, in ProductInput) (*model.Product, error) {
	if in.Name == "" {
		return nil, invalid("name is required")
	}
	p := &model.Product{Name: in.Name, Description: in.Description, Count: in.Count, Price: in.Price, VendorID: vendorID}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, storage("Error creating product", err)
	}
	return p, nil
}

// Update overwrites the product and returns the stored row.
func (s *CatalogService) Update(ctx context.Context, id uint64, in ProductInput) (*model.Product, error) {
	if in.Name == "" {
		return nil, invalid("name is required")
	}
	p := &model.Product{ID: id, Name: in.Name, Description: in.Description, Count: in.Count, Price: in.Price}
	if err := s.products.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Product not found")
		}
		return nil, storage("Error updating product", err)
	}
	return p, nil
}

// Delete removes a product.  Sale items referencing it follow the
// configured product delete policy.
func (s *CatalogService) Delete(ctx context.Context, id uint64) error {
	err := s.products.Delete(ctx, id, s.deletePolicy)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound("Product not found")
	case errors.Is(err, repository.ErrConflict), errors.Is(err, repository.ErrReferenced):
		return conflict("Product is referenced by sales", err)
	}
	return storage("Error deleting product", err)
}

// Paginate returns one page of products whose name contains search,
// ignoring case.  A zero limit (absent or unparseable) means
// DefaultPageSize; otherwise page and limit are clamped to at least 1.
func (s *CatalogService) Paginate(ctx context.Context, page, limit int, search string) (model.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	switch {
	case limit == 0:
		limit = DefaultPageSize
	case limit < 0:
		limit = 1
	}
	items, total, err := s.products.Search(ctx, search, page, limit)
	if err != nil {
		return model.ProductPage{}, storage("Error fetching products", err)
	}
	return model.ProductPage{Items: items, Total: total}, nil
}

// SaleItems returns the sale items that reference the product.
func (s *CatalogService) SaleItems(ctx context.Context, productID uint64) ([]model.SaleItem, error) {
	list, err := s.products.SaleItems(ctx, productID)
	if err != nil {
		return nil, storage("Error fetching sale items", err)
	}
	return list, nil
}
