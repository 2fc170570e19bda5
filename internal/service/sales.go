package service

import (
	"context"

	"github.com/iliyamo/booth-market/internal/model"
)

// SalesService exposes read-only sale queries.
type SalesService struct {
	sales SaleStore
}

func NewSalesService(sales SaleStore) *SalesService { return &SalesService{sales: sales} }

func (s *SalesService) ListForVendor(ctx context.Context, vendorID uint64) ([]model.Sale, error) {
	list, err := s.sales.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, storage("Error fetching sales", err)
	}
	return list, nil
}

func (s *SalesService) Get(ctx context.Context, id uint64) ([]model.Sale, error) {
	list, err := s.sales.GetByID(ctx, id)
	if err != nil {
		return nil, storage("Error fetching sale", err)
	}
	return list, nil
}

func (s *SalesService) Items(ctx context.Context, id uint64) ([]model.SaleItem, error) {
	list, err := s.sales.Items(ctx, id)
	if err != nil {
		return nil, storage("Error fetching sale items", err)
	}
	return list, nil
}

func (s *SalesService) Products(ctx context.Context, id uint64) ([]model.SaleProduct, error) {
	list, err := s.sales.Products(ctx, id)
	if err != nil {
		return nil, storage("Error fetching sale products", err)
	}
	return list, nil
}

func (s *SalesService) Vendors(ctx context.Context, id uint64) ([]model.Vendor, error) {
	list, err := s.sales.Vendors(ctx, id)
	if err != nil {
		return nil, storage("Error fetching sale vendors", err)
	}
	return list, nil
}
