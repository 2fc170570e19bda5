package service

import (
	"context"

	"github.com/iliyamo/booth-market/internal/model"
)

// Values reported for metrics the store does not track.
const (
	placeholderRating = 4.5
)

// DashboardService computes vendor analytics.
type DashboardService struct {
	store DashboardStore
}

func NewDashboardService(store DashboardStore) *DashboardService {
	return &DashboardService{store: store}
}

// Stats returns revenue, sale and product counts.  Rating, views and
// conversion are filled with fixed placeholder values.
func (s *DashboardService) Stats(ctx context.Context, vendorID uint64) (model.DashboardStats, error) {
	st, err := s.store.Stats(ctx, vendorID)
	if err != nil {
		return model.DashboardStats{}, storage("Error fetching stats", err)
	}
	st.AverageRating = placeholderRating
	st.ViewsThisMonth = 0
	st.ConversionRate = 0
	return st, nil
}

func (s *DashboardService) RecentSales(ctx context.Context, vendorID uint64) ([]model.RecentSale, error) {
	list, err := s.store.RecentSales(ctx, vendorID)
	if err != nil {
		return nil, storage("Error fetching recent sales", err)
	}
	return list, nil
}

func (s *DashboardService) TopProducts(ctx context.Context, vendorID uint64) ([]model.TopProduct, error) {
	list, err := s.store.TopProducts(ctx, vendorID)
	if err != nil {
		return nil, storage("Error fetching top products", err)
	}
	return list, nil
}

func (s *DashboardService) MonthlySales(ctx context.Context, vendorID uint64) ([]model.MonthlySales, error) {
	list, err := s.store.MonthlySales(ctx, vendorID)
	if err != nil {
		return nil, storage("Error fetching monthly sales", err)
	}
	return list, nil
}
