package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/salon-pos-api/internal/domain"
	"github.com/jhoicas/salon-pos-api/internal/domain/repository"
)

// DashboardUseCase consultas agregadas para el tablero administrativo.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// Revenue totaliza la facturación en el rango [from, to].
func (uc *DashboardUseCase) Revenue(ctx context.Context, from, to time.Time) (*repository.RevenueSummary, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	return uc.analyticsRepo.Revenue(ctx, from, to)
}

// TopProducts productos más vendidos por cantidad en el rango.
func (uc *DashboardUseCase) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProductRow, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return uc.analyticsRepo.TopProducts(ctx, from, to, limit)
}
