package finance

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/finboard/service-api-go/internal/finance/entity"
	financerepo "github.com/finboard/service-api-go/internal/finance/repo"
)

// Service exposes the exchange rate snapshot used by the main dashboard.
type Service struct {
	repo *financerepo.FinanceRepo
}

func NewService(db *sqlx.DB) *Service {
	return &Service{repo: financerepo.NewFinanceRepo(db)}
}

func (s *Service) EnsureSchema(ctx context.Context) error {
	return s.repo.EnsureTables(ctx)
}

func (s *Service) Latest(ctx context.Context) ([]entity.ExchangeRate, error) {
	return s.repo.Latest(ctx)
}
