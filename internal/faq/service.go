package faq

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/finboard/service-api-go/internal/faq/entity"
	faqrepo "github.com/finboard/service-api-go/internal/faq/repo"
	"github.com/finboard/service-api-go/pkg/utilities"
)

var ErrNotFound = errors.New("faq not found")

// Service encapsulates faq behavior on top of the repo.
type Service struct {
	repo *faqrepo.FaqRepo
}

func NewService(db *sqlx.DB) *Service {
	return &Service{repo: faqrepo.NewFaqRepo(db)}
}

func (s *Service) EnsureSchema(ctx context.Context) error {
	return s.repo.EnsureTable(ctx)
}

func (s *Service) List(ctx context.Context) ([]entity.Faq, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.Faq, error) {
	f, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// Create inserts an entry and returns the refreshed list, the shape the admin
// UI consumes after a write.
func (s *Service) Create(ctx context.Context, title, content string, flg bool) ([]entity.Faq, error) {
	f := &entity.Faq{ID: utilities.NewRowID(), Title: title, Content: content, Flg: flg}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// Update replaces an entry and returns the refreshed single row.
func (s *Service) Update(ctx context.Context, id int64, title, content string, flg bool) (*entity.Faq, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, title, content, flg); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete soft-deletes an entry and returns the refreshed list.
func (s *Service) Delete(ctx context.Context, id int64) ([]entity.Faq, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}
