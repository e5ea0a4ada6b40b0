package stock

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/finboard/service-api-go/internal/stock/entity"
	stockrepo "github.com/finboard/service-api-go/internal/stock/repo"
	"github.com/finboard/service-api-go/pkg/utilities"
)

var (
	ErrCategoryNotFound = errors.New("stock not found")
	ErrPostNotFound     = errors.New("stock post not found")
	ErrCommentNotFound  = errors.New("stock comment not found")
)

// Service encapsulates the category-scoped discussion board behavior.
type Service struct {
	repo *stockrepo.StockRepo
}

func NewService(db *sqlx.DB) *Service {
	return &Service{repo: stockrepo.NewStockRepo(db)}
}

func (s *Service) EnsureSchema(ctx context.Context) error {
	return s.repo.EnsureTables(ctx)
}

func (s *Service) Categories(ctx context.Context) ([]entity.Category, error) {
	return s.repo.Categories(ctx)
}

// Category resolves a category from its URL name; every post route is scoped
// by one.
func (s *Service) Category(ctx context.Context, name string) (*entity.Category, error) {
	c, err := s.repo.CategoryByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, categoryID int64) ([]entity.Summary, error) {
	return s.repo.List(ctx, categoryID)
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.Detail, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, categoryID, userID int64, title, content string) (*entity.Detail, error) {
	p := &entity.Post{
		ID:         utilities.NewRowID(),
		Title:      title,
		Content:    content,
		UserID:     userID,
		CategoryID: categoryID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.Get(ctx, p.ID)
}

func (s *Service) Update(ctx context.Context, id int64, title, content string) (*entity.Detail, error) {
	if err := s.repo.Update(ctx, id, title, content); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id, time.Now().UTC())
}

func (s *Service) IncrementViews(ctx context.Context, id int64) (*entity.Detail, error) {
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Comments(ctx context.Context, stockID int64) ([]entity.Comment, error) {
	return s.repo.Comments(ctx, stockID)
}

func (s *Service) GetComment(ctx context.Context, commentID int64) (*entity.CommentRow, error) {
	c, err := s.repo.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) CreateComment(ctx context.Context, stockID, userID int64, comment string) ([]entity.Comment, error) {
	if err := s.repo.CreateComment(ctx, utilities.NewRowID(), stockID, userID, comment); err != nil {
		return nil, err
	}
	return s.repo.Comments(ctx, stockID)
}

func (s *Service) UpdateComment(ctx context.Context, stockID, commentID int64, comment string) ([]entity.Comment, error) {
	if err := s.repo.UpdateComment(ctx, commentID, comment); err != nil {
		return nil, err
	}
	return s.repo.Comments(ctx, stockID)
}

func (s *Service) DeleteComment(ctx context.Context, stockID, commentID int64) ([]entity.Comment, error) {
	if err := s.repo.SoftDeleteComment(ctx, commentID, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.repo.Comments(ctx, stockID)
}

func (s *Service) Votes(ctx context.Context, stockID int64) ([]entity.Vote, error) {
	return s.repo.Votes(ctx, stockID)
}

func (s *Service) Vote(ctx context.Context, stockID, userID int64, like, hate bool) ([]entity.Vote, error) {
	if err := s.repo.UpsertVote(ctx, utilities.NewRowID(), stockID, userID, like, hate); err != nil {
		return nil, err
	}
	return s.repo.Votes(ctx, stockID)
}
