package notice

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/finboard/service-api-go/internal/notice/entity"
	noticerepo "github.com/finboard/service-api-go/internal/notice/repo"
	"github.com/finboard/service-api-go/pkg/utilities"
)

var (
	ErrNotFound        = errors.New("notice not found")
	ErrCommentNotFound = errors.New("notice comment not found")
)

// Service encapsulates bulletin board behavior on top of the repo.
type Service struct {
	repo *noticerepo.NoticeRepo
}

func NewService(db *sqlx.DB) *Service {
	return &Service{repo: noticerepo.NewNoticeRepo(db)}
}

func (s *Service) EnsureSchema(ctx context.Context) error {
	return s.repo.EnsureTables(ctx)
}

func (s *Service) List(ctx context.Context) ([]entity.Summary, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.Detail, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// Create inserts a post for the authenticated user and returns the detail
// projection.
func (s *Service) Create(ctx context.Context, userID int64, title, content string) (*entity.Detail, error) {
	n := &entity.Notice{ID: utilities.NewRowID(), Title: title, Content: content, UserID: userID}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return s.Get(ctx, n.ID)
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

func (s *Service) Comments(ctx context.Context, noticeID int64) ([]entity.Comment, error) {
	return s.repo.Comments(ctx, noticeID)
}

// GetComment is used by the ownership check on comment mutation.
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

// CreateComment adds a comment and returns the refreshed comment list, the
// shape the board UI consumes after every comment mutation.
func (s *Service) CreateComment(ctx context.Context, noticeID, userID int64, comment string) ([]entity.Comment, error) {
	if err := s.repo.CreateComment(ctx, utilities.NewRowID(), noticeID, userID, comment); err != nil {
		return nil, err
	}
	return s.repo.Comments(ctx, noticeID)
}

func (s *Service) UpdateComment(ctx context.Context, noticeID, commentID int64, comment string) ([]entity.Comment, error) {
	if err := s.repo.UpdateComment(ctx, commentID, comment); err != nil {
		return nil, err
	}
	return s.repo.Comments(ctx, noticeID)
}

func (s *Service) DeleteComment(ctx context.Context, noticeID, commentID int64) ([]entity.Comment, error) {
	if err := s.repo.SoftDeleteComment(ctx, commentID, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.repo.Comments(ctx, noticeID)
}

func (s *Service) Votes(ctx context.Context, noticeID int64) ([]entity.Vote, error) {
	return s.repo.Votes(ctx, noticeID)
}

// Vote records or updates the user's like/hate state and returns every vote
// for the post.
func (s *Service) Vote(ctx context.Context, noticeID, userID int64, like, hate bool) ([]entity.Vote, error) {
	if err := s.repo.UpsertVote(ctx, utilities.NewRowID(), noticeID, userID, like, hate); err != nil {
		return nil, err
	}
	return s.repo.Votes(ctx, noticeID)
}
