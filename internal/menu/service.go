package menu

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/finboard/service-api-go/internal/menu/entity"
	menurepo "github.com/finboard/service-api-go/internal/menu/repo"
)

// Service assembles the two-level navigation tree.
type Service struct {
	repo *menurepo.MenuRepo
}

func NewService(db *sqlx.DB) *Service {
	return &Service{repo: menurepo.NewMenuRepo(db)}
}

func (s *Service) EnsureSchema(ctx context.Context) error {
	return s.repo.EnsureTables(ctx)
}

// Tree returns every menu with its sub-entries nested, both levels ordered
// by show_order.
func (s *Service) Tree(ctx context.Context) ([]entity.Tree, error) {
	menus, err := s.repo.Menus(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Tree, 0, len(menus))
	for _, m := range menus {
		sub, err := s.repo.SubMenus(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.Tree{
			Name:      m.Name,
			NameSub:   m.NameSub,
			Path:      m.Path,
			ShowOrder: m.ShowOrder,
			Sub:       sub,
		})
	}
	return out, nil
}
