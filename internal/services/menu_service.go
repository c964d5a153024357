package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kiasiliventures/thesmokehouse/internal/model"
)

type MenuService struct {
	Menu   MenuReader
	Logger *slog.Logger
}

func NewMenuService(menu MenuReader, logger *slog.Logger) *MenuService {
	return &MenuService{Menu: menu, Logger: logger}
}

// GetMenu returns orderable items sorted by category then name. An empty
// menu is not an error; the page just renders nothing.
func (s *MenuService) GetMenu(ctx context.Context) ([]model.MenuItem, error) {
	items, err := s.Menu.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch menu: %w", err)
	}
	if items == nil {
		items = []model.MenuItem{}
	}
	return items, nil
}
