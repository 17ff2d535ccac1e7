package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// AddGame inserts a new catalog entry and returns its id. URL may be empty.
func (s *Store) AddGame(ctx context.Context, title, url string) (int64, error) {
	game := Game{
		Title: strings.TrimSpace(title),
		URL:   strings.TrimSpace(url),
	}
	if err := s.db.WithContext(ctx).Create(&game).Error; err != nil {
		return 0, fmt.Errorf("inserting game: %w", err)
	}
	return game.ID, nil
}

// UpdateGameURL sets the link for an existing game. Updating an id that
// does not exist is a no-op; callers that care should GetGame first.
func (s *Store) UpdateGameURL(ctx context.Context, id int64, url string) error {
	err := s.db.WithContext(ctx).
		Model(&Game{}).
		Where("id = ?", id).
		Update("url", strings.TrimSpace(url)).Error
	if err != nil {
		return fmt.Errorf("updating game url: %w", err)
	}
	return nil
}

// GetGame fetches one game by id, returning (nil, nil) when it is missing.
func (s *Store) GetGame(ctx context.Context, id int64) (*Game, error) {
	var game Game
	err := s.db.WithContext(ctx).First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching game: %w", err)
	}
	return &game, nil
}

// ListGames returns a stable page of the catalog ordered by id ascending.
func (s *Store) ListGames(ctx context.Context, offset, limit int) ([]Game, error) {
	var games []Game
	err := s.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	return games, nil
}

// CountGames returns the catalog size.
func (s *Store) CountGames(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Game{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting games: %w", err)
	}
	return count, nil
}
