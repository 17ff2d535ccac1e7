package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"
)

// UpsertUser inserts a user row keyed by Telegram id, or refreshes the
// denormalized display fields when the row already exists.
func (s *Store) UpsertUser(ctx context.Context, telegramID int64, username, firstName, lastName string) error {
	user := User{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "telegram_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "first_name", "last_name"}),
		}).
		Create(&user).Error
	if err != nil {
		return fmt.Errorf("upserting user: %w", err)
	}
	return nil
}

// LogEvent appends one interaction record for the given Telegram user.
func (s *Store) LogEvent(ctx context.Context, telegramID int64, kind, content string) error {
	event := Event{
		UserID:  telegramID,
		Type:    kind,
		Content: content,
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("logging event: %w", err)
	}
	return nil
}

// ListUsers returns a page of users ordered by first-seen descending,
// each with the count of events they have generated.
func (s *Store) ListUsers(ctx context.Context, offset, limit int) ([]UserWithActions, error) {
	var rows []UserWithActions
	err := s.db.WithContext(ctx).
		Model(&User{}).
		Select("users.*, (SELECT COUNT(*) FROM events e WHERE e.user_id = users.telegram_id) AS action_count").
		Order("users.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return rows, nil
}

// CountUsers returns how many distinct users have interacted with the bot.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

// ListUserEvents returns a page of one user's event log, newest first.
func (s *Store) ListUserEvents(ctx context.Context, telegramID int64, offset, limit int) ([]Event, error) {
	var events []Event
	err := s.db.WithContext(ctx).
		Where("user_id = ?", telegramID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("listing user events: %w", err)
	}
	return events, nil
}

// CountUserEvents returns the total number of events logged for one user.
func (s *Store) CountUserEvents(ctx context.Context, telegramID int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&Event{}).
		Where("user_id = ?", telegramID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting user events: %w", err)
	}
	return count, nil
}
