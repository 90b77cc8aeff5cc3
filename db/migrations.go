package db

import (
	"fmt"

	"gorm.io/gorm"
)

// CreateEventTypeEnum создает тип ENUM event_type, если он не существует
func CreateEventTypeEnum(db *gorm.DB) error {
	createEnumSQL := `
	DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'event_type') THEN
			CREATE TYPE event_type AS ENUM ('food', 'culture', 'party', 'other');
		END IF;
	END
	$$;
	`
	if err := db.Exec(createEnumSQL).Error; err != nil {
		return fmt.Errorf("failed to create event_type enum: %w", err)
	}
	return nil
}

// CreateFriendshipPairIndex создает уникальный индекс по неупорядоченной паре
// (user_id, friend_id), чтобы БД отклоняла повторную заявку в любом направлении.
func CreateFriendshipPairIndex(db *gorm.DB) error {
	createIndexSQL := `
		CREATE UNIQUE INDEX IF NOT EXISTS friendships_pair_idx
		ON friendships (LEAST(user_id, friend_id), GREATEST(user_id, friend_id));
	`
	if err := db.Exec(createIndexSQL).Error; err != nil {
		return fmt.Errorf("failed to create friendships pair index: %w", err)
	}
	return nil
}

// CreateEventIndexes создает индексы для выборок ленты и календаря
func CreateEventIndexes(db *gorm.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_events_creator_time ON events (creator_id, time);`,
		`CREATE INDEX IF NOT EXISTS idx_attendees_user_id ON attendees (user_id);`,
	}
	for _, createIndexSQL := range indexes {
		if err := db.Exec(createIndexSQL).Error; err != nil {
			return fmt.Errorf("failed to create event index: %w", err)
		}
	}
	return nil
}
