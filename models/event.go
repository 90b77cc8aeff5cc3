package models

import (
	"net/url"
	"time"
)

// Event - модель события ("плана") пользователя
type Event struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatorID int64     `gorm:"column:creator_id;index" json:"creator_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Location  string    `gorm:"size:255" json:"location"`
	Time      time.Time `gorm:"index" json:"time"`
	Type      string    `gorm:"size:20" json:"type"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// Attendee - связь "пользователь идет на событие".
// Пара (event_id, user_id) уникальна, создатель не добавляется автоматически.
type Attendee struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID int64 `gorm:"index:attendee_pair_idx,unique" json:"event_id"`
	UserID  int64 `gorm:"index:attendee_pair_idx,unique" json:"user_id"`
}

func (Attendee) TableName() string {
	return "attendees"
}

// EventView - нормализованное событие для выдачи в ленту и календарь
type EventView struct {
	ID           int64     `json:"id"`
	CreatorID    int64     `json:"creator_id"`
	CreatorName  string    `json:"creator_name"`
	CreatorPhoto string    `json:"creator_avatar,omitempty"`
	Title        string    `json:"title"`
	Location     string    `json:"location"`
	MapURL       string    `json:"map_url"`
	Time         time.Time `json:"time"`
	Type         string    `json:"type"`
	TypeLabel    string    `json:"type_label"`
	TypeColor    string    `json:"type_color"`
	Notes        string    `json:"notes,omitempty"`
	Attendees    []int64   `json:"attendees"`
}

// MapSearchURL строит deep link на поиск локации в Google Maps.
func MapSearchURL(location string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(location)
}

// WeekBucket - группа событий одной календарной недели (неделя начинается с понедельника)
type WeekBucket struct {
	Label  string      `json:"label"`
	Start  time.Time   `json:"start"`
	Events []EventView `json:"events"`
}

// FeedResponse - ответ API для ленты
type FeedResponse struct {
	Weeks []WeekBucket `json:"weeks"`
	Total int          `json:"total"`
}

// MonthGrid - арифметика месячной сетки календаря: количество дней
// и индекс дня недели первого числа (0 = воскресенье).
type MonthGrid struct {
	Year         int `json:"year"`
	Month        int `json:"month"`
	Days         int `json:"days"`
	FirstWeekday int `json:"first_weekday"`
}
