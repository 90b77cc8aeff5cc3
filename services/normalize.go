package services

import (
	"fmt"

	"openinvite/models"
)

// AttendeePreviewSize - сколько аватаров участников показываем до счетчика "+N"
const AttendeePreviewSize = 3

// NormalizeEvent собирает каноническое представление события из строки events
// и join-строк attendees. Некорректная запись (нулевое время, отсутствующий
// создатель) - это ошибка нормализации, а не молчаливый пропуск события.
func NormalizeEvent(event models.Event, attendees []models.Attendee) (models.EventView, error) {
	if event.CreatorID == 0 {
		return models.EventView{}, fmt.Errorf("event %d: creator is missing", event.ID)
	}
	if event.Time.IsZero() {
		return models.EventView{}, fmt.Errorf("event %d: time is missing or unparseable", event.ID)
	}

	eventType := event.Type
	if !models.KnownEventType(eventType) {
		eventType = models.TypeOther
	}

	// Дедупликация участников с сохранением порядка join-строк
	seen := make(map[int64]struct{}, len(attendees))
	attendeeIDs := make([]int64, 0, len(attendees))
	for _, a := range attendees {
		if _, ok := seen[a.UserID]; ok {
			continue
		}
		seen[a.UserID] = struct{}{}
		attendeeIDs = append(attendeeIDs, a.UserID)
	}

	return models.EventView{
		ID:        event.ID,
		CreatorID: event.CreatorID,
		Title:     event.Title,
		Location:  event.Location,
		MapURL:    models.MapSearchURL(event.Location),
		Time:      event.Time,
		Type:      eventType,
		TypeLabel: models.EventTypeLabel(eventType),
		TypeColor: models.EventTypeColor(eventType),
		Notes:     event.Notes,
		Attendees: attendeeIDs,
	}, nil
}

// AttendeePreview возвращает первые limit участников и количество не
// поместившихся в превью ("+N").
func AttendeePreview(attendees []int64, limit int) (shown []int64, overflow int) {
	if limit <= 0 || len(attendees) <= limit {
		return attendees, 0
	}
	return attendees[:limit], len(attendees) - limit
}
