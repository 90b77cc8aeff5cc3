package models

// Типы событий. Неизвестные значения при отображении сводятся к TypeOther.
const (
	TypeFood    = "food"
	TypeCulture = "culture"
	TypeParty   = "party"
	TypeOther   = "other"
)

var eventTypeLabels = map[string]string{
	TypeFood:    "Food & Drink",
	TypeCulture: "Culture",
	TypeParty:   "Party",
	TypeOther:   "Other",
}

var eventTypeColors = map[string]string{
	TypeFood:    "orange",
	TypeCulture: "purple",
	TypeParty:   "pink",
	TypeOther:   "blue",
}

// KnownEventType проверяет, что тип входит в список поддерживаемых.
func KnownEventType(t string) bool {
	_, ok := eventTypeLabels[t]
	return ok
}

// EventTypeLabel возвращает отображаемое название типа события.
func EventTypeLabel(t string) string {
	if label, ok := eventTypeLabels[t]; ok {
		return label
	}
	return eventTypeLabels[TypeOther]
}

// EventTypeColor возвращает цветовой токен типа события.
func EventTypeColor(t string) string {
	if color, ok := eventTypeColors[t]; ok {
		return color
	}
	return eventTypeColors[TypeOther]
}
