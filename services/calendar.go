package services

import (
	"sort"
	"time"

	"openinvite/models"
)

// StartOfWeek возвращает понедельник 00:00 локальной недели, в которую попадает t.
// Воскресенье относится к неделе, начавшейся шестью днями раньше.
// Момент времени сначала приводится к локальной зоне: БД может вернуть
// timestamptz в UTC, а границы недели считаются по локальному календарю.
func StartOfWeek(t time.Time) time.Time {
	t = t.In(time.Local)
	offset := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -offset)
}

// WeekLabel - человекочитаемая подпись недельной группы, например "Week of Mar 4".
func WeekLabel(weekStart time.Time) string {
	return "Week of " + weekStart.Format("Jan 2")
}

// GroupByWeek сортирует события по времени (стабильно) и разбивает их на
// недельные группы. Порядок групп - порядок первого появления при одном
// восходящем проходе, то есть хронологический.
func GroupByWeek(events []models.EventView) []models.WeekBucket {
	sorted := make([]models.EventView, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	buckets := make([]models.WeekBucket, 0)
	index := make(map[string]int)
	for _, event := range sorted {
		start := StartOfWeek(event.Time)
		label := WeekLabel(start)
		i, ok := index[label]
		if !ok {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, models.WeekBucket{Label: label, Start: start})
		}
		buckets[i].Events = append(buckets[i].Events, event)
	}
	return buckets
}

// SameDay сравнивает локальные календарные даты, игнорируя время суток.
// Оба момента приводятся к локальной зоне перед сравнением компонентов.
func SameDay(a, b time.Time) bool {
	a = a.In(time.Local)
	b = b.In(time.Local)
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// EventsOnDay возвращает события, попадающие на указанную локальную дату.
func EventsOnDay(events []models.EventView, day time.Time) []models.EventView {
	matched := make([]models.EventView, 0)
	for _, event := range events {
		if SameDay(event.Time, day) {
			matched = append(matched, event)
		}
	}
	return matched
}

// MonthGridFor считает параметры месячной сетки: количество дней в месяце и
// день недели первого числа (0 = воскресенье). Чистая календарная арифметика,
// данные событий не участвуют.
func MonthGridFor(year int, month time.Month) models.MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	// День 0 следующего месяца нормализуется в последний день текущего
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local)
	return models.MonthGrid{
		Year:         year,
		Month:        int(month),
		Days:         last.Day(),
		FirstWeekday: int(first.Weekday()),
	}
}
