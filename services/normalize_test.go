package services

import (
	"testing"
	"time"

	"openinvite/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEvent(t *testing.T) {
	event := models.Event{
		ID:        7,
		CreatorID: 1,
		Title:     "Dinner at Mario's",
		Location:  "Mario's Trattoria",
		Time:      time.Date(2024, 3, 4, 19, 0, 0, 0, time.Local),
		Type:      models.TypeFood,
		Notes:     "Bring cash",
	}
	attendees := []models.Attendee{
		{EventID: 7, UserID: 2},
		{EventID: 7, UserID: 3},
	}

	view, err := NormalizeEvent(event, attendees)
	require.NoError(t, err)

	assert.Equal(t, int64(7), view.ID)
	assert.Equal(t, int64(1), view.CreatorID)
	assert.Equal(t, []int64{2, 3}, view.Attendees)
	assert.Equal(t, "Food & Drink", view.TypeLabel)
	assert.Equal(t, "orange", view.TypeColor)
	assert.Contains(t, view.MapURL, "google.com/maps/search")
	assert.Contains(t, view.MapURL, "Mario%27s+Trattoria")
}

func TestNormalizeEventDeduplicatesAttendees(t *testing.T) {
	event := models.Event{ID: 1, CreatorID: 1, Time: time.Now()}
	attendees := []models.Attendee{
		{EventID: 1, UserID: 2},
		{EventID: 1, UserID: 2},
		{EventID: 1, UserID: 3},
		{EventID: 1, UserID: 2},
	}

	view, err := NormalizeEvent(event, attendees)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, view.Attendees)
}

func TestNormalizeEventMissingCreator(t *testing.T) {
	event := models.Event{ID: 1, Time: time.Now()}
	_, err := NormalizeEvent(event, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creator")
}

func TestNormalizeEventMissingTime(t *testing.T) {
	event := models.Event{ID: 1, CreatorID: 1}
	_, err := NormalizeEvent(event, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time")
}

func TestNormalizeEventUnknownTypeFallsBack(t *testing.T) {
	event := models.Event{ID: 1, CreatorID: 1, Time: time.Now(), Type: "karaoke"}
	view, err := NormalizeEvent(event, nil)
	require.NoError(t, err)
	assert.Equal(t, models.TypeOther, view.Type)
	assert.Equal(t, "Other", view.TypeLabel)
	assert.Equal(t, "blue", view.TypeColor)
}

func TestAttendeePreview(t *testing.T) {
	shown, overflow := AttendeePreview([]int64{1, 2, 3, 4, 5}, AttendeePreviewSize)
	assert.Equal(t, []int64{1, 2, 3}, shown)
	assert.Equal(t, 2, overflow)

	shown, overflow = AttendeePreview([]int64{1, 2}, AttendeePreviewSize)
	assert.Equal(t, []int64{1, 2}, shown)
	assert.Equal(t, 0, overflow)
}
