package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventTypeLabels(t *testing.T) {
	assert.Equal(t, "Food & Drink", EventTypeLabel(TypeFood))
	assert.Equal(t, "Culture", EventTypeLabel(TypeCulture))
	assert.Equal(t, "Party", EventTypeLabel(TypeParty))
	assert.Equal(t, "Other", EventTypeLabel(TypeOther))
}

func TestEventTypeFallback(t *testing.T) {
	// Неизвестный тип сводится к other
	assert.Equal(t, "Other", EventTypeLabel("bowling"))
	assert.Equal(t, "blue", EventTypeColor("bowling"))
	assert.False(t, KnownEventType("bowling"))
	assert.True(t, KnownEventType(TypeParty))
}

func TestAvatarFallback(t *testing.T) {
	u := User{FullName: "Jane Doe"}
	assert.Equal(t, "https://ui-avatars.com/api/?name=Jane+Doe", u.Avatar())

	u.AvatarURL = "https://cdn.example.com/a.png"
	assert.Equal(t, "https://cdn.example.com/a.png", u.Avatar())
}

func TestFriendshipOther(t *testing.T) {
	f := Friendship{UserID: 1, FriendID: 2}
	assert.Equal(t, int64(2), f.Other(1))
	assert.Equal(t, int64(1), f.Other(2))
}
