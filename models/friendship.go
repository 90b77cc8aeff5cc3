package models

import "time"

const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
)

// Friendship - направленное ребро дружбы между пользователями.
// UserID - кто отправил заявку, FriendID - кому. После принятия заявки
// ребро считается симметричным: для видимости и списков направление не важно.
type Friendship struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"index" json:"user_id"`
	FriendID   int64     `gorm:"index" json:"friend_id"`
	Status     string    `gorm:"size:20" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	AcceptedAt time.Time `json:"accepted_at,omitempty"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// Other возвращает второго участника ребра относительно userID.
func (f *Friendship) Other(userID int64) int64 {
	if f.UserID == userID {
		return f.FriendID
	}
	return f.UserID
}
