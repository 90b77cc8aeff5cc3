package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"openinvite/db"
	"openinvite/models"

	"gorm.io/gorm"
)

// Ошибки, которые обработчики должны отличать друг от друга
var (
	ErrSelfFriend       = errors.New("cannot add yourself as friend")
	ErrUserNotFound     = errors.New("one or both users do not exist")
	ErrAlreadyFriends   = errors.New("friendship already exists")
	ErrAlreadyRequested = errors.New("friend request already pending")
	ErrRequestNotFound  = errors.New("friend request not found")
)

type FriendService struct{}

func NewFriendService() *FriendService {
	return &FriendService{}
}

// AddFriend создает заявку на дружбу от userID к friendID
func (fs *FriendService) AddFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return ErrSelfFriend
	}

	// Проверяем, что оба пользователя существуют
	var userCount int64
	err := db.GetReadOnlyDB(ctx).Model(&models.User{}).
		Where("id IN (?)", []int64{userID, friendID}).Count(&userCount).Error
	if err != nil {
		return fmt.Errorf("error checking users: %w", err)
	}
	if userCount != 2 {
		return ErrUserNotFound
	}

	// Проверяем, что ребро не существует ни в одном направлении
	var existing models.Friendship
	err = db.GetReadOnlyDB(ctx).Where(
		"((user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?))",
		userID, friendID, friendID, userID,
	).First(&existing).Error

	if err == nil {
		if existing.Status == models.FriendshipAccepted {
			return ErrAlreadyFriends
		}
		return ErrAlreadyRequested
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check friendship: %w", err)
	}

	friendship := &models.Friendship{
		UserID:    userID,
		FriendID:  friendID,
		Status:    models.FriendshipPending,
		CreatedAt: time.Now(),
	}

	err = db.GetWriteDB(ctx).Create(friendship).Error
	if err != nil {
		return fmt.Errorf("failed to create friend request: %w", err)
	}

	notifyTableChanged(ctx, "friendships", "insert", []int64{userID, friendID})
	return nil
}

// AcceptFriend подтверждает заявку. Принять может только получатель (friend_id).
func (fs *FriendService) AcceptFriend(ctx context.Context, userID, requesterID int64) error {
	var friendship models.Friendship
	err := db.GetWriteDB(ctx).Where(
		"user_id = ? AND friend_id = ? AND status = ?",
		requesterID, userID, models.FriendshipPending,
	).First(&friendship).Error

	if err != nil {
		return ErrRequestNotFound
	}

	friendship.Status = models.FriendshipAccepted
	friendship.AcceptedAt = time.Now()

	err = db.GetWriteDB(ctx).Save(&friendship).Error
	if err != nil {
		return fmt.Errorf("failed to accept friendship: %w", err)
	}

	notifyTableChanged(ctx, "friendships", "update", []int64{userID, requesterID})
	return nil
}

// DeleteFriend удаляет дружбу или заявку в любом направлении
func (fs *FriendService) DeleteFriend(ctx context.Context, userID, friendID int64) error {
	err := db.GetWriteDB(ctx).Where(
		"((user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?))",
		userID, friendID, friendID, userID,
	).Delete(&models.Friendship{}).Error

	if err != nil {
		return fmt.Errorf("failed to delete friendship: %w", err)
	}

	notifyTableChanged(ctx, "friendships", "delete", []int64{userID, friendID})
	return nil
}

// GetFriendships возвращает все ребра дружбы, касающиеся пользователя
func (fs *FriendService) GetFriendships(ctx context.Context, userID int64) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := db.GetReadOnlyDB(ctx).
		Where("user_id = ? OR friend_id = ?", userID, userID).
		Find(&friendships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get friendships: %w", err)
	}
	return friendships, nil
}

// GetFriends возвращает подтвержденных друзей пользователя
func (fs *FriendService) GetFriends(ctx context.Context, userID int64) ([]models.User, error) {
	var friends []models.User

	err := db.GetReadOnlyDB(ctx).
		Table("users u").
		Joins("JOIN friendships f ON (f.user_id = u.id AND f.friend_id = ?) OR (f.friend_id = u.id AND f.user_id = ?)", userID, userID).
		Where("f.status = ? AND u.id != ?", models.FriendshipAccepted, userID).
		Select("u.id, u.username, u.full_name, u.avatar_url, u.created_at").
		Find(&friends).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get friends: %w", err)
	}

	return friends, nil
}

// GetPendingRequests возвращает входящие заявки в друзья
func (fs *FriendService) GetPendingRequests(ctx context.Context, userID int64) ([]models.User, error) {
	var requesters []models.User

	err := db.GetReadOnlyDB(ctx).
		Table("users u").
		Joins("JOIN friendships f ON f.user_id = u.id").
		Where("f.friend_id = ? AND f.status = ?", userID, models.FriendshipPending).
		Select("u.id, u.username, u.full_name, u.avatar_url, u.created_at").
		Find(&requesters).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get pending requests: %w", err)
	}

	return requesters, nil
}
