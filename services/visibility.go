package services

import "openinvite/models"

// VisibleCreators вычисляет множество пользователей, чьи события видны userID:
// сам пользователь плюс все подтвержденные друзья. Направление ребра не важно.
// Ребро с совпадающими концами не дает вклада.
func VisibleCreators(userID int64, friendships []models.Friendship) map[int64]struct{} {
	visible := map[int64]struct{}{userID: {}}
	for _, f := range friendships {
		if f.Status != models.FriendshipAccepted {
			continue
		}
		if f.UserID == f.FriendID {
			continue
		}
		if f.UserID != userID && f.FriendID != userID {
			// Ребро не касается userID
			continue
		}
		visible[f.Other(userID)] = struct{}{}
	}
	return visible
}

// VisibleCreatorIDs возвращает то же множество списком для SQL-запроса IN (...).
func VisibleCreatorIDs(userID int64, friendships []models.Friendship) []int64 {
	visible := VisibleCreators(userID, friendships)
	ids := make([]int64, 0, len(visible))
	for id := range visible {
		ids = append(ids, id)
	}
	return ids
}
