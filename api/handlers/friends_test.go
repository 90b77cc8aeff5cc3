package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"openinvite/db"
	"openinvite/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFriend(t *testing.T) {
	r := setupRouter(t)
	alice := createTestUser(t)
	bob := createTestUser(t)

	w := doJSON(r, "POST", "/api/v1/friends/add", alice, map[string]int64{"friend_id": bob})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAddFriendSelf(t *testing.T) {
	r := setupRouter(t)
	alice := createTestUser(t)

	w := doJSON(r, "POST", "/api/v1/friends/add", alice, map[string]int64{"friend_id": alice})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddFriendUnknownUser(t *testing.T) {
	r := setupRouter(t)
	alice := createTestUser(t)

	w := doJSON(r, "POST", "/api/v1/friends/add", alice, map[string]int64{"friend_id": 9999})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddFriendDuplicateIsDistinguishable(t *testing.T) {
	r := setupRouter(t)
	alice := createTestUser(t)
	bob := createTestUser(t)

	w1 := doJSON(r, "POST", "/api/v1/friends/add", alice, map[string]int64{"friend_id": bob})
	require.Equal(t, http.StatusOK, w1.Code)

	// Повторная заявка - не общая ошибка, а отличимый исход "already requested"
	w2 := doJSON(r, "POST", "/api/v1/friends/add", alice, map[string]int64{"friend_id": bob})
	assert.Equal(t, http.StatusConflict, w2.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &resp))
	assert.Equal(t, "already requested", resp["error"])

	// То же при заявке в обратном направлении
	w3 := doJSON(r, "POST", "/api/v1/friends/add", bob, map[string]int64{"friend_id": alice})
	assert.Equal(t, http.StatusConflict, w3.Code)
}

func TestAcceptFriend(t *testing.T) {
	r := setupRouter(t)
	alice := createTestUser(t)
	bob := createTestUser(t)

	w := doJSON(r, "POST", "/api/v1/friends/add", alice, map[string]int64{"friend_id": bob})
	require.Equal(t, http.StatusOK, w.Code)

	// Принимает получатель заявки
	w = doJSON(r, "POST", "/api/v1/friends/accept", bob, map[string]int64{"friend_id": alice})
	assert.Equal(t, http.StatusOK, w.Code)

	// Оба видят друг друга в списке друзей
	w = doJSON(r, "GET", "/api/v1/friends/list", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Friends []struct {
			ID int64 `json:"id"`
		} `json:"friends"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Friends, 1)
	assert.Equal(t, bob, resp.Friends[0].ID)
}

func TestAcceptFriendOnlyRecipient(t *testing.T) {
	r := setupRouter(t)
	alice := createTestUser(t)
	bob := createTestUser(t)

	w := doJSON(r, "POST", "/api/v1/friends/add", alice, map[string]int64{"friend_id": bob})
	require.Equal(t, http.StatusOK, w.Code)

	// Отправитель заявки не может подтвердить ее сам
	w = doJSON(r, "POST", "/api/v1/friends/accept", alice, map[string]int64{"friend_id": bob})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPendingRequests(t *testing.T) {
	r := setupRouter(t)
	alice := createTestUser(t)
	bob := createTestUser(t)

	w := doJSON(r, "POST", "/api/v1/friends/add", alice, map[string]int64{"friend_id": bob})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "GET", "/api/v1/friends/requests", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Requests []struct {
			ID int64 `json:"id"`
		} `json:"requests"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Requests, 1)
	assert.Equal(t, alice, resp.Requests[0].ID)

	// У отправителя входящих заявок нет
	w = doJSON(r, "GET", "/api/v1/friends/requests", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Requests)
}

func TestDeleteFriend(t *testing.T) {
	r := setupRouter(t)
	alice := createTestUser(t)
	bob := createTestUser(t)
	befriend(t, alice, bob)

	w := doJSON(r, "POST", "/api/v1/friends/delete", alice, map[string]int64{"friend_id": bob})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "GET", "/api/v1/friends/list", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Friends []struct {
			ID int64 `json:"id"`
		} `json:"friends"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Friends)
}

func TestAddFriendCheckFailureIsNotSwallowed(t *testing.T) {
	r := setupRouter(t)
	alice := createTestUser(t)
	bob := createTestUser(t)

	// Ошибка проверки существующего ребра - это ошибка, а не "ребра нет":
	// до создания заявки дело дойти не должно
	require.NoError(t, db.ORM.Migrator().DropTable(&models.Friendship{}))

	w := doJSON(r, "POST", "/api/v1/friends/add", alice, map[string]int64{"friend_id": bob})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "failed to check friendship")
}

func TestAddFriendInvalidRequest(t *testing.T) {
	r := setupRouter(t)
	alice := createTestUser(t)

	w := doJSON(r, "POST", "/api/v1/friends/add", alice, map[string]string{"friend_id": "bad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
