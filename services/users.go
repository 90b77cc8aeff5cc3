package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"openinvite/db"
	"openinvite/models"

	"golang.org/x/crypto/argon2"
	"gorm.io/gorm"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrProfileNotFound    = errors.New("profile not found")
)

type UserService struct{}

func NewUserService() *UserService {
	return &UserService{}
}

// RegisterInput - данные формы регистрации
type RegisterInput struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *RegisterInput) Validate() error {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return errors.New("username, email and password are required")
	}
	if in.FullName == "" {
		return errors.New("full name is required")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

func verifyPassword(stored, password string) error {
	parts := strings.Split(stored, "$")
	if len(parts) != 2 {
		return errors.New("invalid password format")
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return err
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	if hex.EncodeToString(hash) != parts[1] {
		return ErrInvalidCredentials
	}
	return nil
}

// Register создает нового пользователя
func (us *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var alreadyExists int64
	err := db.GetReadOnlyDB(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", input.Username, input.Email).
		Count(&alreadyExists).Error
	if err != nil {
		return nil, fmt.Errorf("error checking user: %w", err)
	}
	if alreadyExists > 0 {
		return nil, ErrUserExists
	}

	passwordHash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  input.Username,
		FullName:  input.FullName,
		Email:     input.Email,
		Password:  passwordHash,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.GetWriteDB(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login проверяет пароль и выдает новый токен сессии
func (us *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var user models.User
	err := db.GetReadOnlyDB(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := verifyPassword(user.Password, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, "", err
	}
	token := hex.EncodeToString(tokenBytes)

	err = db.GetWriteDB(ctx).Create(&models.UserTokens{
		UserID: user.ID,
		Token:  token,
	}).Error
	if err != nil {
		return nil, "", fmt.Errorf("failed to store token: %w", err)
	}
	return &user, token, nil
}

// Logout удаляет токен сессии
func (us *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrTokenInvalid
	}
	return db.GetWriteDB(ctx).
		Where("token = ?", token).
		Delete(&models.UserTokens{}).Error
}

// UserByToken возвращает пользователя по токену сессии
func (us *UserService) UserByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrTokenInvalid
	}
	var userToken models.UserTokens
	err := db.GetReadOnlyDB(ctx).Where("token = ?", token).First(&userToken).Error
	if err != nil {
		return nil, ErrTokenInvalid
	}
	var user models.User
	if err := db.GetReadOnlyDB(ctx).First(&user, userToken.UserID).Error; err != nil {
		return nil, ErrTokenInvalid
	}
	return &user, nil
}

// GetProfile возвращает профиль по id
func (us *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	err := db.GetReadOnlyDB(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate - изменяемые поля профиля
type ProfileUpdate struct {
	FullName  *string `json:"full_name"`
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

// UpdateProfile обновляет профиль пользователя
func (us *UserService) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*models.User, error) {
	fields := map[string]interface{}{"updated_at": time.Now()}
	if update.FullName != nil {
		if *update.FullName == "" {
			return nil, errors.New("full name cannot be empty")
		}
		fields["full_name"] = *update.FullName
	}
	if update.Username != nil {
		if *update.Username == "" {
			return nil, errors.New("username cannot be empty")
		}
		fields["username"] = *update.Username
	}
	if update.AvatarURL != nil {
		fields["avatar_url"] = *update.AvatarURL
	}

	res := db.GetWriteDB(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrProfileNotFound
	}

	notifyTableChanged(ctx, "profiles", "update", []int64{userID})
	return us.GetProfile(ctx, userID)
}

// SearchByUsername ищет пользователей по подстроке никнейма (без самого себя)
func (us *UserService) SearchByUsername(ctx context.Context, userID int64, query string, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	var users []models.User
	err := db.GetReadOnlyDB(ctx).
		Where("username LIKE ? AND id != ?", "%"+query+"%", userID).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}
