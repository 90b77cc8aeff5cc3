package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"openinvite/config"
)

const maxAvatarSize = 5 << 20 // 5 MB

var allowedAvatarExts = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

// StorageService кладет загруженные аватары в каталог из конфига и
// возвращает публичный URL. Каталог раздается статикой роутера.
type StorageService struct{}

func NewStorageService() *StorageService {
	return &StorageService{}
}

// SaveAvatar сохраняет файл аватара и возвращает его публичный URL
func (ss *StorageService) SaveAvatar(fileName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("file is empty")
	}
	if len(data) > maxAvatarSize {
		return "", errors.New("file is too large")
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedAvatarExts[ext]; !ok {
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}

	if config.AppConfig == nil || config.AppConfig.Storage.AvatarDir == "" {
		return "", errors.New("avatar storage is not configured")
	}
	dir := config.AppConfig.Storage.AvatarDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to prepare avatar dir: %w", err)
	}

	// Случайное имя, чтобы не перезатирать чужие файлы
	nameBytes := make([]byte, 16)
	if _, err := rand.Read(nameBytes); err != nil {
		return "", err
	}
	storedName := hex.EncodeToString(nameBytes) + ext

	if err := os.WriteFile(filepath.Join(dir, storedName), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store avatar: %w", err)
	}

	baseURL := strings.TrimRight(config.AppConfig.Storage.BaseURL, "/")
	return baseURL + "/avatars/" + storedName, nil
}
