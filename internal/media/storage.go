// Package media хранит загруженные фотографии сотрудников на диске.
package media

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/org-hierarchy-api/internal/domain"
)

// PhotoDir - подкаталог для фотографий внутри каталога media
const PhotoDir = "employee_photos"

var allowedPhotoTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Storage сохраняет файлы в локальный каталог
type Storage struct {
	root     string
	maxBytes int64
}

// NewStorage создаёт хранилище с корнем root
func NewStorage(root string, maxBytes int64) *Storage {
	return &Storage{root: root, maxBytes: maxBytes}
}

// Root возвращает корневой каталог хранилища
func (s *Storage) Root() string {
	return s.root
}

// MaxBytes возвращает предельный размер фотографии
func (s *Storage) MaxBytes() int64 {
	return s.maxBytes
}

// SavePhoto проверяет содержимое и сохраняет фото под случайным именем.
// Возвращает относительный путь вида employee_photos/<uuid>.<ext>.
func (s *Storage) SavePhoto(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", domain.ErrPhotoTooLarge
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedPhotoTypes...) {
		return "", domain.ErrInvalidPhoto
	}

	dir := filepath.Join(s.root, PhotoDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media dir: %w", err)
	}

	name := uuid.NewString() + mtype.Extension()
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}

	return path.Join(PhotoDir, name), nil
}

// Remove удаляет ранее сохранённый файл; отсутствие файла не считается ошибкой
func (s *Storage) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists сообщает, лежит ли файл в хранилище
func (s *Storage) Exists(rel string) bool {
	info, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(rel)))
	return err == nil && !info.IsDir()
}
