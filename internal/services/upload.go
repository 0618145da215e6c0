package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// UploadDir resolves the image storage root, ./uploads by default.
func UploadDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

// SaveUpload writes an uploaded image to local disk and returns the
// relative path stored on the entity. A random prefix keeps uploads with
// the same original filename from colliding.
func SaveUpload(file multipart.File, header *multipart.FileHeader) (string, error) {
	dir := UploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(header.Filename))
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return "/uploads/" + name, nil
}

// RemoveUpload deletes a stored image by its relative path. Used both as
// compensating cleanup when the database write referencing a fresh
// upload fails, and when a pin or profile photo is removed.
func RemoveUpload(imagePath string) {
	if imagePath == "" {
		return
	}
	name := filepath.Base(imagePath)
	_ = os.Remove(filepath.Join(UploadDir(), name))
}
