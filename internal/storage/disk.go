package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// recipeImagePrefix mirrors the upload layout clients already link to.
const recipeImagePrefix = "uploads/recipe"

// DiskStore writes images under a media directory served by the HTTP layer.
type DiskStore struct {
	mediaDir string
	baseURL  string
}

func NewDiskStore(mediaDir string, baseURL string) *DiskStore {
	return &DiskStore{
		mediaDir: mediaDir,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

func (store *DiskStore) Store(ext string, content io.Reader) (string, error) {
	storagePath := path.Join(recipeImagePrefix, uuid.NewString()+ext)

	fullPath := filepath.Join(store.mediaDir, filepath.FromSlash(storagePath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return storagePath, nil
}

func (store *DiskStore) Delete(storagePath string) error {
	if storagePath == "" {
		return nil
	}
	fullPath := filepath.Join(store.mediaDir, filepath.FromSlash(storagePath))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}

func (store *DiskStore) URL(storagePath string) string {
	return store.baseURL + "/" + storagePath
}

// MediaDir exposes the root so the server can mount it as a static route.
func (store *DiskStore) MediaDir() string {
	return store.mediaDir
}
