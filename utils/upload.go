package utils

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadSize is the cap for a single uploaded image (5 MiB).
const MaxUploadSize = 5 << 20

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

var allowedImageMimes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

var (
	ErrUnsupportedFileType = errors.New("Only image files (jpeg, jpg, png, gif) are allowed")
	ErrFileTooLarge        = fmt.Errorf("Image file exceeds the %d MB limit", MaxUploadSize>>20)
)

// StagedFile is an uploaded image that has been written to the staging
// directory but is not yet referenced by a database row. The request that
// created it owns it until Commit or Discard is called.
type StagedFile struct {
	Name        string
	StagingPath string
	FinalPath   string
}

// SaveUploadedImage checks the file against the image allow-list and the
// size cap, then streams it into stagingDir under a uuid-based name that
// keeps the original extension. Nothing is written for a rejected file.
// The caller commits the file into finalDir once the database insert
// succeeds, or discards it.
func SaveUploadedImage(file multipart.File, header *multipart.FileHeader, stagingDir, finalDir string) (*StagedFile, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return nil, ErrUnsupportedFileType
	}
	if !allowedImageMimes[header.Header.Get("Content-Type")] {
		return nil, ErrUnsupportedFileType
	}
	if header.Size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	if err := os.MkdirAll(stagingDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %v", err)
	}

	name := uuid.New().String() + ext
	stagingPath := filepath.Join(stagingDir, name)

	dst, err := os.Create(stagingPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %v", err)
	}

	written, err := io.Copy(dst, io.LimitReader(file, MaxUploadSize+1))
	dst.Close()
	if err != nil {
		os.Remove(stagingPath)
		return nil, fmt.Errorf("failed to write file: %v", err)
	}
	if written > MaxUploadSize {
		os.Remove(stagingPath)
		return nil, ErrFileTooLarge
	}

	return &StagedFile{
		Name:        name,
		StagingPath: stagingPath,
		FinalPath:   filepath.ToSlash(filepath.Join(finalDir, name)),
	}, nil
}

// Commit moves the staged file into its final directory. Called after the
// referencing row has been inserted.
func (s *StagedFile) Commit() error {
	if err := os.MkdirAll(filepath.Dir(s.FinalPath), 0755); err != nil {
		return err
	}
	return os.Rename(s.StagingPath, filepath.FromSlash(s.FinalPath))
}

// Discard removes the staged file. Best effort: a failed delete is logged
// but never fails the request.
func (s *StagedFile) Discard() {
	if err := os.Remove(s.StagingPath); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove staged upload %s: %v", s.StagingPath, err)
	}
}

// SaveUploadedFile streams an upload straight into dir under a uuid-based
// name, with no type filtering. Used for the general uploads directory.
func SaveUploadedFile(file multipart.File, header *multipart.FileHeader, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %v", err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %v", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write file: %v", err)
	}

	return name, nil
}
