package service

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
	"github.com/arborhq/arbor/internal/storage"
)

// FileService pairs object storage with the files table; the row is the
// source of truth, the stored object is addressed by its path.
type FileService struct {
	fileRepo repository.FileRepository
	storage  storage.Storage
}

func NewFileService(fileRepo repository.FileRepository, storage storage.Storage) *FileService {
	return &FileService{fileRepo: fileRepo, storage: storage}
}

// Upload writes the file to storage under a generated name and records it.
// Callers validate type, size, and content before calling.
func (s *FileService) Upload(userID, ownerType, ownerID, fileType string, file multipart.File, header *multipart.FileHeader) (*model.File, error) {
	filename := uuid.New().String() + filepath.Ext(header.Filename)
	storagePath := filepath.Join(fileType+"s", filename)

	if err := s.storage.Save(storagePath, file); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	record := &model.File{
		ID:           uuid.New().String(),
		UserID:       userID,
		OwnerType:    ownerType,
		OwnerID:      ownerID,
		Type:         fileType,
		Filename:     filename,
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		StoragePath:  storagePath,
		CreatedAt:    time.Now(),
	}

	if err := s.fileRepo.Create(record); err != nil {
		// Orphaned object cleanup, best effort
		if delErr := s.storage.Delete(storagePath); delErr != nil {
			slog.Error("failed to delete file from storage during cleanup", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	return record, nil
}

func (s *FileService) Avatar(ownerType, ownerID string) (*model.File, error) {
	return s.fileRepo.FileByType(ownerType, ownerID, model.FileTypeAvatar)
}

// URL returns the public access URL for a file, or "" for nil.
func (s *FileService) URL(file *model.File) string {
	if file == nil {
		return ""
	}
	return s.storage.PublicURL(file.StoragePath)
}

// Delete removes the record and, best effort, the stored object.
func (s *FileService) Delete(fileID string) error {
	file, err := s.fileRepo.ByID(fileID)
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}

	if delErr := s.storage.Delete(file.StoragePath); delErr != nil {
		slog.Error("failed to delete file from storage", "error", delErr, "path", file.StoragePath)
	}

	if err := s.fileRepo.Delete(fileID); err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}
	return nil
}

// DeleteUserAvatar removes the user's avatar; having no avatar is not an
// error.
func (s *FileService) DeleteUserAvatar(userID string) error {
	file, err := s.Avatar("user", userID)
	if errors.Is(err, repository.ErrFileNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.Delete(file.ID)
}

// DeleteAllUserFilesFromStorage clears a departing user's objects; the rows
// go with the account via cascade.
func (s *FileService) DeleteAllUserFilesFromStorage(userID string) error {
	files, err := s.fileRepo.AllUserFiles(userID)
	if err != nil {
		return fmt.Errorf("failed to get user files: %w", err)
	}

	for _, file := range files {
		if err := s.storage.Delete(file.StoragePath); err != nil {
			slog.Warn("failed to delete file from storage", "storage_path", file.StoragePath, "error", err)
		}
	}
	return nil
}
