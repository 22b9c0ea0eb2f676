// files.go
//
// Learning-content backend for the studyhub application
// Copyright (c) 2026 Edukita <dev@edukita.io> (https://edukita.io)
//
// This file is part of studyhub.
// studyhub is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// studyhub is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with studyhub.
// If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edukita/studyhub/internal/logger"
	"github.com/edukita/studyhub/internal/models"
	"github.com/edukita/studyhub/internal/storage"
	"github.com/edukita/studyhub/internal/types"
)

// allowedExtensions is the upload allow-list, checked before any byte reaches
// object storage.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".md":   true,
	".docx": true,
	".pptx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

const signedURLTTL = 15 * time.Minute

// FileUpload is one incoming file in an upload batch.
type FileUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadResult reports the per-file outcome of an upload batch.
type UploadResult struct {
	Success      bool          `json:"success"`
	SuccessFiles []string      `json:"success_files"`
	FailedFiles  []string      `json:"failed_files"`
	Files        []models.File `json:"files"`
}

// FileService owns File rows and the object bytes behind them.
type FileService struct {
	DB    *gorm.DB
	Store storage.Store
	Log   *logger.Logger
}

// Upload stores each file and creates its metadata row. Files with a
// disallowed extension fail before upload; one bad file does not abort the
// batch. A file whose object upload succeeded but whose row insert failed is
// reported failed and its object removed.
func (s *FileService) Upload(ctx context.Context, userID string, uploads []FileUpload) (*UploadResult, error) {
	result := &UploadResult{
		SuccessFiles: []string{},
		FailedFiles:  []string{},
	}

	for _, up := range uploads {
		ext := strings.ToLower(filepath.Ext(up.FileName))
		if !allowedExtensions[ext] {
			s.Log.Warn("upload rejected by extension check", "file", up.FileName)
			result.FailedFiles = append(result.FailedFiles, up.FileName)
			continue
		}

		key := fmt.Sprintf("%s/%s%s", userID, uuid.NewString(), ext)
		if err := s.Store.Upload(ctx, key, up.ContentType, up.Reader); err != nil {
			s.Log.Error("object upload failed", "file", up.FileName, "error", err)
			result.FailedFiles = append(result.FailedFiles, up.FileName)
			continue
		}

		file := models.File{
			FileName:    up.FileName,
			FileSize:    up.Size,
			ContentType: up.ContentType,
			ObjectKey:   key,
			UserID:      userID,
		}
		if err := s.DB.Create(&file).Error; err != nil {
			s.Log.Error("file row insert failed", "file", up.FileName, "error", err)
			_ = s.Store.Delete(ctx, key)
			result.FailedFiles = append(result.FailedFiles, up.FileName)
			continue
		}

		result.SuccessFiles = append(result.SuccessFiles, up.FileName)
		result.Files = append(result.Files, file)
	}

	result.Success = len(result.FailedFiles) == 0
	return result, nil
}

// List returns the caller's files, newest first.
func (s *FileService) List(userID string) ([]models.File, error) {
	var files []models.File
	if err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&files).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return files, nil
}

// Get fetches one file row with an ownership check.
func (s *FileService) Get(id uint64, userID string) (*models.File, error) {
	file, err := GetOwned[models.File](s.DB, id, userID)
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// SignedURL returns a short-lived download URL after verifying the object
// still exists.
func (s *FileService) SignedURL(ctx context.Context, id uint64, userID string) (string, error) {
	file, err := GetOwned[models.File](s.DB, id, userID)
	if err != nil {
		return "", err
	}
	exists, err := s.Store.Exists(ctx, file.ObjectKey)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", types.ErrNotFound
	}
	return s.Store.SignedURL(file.ObjectKey, signedURLTTL)
}

// Delete removes the row, any association rows pointing at it, and the stored
// object. Association cleanup happens in the same transaction as the row so a
// deleted file can never leave dangling exercise or output references.
func (s *FileService) Delete(ctx context.Context, id uint64, userID string) error {
	file, err := GetOwned[models.File](s.DB, id, userID)
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM exercise_file WHERE file_id = ?`, file.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM output_file WHERE file_id = ?`, file.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&file).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrStorage, err)
	}

	if err := s.Store.Delete(ctx, file.ObjectKey); err != nil {
		// The row is gone; a leaked object is logged, not surfaced.
		s.Log.Error("object delete failed after row delete", "key", file.ObjectKey, "error", err)
	}
	return nil
}

// ReadContext downloads the text of the given owned files for use as
// generation context.
func (s *FileService) ReadContext(ctx context.Context, userID string, fileIDs []uint64) ([]string, []models.File, error) {
	contents := make([]string, 0, len(fileIDs))
	files := make([]models.File, 0, len(fileIDs))
	for _, id := range fileIDs {
		file, err := GetOwned[models.File](s.DB, id, userID)
		if err != nil {
			return nil, nil, err
		}
		r, err := s.Store.Download(ctx, file.ObjectKey)
		if err != nil {
			return nil, nil, err
		}
		data, err := io.ReadAll(r)
		_ = r.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: read %s: %v", types.ErrUpstream, file.ObjectKey, err)
		}
		contents = append(contents, string(data))
		files = append(files, file)
	}
	return contents, files, nil
}
