// outputs.go
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
	"fmt"

	"gorm.io/gorm"

	"github.com/edukita/studyhub/internal/models"
	"github.com/edukita/studyhub/internal/types"
)

// CreateOutput persists a generated output and its file associations.
func CreateOutput(db *gorm.DB, output *models.Output, files []models.File) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Files").Create(output).Error; err != nil {
			return err
		}
		if len(files) == 0 {
			return nil
		}
		return tx.Model(output).Association("Files").Append(&files)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return nil
}

// ListOutputs returns the caller's outputs, newest first, without the body
// column.
func ListOutputs(db *gorm.DB, userID string) ([]models.Output, error) {
	var outputs []models.Output
	err := db.Omit("Output").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&outputs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return outputs, nil
}

// GetOutput fetches one output with its files, after an ownership check.
func GetOutput(db *gorm.DB, id uint64, userID string) (*models.Output, error) {
	output, err := GetOwned[models.Output](db, id, userID)
	if err != nil {
		return nil, err
	}
	if err := db.Model(&output).Association("Files").Find(&output.Files); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return &output, nil
}

// DeleteOutput deletes an output and its association rows after an ownership
// check.
func DeleteOutput(db *gorm.DB, id uint64, userID string) error {
	output, err := GetOwned[models.Output](db, id, userID)
	if err != nil {
		return err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&output).Association("Files").Clear(); err != nil {
			return err
		}
		return tx.Delete(&output).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return nil
}
