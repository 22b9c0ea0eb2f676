// owned.go
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
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edukita/studyhub/internal/models"
	"github.com/edukita/studyhub/internal/types"
)

// GetOwned fetches an entity by primary key and verifies the caller owns it.
// A missing row yields types.ErrNotFound; a row owned by another user yields
// types.ErrForbidden. The two are deliberately distinguishable: "absent" and
// "present but not yours" map to different HTTP statuses upstream.
func GetOwned[T models.Owned](db *gorm.DB, id uint64, userID string) (T, error) {
	var entity T
	if err := db.First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity, types.ErrNotFound
		}
		return entity, fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	if entity.OwnerID() != userID {
		return entity, types.ErrForbidden
	}
	return entity, nil
}

// DeleteOwned deletes an entity after an ownership check, in one transaction.
// Association rows (exercise_file, output_file) are removed with the parent.
func DeleteOwned[T models.Owned](db *gorm.DB, id uint64, userID string) error {
	entity, err := GetOwned[T](db, id, userID)
	if err != nil {
		return err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Select(clause.Associations).Delete(&entity).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return nil
}
