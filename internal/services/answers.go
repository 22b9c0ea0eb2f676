// answers.go
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

// AnswerInput is one question-response pair in a save_answers batch.
type AnswerInput struct {
	Title              string      `json:"title"`
	RelatedFiles       models.JSON `json:"relatedFiles"`
	QuestionID         string      `json:"questionId"`
	Question           string      `json:"question" validate:"required"`
	Choices            models.JSON `json:"choices"`
	UserSelectedChoice string      `json:"userSelectedChoice"`
	CorrectChoice      string      `json:"correctChoice"`
	IsCorrect          bool        `json:"isCorrect"`
	Explanation        string      `json:"explanation"`
}

// BulkDeleteResult is the three-way reconciliation of a bulk-delete request.
// The three lists are pairwise disjoint and together cover the de-duplicated
// request set exactly once.
type BulkDeleteResult struct {
	DeletedIDs      []uint64 `json:"deleted_ids"`
	NotFoundIDs     []uint64 `json:"not_found_ids"`
	UnauthorizedIDs []uint64 `json:"unauthorized_ids"`
}

// SaveAnswers creates one Answer row per input, all in a single transaction.
func SaveAnswers(db *gorm.DB, userID string, inputs []AnswerInput) ([]models.Answer, error) {
	answers := make([]models.Answer, 0, len(inputs))
	for _, in := range inputs {
		answers = append(answers, models.Answer{
			Title:              in.Title,
			RelatedFiles:       in.RelatedFiles,
			QuestionID:         in.QuestionID,
			Question:           in.Question,
			Choices:            in.Choices,
			UserSelectedChoice: in.UserSelectedChoice,
			CorrectChoice:      in.CorrectChoice,
			IsCorrect:          in.IsCorrect,
			Explanation:        in.Explanation,
			UserID:             userID,
		})
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&answers).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return answers, nil
}

// ListAnswers returns the caller's answers, newest first.
func ListAnswers(db *gorm.DB, userID string) ([]models.Answer, error) {
	var answers []models.Answer
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&answers).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return answers, nil
}

// DeleteAnswer deletes a single answer after an ownership check.
func DeleteAnswer(db *gorm.DB, id uint64, userID string) error {
	return DeleteOwned[models.Answer](db, id, userID)
}

// BulkDeleteAnswers partitions the requested IDs into owned, unauthorized and
// not-found sets, then deletes the owned subset atomically. One query fetches
// all matching rows; not-found is the set difference between the request and
// the rows that came back. A failure during delete or commit rolls back the
// whole batch: no partial deletion is possible.
func BulkDeleteAnswers(db *gorm.DB, userID string, answerIDs []uint64) (*BulkDeleteResult, error) {
	// De-duplicate while preserving first-seen order.
	seen := make(map[uint64]struct{}, len(answerIDs))
	requested := make([]uint64, 0, len(answerIDs))
	for _, id := range answerIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		requested = append(requested, id)
	}

	var rows []models.Answer
	if err := db.Select("id", "user_id").Where("id IN ?", requested).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStorage, err)
	}

	ownerByID := make(map[uint64]string, len(rows))
	for _, row := range rows {
		ownerByID[row.ID] = row.UserID
	}

	result := &BulkDeleteResult{
		DeletedIDs:      []uint64{},
		NotFoundIDs:     []uint64{},
		UnauthorizedIDs: []uint64{},
	}
	owned := make([]uint64, 0, len(requested))
	for _, id := range requested {
		owner, ok := ownerByID[id]
		switch {
		case !ok:
			result.NotFoundIDs = append(result.NotFoundIDs, id)
		case owner != userID:
			result.UnauthorizedIDs = append(result.UnauthorizedIDs, id)
		default:
			owned = append(owned, id)
		}
	}

	if len(owned) > 0 {
		err := db.Transaction(func(tx *gorm.DB) error {
			res := tx.Where("id IN ? AND user_id = ?", owned, userID).Delete(&models.Answer{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected != int64(len(owned)) {
				return fmt.Errorf("expected %d deletions, got %d", len(owned), res.RowsAffected)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrStorage, err)
		}
		result.DeletedIDs = owned
	}

	return result, nil
}
