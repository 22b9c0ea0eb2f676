// generate.go
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
	"strings"

	"github.com/edukita/studyhub/internal/generation"
	"github.com/edukita/studyhub/internal/logger"
	"github.com/edukita/studyhub/internal/models"
	"github.com/edukita/studyhub/internal/types"
	"gorm.io/gorm"
)

// ExerciseGenInput is the request body for exercise generation.
type ExerciseGenInput struct {
	Title         string         `json:"title" validate:"required,max=255"`
	Topic         string         `json:"topic" validate:"required"`
	ExerciseType  string         `json:"exercise_type" validate:"required,oneof=multiple_choice essay_question"`
	Difficulty    string         `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	QuestionCount int            `json:"question_count" validate:"omitempty,min=1,max=20"`
	FileIDs       []types.FlexID `json:"file_ids"`
}

// OutputGenInput is the request body for output (summary) generation.
type OutputGenInput struct {
	Title   string         `json:"title" validate:"required,max=255"`
	Topic   string         `json:"topic" validate:"required"`
	Style   string         `json:"style" validate:"omitempty,max=64"`
	FileIDs []types.FlexID `json:"file_ids"`
}

// GenerationService orchestrates model calls and persistence of the results.
type GenerationService struct {
	DB    *gorm.DB
	Gen   generation.Generator
	Files *FileService
	Log   *logger.Logger
}

func (s *GenerationService) exerciseRequest(ctx context.Context, userID string, in ExerciseGenInput) (generation.Request, []models.File, error) {
	kind := generation.KindMultipleChoice
	if in.ExerciseType == models.ExerciseTypeEssayQuestion {
		kind = generation.KindEssayQuestion
	}
	docs, files, err := s.readFileContext(ctx, userID, in.FileIDs)
	if err != nil {
		return generation.Request{}, nil, err
	}
	count := in.QuestionCount
	if count == 0 {
		count = 5
	}
	return generation.Request{
		Kind:          kind,
		Topic:         in.Topic,
		Difficulty:    in.Difficulty,
		QuestionCount: count,
		FileContext:   docs,
	}, files, nil
}

func (s *GenerationService) readFileContext(ctx context.Context, userID string, ids []types.FlexID) ([]string, []models.File, error) {
	if len(ids) == 0 {
		return nil, nil, nil
	}
	fileIDs := make([]uint64, len(ids))
	for i, id := range ids {
		fileIDs[i] = uint64(id)
	}
	return s.Files.ReadContext(ctx, userID, fileIDs)
}

// GenerateExercise runs a blocking generation and persists the result.
func (s *GenerationService) GenerateExercise(ctx context.Context, userID string, in ExerciseGenInput) (*models.Exercise, error) {
	req, files, err := s.exerciseRequest(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	text, err := s.Gen.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	exercise := models.Exercise{
		Title:        in.Title,
		Response:     models.NewJSON(text),
		ExerciseType: in.ExerciseType,
		Difficulty:   in.Difficulty,
		UserID:       userID,
	}
	if err := CreateExercise(s.DB, &exercise, files); err != nil {
		return nil, err
	}
	exercise.Files = files
	return &exercise, nil
}

// GenerateExerciseStream streams generation fragments through emit while
// accumulating the full text. The exercise row is written only after the
// upstream stream completes cleanly; a broken stream persists nothing.
func (s *GenerationService) GenerateExerciseStream(ctx context.Context, userID string, in ExerciseGenInput, emit func(chunk string) error) (*models.Exercise, error) {
	req, files, err := s.exerciseRequest(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	err = s.Gen.GenerateStream(ctx, req, func(chunk string) error {
		sb.WriteString(chunk)
		return emit(chunk)
	})
	if err != nil {
		s.Log.Warn("exercise stream aborted, discarding partial result",
			"user_id", userID, "error", err)
		return nil, err
	}
	exercise := models.Exercise{
		Title:        in.Title,
		Response:     models.NewJSON(sb.String()),
		ExerciseType: models.ExerciseTypeStream,
		Difficulty:   in.Difficulty,
		UserID:       userID,
	}
	if err := CreateExercise(s.DB, &exercise, files); err != nil {
		return nil, err
	}
	exercise.Files = files
	return &exercise, nil
}

// GenerateOutput runs a blocking summary generation and persists the result.
func (s *GenerationService) GenerateOutput(ctx context.Context, userID string, in OutputGenInput) (*models.Output, error) {
	docs, files, err := s.readFileContext(ctx, userID, in.FileIDs)
	if err != nil {
		return nil, err
	}
	text, err := s.Gen.Generate(ctx, generation.Request{
		Kind:        generation.KindSummary,
		Topic:       in.Topic,
		Style:       in.Style,
		FileContext: docs,
	})
	if err != nil {
		return nil, err
	}
	output := models.Output{
		Title:  in.Title,
		Output: text,
		Style:  in.Style,
		UserID: userID,
	}
	if err := CreateOutput(s.DB, &output, files); err != nil {
		return nil, err
	}
	output.Files = files
	return &output, nil
}

// GenerateOutputStream streams summary fragments through emit. Persistence
// follows the same clean-completion rule as exercise streaming.
func (s *GenerationService) GenerateOutputStream(ctx context.Context, userID string, in OutputGenInput, emit func(chunk string) error) (*models.Output, error) {
	docs, files, err := s.readFileContext(ctx, userID, in.FileIDs)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	err = s.Gen.GenerateStream(ctx, generation.Request{
		Kind:        generation.KindSummary,
		Topic:       in.Topic,
		Style:       in.Style,
		FileContext: docs,
	}, func(chunk string) error {
		sb.WriteString(chunk)
		return emit(chunk)
	})
	if err != nil {
		s.Log.Warn("output stream aborted, discarding partial result",
			"user_id", userID, "error", err)
		return nil, err
	}
	output := models.Output{
		Title:  in.Title,
		Output: sb.String(),
		Style:  in.Style,
		UserID: userID,
	}
	if err := CreateOutput(s.DB, &output, files); err != nil {
		return nil, err
	}
	output.Files = files
	return &output, nil
}
