package services

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edukita/studyhub/internal/models"
	"github.com/edukita/studyhub/internal/types"
)

// UserInput is the profile payload sent on sign-in.
type UserInput struct {
	Name       string `json:"name" validate:"required,max=255"`
	Email      string `json:"email" validate:"required,email"`
	PictureURL string `json:"picture_url" validate:"omitempty,url"`
}

// SyncUser upserts the caller's profile row. The uid comes from the verified
// token, never from the request body.
func SyncUser(db *gorm.DB, uid string, in UserInput) (*models.User, error) {
	user := models.User{
		UID:        uid,
		Name:       in.Name,
		Email:      in.Email,
		PictureURL: in.PictureURL,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "picture_url", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return &user, nil
}

// GetUser fetches the caller's profile row.
func GetUser(db *gorm.DB, uid string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "uid = ?", uid).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: user %s", types.ErrNotFound, uid)
		}
		return nil, fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return &user, nil
}
