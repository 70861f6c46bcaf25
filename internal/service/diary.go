package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealcoach/backend/internal/models"
)

type DiaryService struct {
	db      *gorm.DB
	storage ObjectStorage
}

func NewDiaryService(db *gorm.DB, storage ObjectStorage) *DiaryService {
	return &DiaryService{db: db, storage: storage}
}

func (s *DiaryService) ListEatenFoods(ctx context.Context, userID uuid.UUID) ([]models.EatenFood, error) {
	var foods []models.EatenFood
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("eaten_at DESC").
		Find(&foods).Error
	if err != nil {
		return nil, err
	}
	return foods, nil
}

// UploadEatenFoodImage stores the image under the user's prefix and records a
// diary entry pointing at it.
func (s *DiaryService) UploadEatenFoodImage(ctx context.Context, userID uuid.UUID, name, filename string, data []byte, contentType string) (*models.EatenFood, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image upload")
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	ext := path.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("%s/%s%s", userID, uuid.New(), strings.ToLower(ext))

	url, err := s.storage.Upload(ctx, data, key, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store diary image: %w", err)
	}

	food := models.EatenFood{
		UserID:   userID,
		Name:     name,
		ImageURL: url,
		EatenAt:  time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}
