package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	keys []string
	err  error
}

func (f *fakeStorage) Upload(_ context.Context, data []byte, key, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "https://bucket.s3.amazonaws.com/" + key, nil
}

func TestDiaryService(t *testing.T) {
	ctx := context.Background()

	t.Run("upload stores the image and records the entry", func(t *testing.T) {
		db := setupTestDB(t)
		user := seedUser(t, db)
		storage := &fakeStorage{}
		svc := NewDiaryService(db, storage)

		food, err := svc.UploadEatenFoodImage(ctx, user.ID, "비빔밥", "lunch.JPG",
			[]byte("fake-image-bytes"), "image/jpeg")
		require.NoError(t, err)

		assert.Equal(t, "비빔밥", food.Name)
		assert.Contains(t, food.ImageURL, "https://bucket.s3.amazonaws.com/")
		assert.WithinDuration(t, time.Now(), food.EatenAt, time.Minute)

		require.Len(t, storage.keys, 1)
		assert.True(t, strings.HasPrefix(storage.keys[0], user.ID.String()+"/"))
		assert.True(t, strings.HasSuffix(storage.keys[0], ".jpg"))

		foods, err := svc.ListEatenFoods(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, foods, 1)
		assert.Equal(t, food.ID, foods[0].ID)
	})

	t.Run("storage failure records nothing", func(t *testing.T) {
		db := setupTestDB(t)
		user := seedUser(t, db)
		svc := NewDiaryService(db, &fakeStorage{err: errors.New("s3 unavailable")})

		_, err := svc.UploadEatenFoodImage(ctx, user.ID, "비빔밥", "lunch.jpg",
			[]byte("fake-image-bytes"), "image/jpeg")
		require.Error(t, err)

		foods, err := svc.ListEatenFoods(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, foods)
	})

	t.Run("empty upload is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		user := seedUser(t, db)
		svc := NewDiaryService(db, &fakeStorage{})

		_, err := svc.UploadEatenFoodImage(ctx, user.ID, "", "x.png", nil, "")
		assert.Error(t, err)
	})
}
