package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealcoach/backend/internal/service"
)

const maxDiaryImageBytes = 10 << 20

// DiaryHandler serves the food diary: listing entries and uploading photos.
type DiaryHandler struct {
	diary service.IDiaryService
}

func NewDiaryHandler(diary service.IDiaryService) *DiaryHandler {
	return &DiaryHandler{diary: diary}
}

func (h *DiaryHandler) ListEatenFoods(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	foods, err := h.diary.ListEatenFoods(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load diary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"eaten_foods": foods})
}

func (h *DiaryHandler) UploadEatenFood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxDiaryImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	food, err := h.diary.UploadEatenFoodImage(
		c.Request.Context(),
		userID,
		c.PostForm("name"),
		fileHeader.Filename,
		data,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store diary entry"})
		return
	}
	c.JSON(http.StatusCreated, food)
}
