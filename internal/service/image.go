package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImageGenerationRequest represents a request to the images API
type ImageGenerationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	ResponseFormat string `json:"response_format"`
}

// ImageGenerationResponse represents the response from the images API
type ImageGenerationResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL           string `json:"url,omitempty"`
		RevisedPrompt string `json:"revised_prompt,omitempty"`
	} `json:"data"`
}

// ImageService generates meal imagery and stores copies in object storage.
type ImageService struct {
	apiKey  string
	apiURL  string
	storage ObjectStorage
	client  *http.Client
	logger  *zap.Logger
}

func NewImageService(apiKey, apiURL string, storage ObjectStorage, logger *zap.Logger) *ImageService {
	if apiURL == "" {
		apiURL = "https://api.openai.com/v1/images/generations"
	}
	return &ImageService{
		apiKey:  apiKey,
		apiURL:  apiURL,
		storage: storage,
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

// GenerateMealImage produces an image for one meal title and returns its URL.
// The generated image is re-hosted in object storage; when that upload fails
// the provider URL is returned as-is.
func (s *ImageService) GenerateMealImage(ctx context.Context, mealTitle string) (string, error) {
	prompt := "A professional food photography shot of a Korean meal: " + mealTitle +
		", natural light, top-down view, clean table setting"

	reqBody := ImageGenerationRequest{
		Model:          "dall-e-3",
		Prompt:         prompt,
		N:              1,
		Size:           "1024x1024",
		Quality:        "standard",
		ResponseFormat: "url",
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result ImageGenerationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Data) == 0 || result.Data[0].URL == "" {
		return "", fmt.Errorf("no image data in API response")
	}
	imageURL := result.Data[0].URL

	hosted, err := s.rehost(ctx, imageURL)
	if err != nil {
		s.logger.Warn("failed to re-host meal image, keeping provider URL",
			zap.String("meal", mealTitle), zap.Error(err))
		return imageURL, nil
	}
	return hosted, nil
}

func (s *ImageService) rehost(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download image, status: %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}

	key := fmt.Sprintf("meal-images/%s.png", uuid.New())
	return s.storage.Upload(ctx, data, key, "image/png")
}
