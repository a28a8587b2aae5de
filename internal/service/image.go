package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/resiplicity/backend/config"
	"github.com/resiplicity/backend/internal/types"
)

// PlatingImageService generates plating photos through the image relay, a
// thin pass-through server in front of the diffusion model. It speaks the
// relay's contract only: POST {"prompt": ...} and read back {"url": ...}.
type PlatingImageService struct {
	relayURL string
	client   *http.Client
	s3Config *config.S3Config
}

// relayRequest is the body the relay expects.
type relayRequest struct {
	Prompt string `json:"prompt"`
}

// relayResponse is the body the relay returns on success.
type relayResponse struct {
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

// NewPlatingImageService creates a new PlatingImageService instance.
// IMAGE_RELAY_URL overrides the relay endpoint; s3Config may be nil to skip
// re-hosting generated images.
func NewPlatingImageService(s3Config *config.S3Config) *PlatingImageService {
	relayURL := os.Getenv("IMAGE_RELAY_URL")
	if relayURL == "" {
		relayURL = "http://localhost:4000/api/generate-image"
	}

	return &PlatingImageService{
		relayURL: relayURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		s3Config: s3Config,
	}
}

// GeneratePlatingImage builds a retro-styled prompt from the recipe and asks
// the relay for an image. The returned URL points at S3 when re-hosting
// succeeds, otherwise at the relay's own output.
func (s *PlatingImageService) GeneratePlatingImage(ctx context.Context, req types.PlatingImageRequest) (string, error) {
	prompt := buildPlatingPrompt(req)

	body, err := json.Marshal(relayRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.relayURL, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to reach image relay: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read relay response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image relay failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var result relayResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode relay response: %w", err)
	}
	if result.URL == "" {
		return "", fmt.Errorf("empty image URL in relay response")
	}

	if s.s3Config == nil {
		return result.URL, nil
	}

	s3URL, err := s.downloadAndUploadToS3(ctx, result.URL)
	if err != nil {
		log.Printf("[PlatingImageService] Failed to upload to S3, returning relay URL: %v", err)
		return result.URL, nil
	}
	return s3URL, nil
}

// downloadAndUploadToS3 downloads an image from URL and uploads it to S3
func (s *PlatingImageService) downloadAndUploadToS3(ctx context.Context, imageURL string) (string, error) {
	resp, err := s.client.Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download image, status: %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}

	fileName := fmt.Sprintf("plating-images/%s.webp", uuid.New().String())

	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[PlatingImageService] Uploaded image to S3: %s", publicURL)
	return publicURL, nil
}

// buildPlatingPrompt creates a vintage-cookbook style prompt for the recipe.
func buildPlatingPrompt(req types.PlatingImageRequest) string {
	var b strings.Builder
	b.WriteString("A photo of ")
	b.WriteString(req.Title)
	b.WriteString(" in classic 70s style.")
	if req.Description != "" {
		b.WriteString(" ")
		b.WriteString(req.Description)
		b.WriteString(".")
	}
	if req.Plating != "" {
		b.WriteString(" ")
		b.WriteString(req.Plating)
		b.WriteString(".")
	}
	b.WriteString(" Styled like a vintage cookbook photo, with bold colors and retro plating presentation.")

	prompt := b.String()
	if len(prompt) > 900 {
		prompt = prompt[:900]
	}
	return prompt
}
