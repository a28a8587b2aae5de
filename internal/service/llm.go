package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/resiplicity/backend/internal/types"
)

// LLMService handles interactions with the external text-generation API.
// Calls are single-attempt: failures are surfaced to the caller, never
// retried here.
type LLMService struct {
	apiKey string
	apiURL string
	client *http.Client
	redis  *redis.Client
}

// NewLLMService creates a new LLMService instance. The API key comes from
// DEEPSEEK_API_KEY or a DEEPSEEK_API_KEY_FILE secret; DEEPSEEK_API_URL
// overrides the endpoint so tests can point at a local server. redisClient
// may be nil, in which case draft storage is disabled.
func NewLLMService(redisClient *redis.Client) (*LLMService, error) {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("DEEPSEEK_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY or DEEPSEEK_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("DEEPSEEK_API_URL")
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}

	return &LLMService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{},
		redis:  redisClient,
	}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat-completions request
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

// BuildPrompt turns a generation request into the single prompt string sent
// to the model. It fails before any network call when no ingredients were
// provided.
func (s *LLMService) BuildPrompt(req types.GenerateRecipeRequest) (string, error) {
	if len(req.Ingredients) == 0 {
		return "", ErrNoIngredients
	}

	return fmt.Sprintf(`Create a detailed recipe with these parameters:
Ingredients: %s
Cuisine: %s
Dietary Restrictions: %s
Cook's Proficiency: %s
Time Available: %s

Respond with a valid JSON object containing EXACTLY these fields:
{
  "title": "Recipe name",
  "description": "Brief description",
  "prepTime": "Preparation time",
  "cookTime": "Cooking time",
  "totalTime": "Total time",
  "difficulty": "Easy/Medium/Hard",
  "ingredients": ["List of ingredients with quantities"],
  "alternativeIngredients": {"ingredient": "alternative"},
  "instructions": ["Step by step instructions"],
  "nutrition": {
    "calories": "per serving",
    "protein": "grams",
    "carbs": "grams",
    "fat": "grams"
  },
  "plating": "Plating suggestions",
  "history": "Cultural background and history"
}`,
		strings.Join(req.Ingredients, ", "),
		req.Cuisine,
		strings.Join(req.Restrictions, ", "),
		req.Proficiency,
		req.TimeAvailable,
	), nil
}

// GenerateRecipe sends the built prompt to the external model and returns its
// raw text output. The output is opaque here; parsing and schema validation
// happen in ExtractRecipeJSON and ValidateRecipe.
func (s *LLMService) GenerateRecipe(ctx context.Context, genReq types.GenerateRecipeRequest) (string, error) {
	prompt, err := s.BuildPrompt(genReq)
	if err != nil {
		return "", err
	}

	reqBody := Request{
		Model: "deepseek-chat",
		Messages: []Message{
			{
				Role:    "system",
				Content: "You are a professional chef and culinary historian.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		ResponseFormat: map[string]string{
			"type": "json_object",
		},
		Temperature: 0.9,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Choices[0].Message.Content, nil
}

// RecipeDraft keeps a validated generation result in Redis so the user still
// has the recipe even when the persistence write fails afterwards.
type RecipeDraft struct {
	ID        string                `json:"id"`
	CreatedAt time.Time             `json:"created_at"`
	UserID    string                `json:"user_id"`
	Recipe    types.GeneratedRecipe `json:"recipe"`
}

// SaveDraft stores a recipe draft in Redis for 24 hours.
func (s *LLMService) SaveDraft(ctx context.Context, draft *RecipeDraft) error {
	if s.redis == nil {
		return fmt.Errorf("draft storage not configured")
	}

	draft.ID = uuid.New().String()
	draft.CreatedAt = time.Now()

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	key := fmt.Sprintf("recipe:draft:%s", draft.ID)
	if err := s.redis.Set(ctx, key, data, 24*time.Hour).Err(); err != nil {
		return fmt.Errorf("failed to save draft to Redis: %w", err)
	}

	return nil
}

// GetDraft retrieves a recipe draft from Redis.
func (s *LLMService) GetDraft(ctx context.Context, id string) (*RecipeDraft, error) {
	if s.redis == nil {
		return nil, fmt.Errorf("draft storage not configured")
	}

	key := fmt.Sprintf("recipe:draft:%s", id)
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var draft RecipeDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &draft, nil
}

// DeleteDraft removes a recipe draft from Redis.
func (s *LLMService) DeleteDraft(ctx context.Context, id string) error {
	if s.redis == nil {
		return fmt.Errorf("draft storage not configured")
	}

	key := fmt.Sprintf("recipe:draft:%s", id)
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}

	return nil
}
