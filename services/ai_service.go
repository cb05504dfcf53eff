package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/mrsimple007/friends-checking-bot/internal/birthday"
)

const geminiModel = "gemini-2.5-flash"

// AIService wraps the Gemini API for the two language tasks the bot needs:
// pulling a structured birthday out of free-form text and writing a short
// birthday wish. Every call carries a tight deadline so a slow model never
// stalls a chat reply.
type AIService struct {
	client *genai.Client
}

func NewAIService(ctx context.Context, apiKey string) (*AIService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &AIService{client: client}, nil
}

const birthdayPrompt = `Extract the person's name and birthday from this message: "%s"

Respond with ONLY a JSON object, no other text:
{"name": "<name>", "day": <1-31>, "month": <1-12>, "year": <year or null>}

If the year is not mentioned, use null for year.`

// ParseBirthday asks the model to turn a free-form message like
// "Anna 14 March 1998" into structured fields. The reply is validated before
// anything reaches storage.
func (s *AIService) ParseBirthday(ctx context.Context, text string) (*birthday.Parsed, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(birthdayPrompt, text)
	result, err := s.client.Models.GenerateContent(ctx, geminiModel, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate birthday parse: %w", err)
	}

	raw := stripFences(result.Text())

	parsed := &birthday.Parsed{}
	if err := json.Unmarshal([]byte(raw), parsed); err != nil {
		return nil, fmt.Errorf("failed to decode birthday response %q: %w", raw, err)
	}
	if err := parsed.Validate(); err != nil {
		return nil, err
	}

	return parsed, nil
}

// GenerateWish produces a short personalized birthday wish in the given
// language. Callers fall back to a canned greeting when this fails.
func (s *AIService) GenerateWish(ctx context.Context, friendName, lang string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(
		"Write a short, warm birthday wish (2-3 sentences, with emoji) for a friend named %s. Respond in language code %q. Output only the wish text.",
		friendName, lang,
	)
	result, err := s.client.Models.GenerateContent(ctx, geminiModel, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate wish: %w", err)
	}

	wish := strings.TrimSpace(result.Text())
	if wish == "" {
		return "", fmt.Errorf("empty wish response")
	}
	return wish, nil
}

// stripFences removes a markdown code fence the model sometimes wraps JSON
// answers in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
