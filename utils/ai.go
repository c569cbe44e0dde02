package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"ringback/backend/industry"
)

type AIConfig struct {
	APIKey   string
	GenModel string
}

func NewAIClient(ctx context.Context, cfg AIConfig) (*genai.Client, error) {
	return genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
}

func GenerateText(ctx context.Context, client *genai.Client, model string, parts ...genai.Part) (string, error) {
	m := client.GenerativeModel(model)
	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if resp != nil {
		for _, c := range resp.Candidates {
			if c == nil || c.Content == nil {
				continue
			}
			for _, p := range c.Content.Parts {
				if t, ok := p.(genai.Text); ok {
					b.WriteString(string(t))
				}
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// ScriptDrafter writes the greeting the voice agent reads when it picks up a
// missed call.
type ScriptDrafter interface {
	DraftGreeting(ctx context.Context, businessName string, entry industry.Entry) (string, error)
}

// GeminiDrafter drafts greetings with Gemini. A client is opened per call.
type GeminiDrafter struct {
	Config AIConfig
}

func (g GeminiDrafter) DraftGreeting(ctx context.Context, businessName string, entry industry.Entry) (string, error) {
	client, err := NewAIClient(ctx, g.Config)
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}
	defer client.Close()

	text, err := GenerateText(ctx, client, g.Config.GenModel, genai.Text(GreetingPrompt(businessName, entry)))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if text == "" {
		return "", fmt.Errorf("gemini generate: empty response")
	}
	return text, nil
}

func GreetingPrompt(businessName string, entry industry.Entry) string {
	return fmt.Sprintf(`You write phone greetings for an answering assistant.
Business: %s
Industry: %s (%s)
Write a friendly greeting of at most three sentences. Apologise that the team missed the call,
ask for the caller's name, the service they need and the best number to text them back.
Return only the greeting text.`, businessName, entry.Label, entry.Description)
}

// TemplateGreeting is used when no AI drafter is configured or it fails.
func TemplateGreeting(businessName string, entry industry.Entry) string {
	if entry.Code == industry.Generic || entry.Code == "" {
		return fmt.Sprintf("Thanks for calling %s. Sorry we missed you! What's your name, what can we help with, and what's the best number to text you back?", businessName)
	}
	return fmt.Sprintf("Thanks for calling %s. Sorry we missed you! What's your name, what %s service do you need, and what's the best number to text you back?", businessName, strings.ToLower(entry.Label))
}
