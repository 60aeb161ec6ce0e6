package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"socialpulse/pipeline/internal/enrich"
)

const classifierModel = "gemini-2.0-flash"

// category taxonomy baked into the categorization prompt.
var categories = []struct {
	Name, Description string
}{
	{"Price Inquiry", "Comments about cost or discounts"},
	{"Product Inquiry", "Comments about features, availability, or specs"},
	{"Careers", "Comments about job openings, employee spotlights, or recruitment-related content"},
	{"Support Request", "Comments about service or troubleshooting needs"},
	{"Comparison", "Comments comparing with competitors or other products"},
	{"Order Inquiry", "Comments about purchases or delivery"},
}

type Categorizer struct {
	client *genai.Client
	model  string
}

func NewCategorizer(ctx context.Context, apiKey string) (*Categorizer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Categorizer{client: client, model: classifierModel}, nil
}

func (c *Categorizer) Categorize(ctx context.Context, text string) (enrich.Categorization, error) {
	var desc strings.Builder
	for _, cat := range categories {
		fmt.Fprintf(&desc, "- %s: %s\n", cat.Name, cat.Description)
	}

	system := "You are an AI specialized in categorizing social media content. " +
		"Analyze comments and categorize them based on predefined categories."
	prompt := fmt.Sprintf(`Analyze the following comment and categorize it according to these categories:

%s
comment: %s

Provide a JSON response with these keys:
- primary_category: Main category the comment belongs to
- secondary_categories: Array of other relevant categories (if any)
- confidence_score: Confidence level (0-1)
- keywords: Array of key terms that influenced the categorization
- reasoning: Brief explanation of the categorization

Ensure the response is a valid JSON object.`, desc.String(), text)

	raw, err := generateJSON(ctx, c.client, c.model, system, prompt)
	if err != nil {
		return enrich.Categorization{}, err
	}
	return parseCategorization([]byte(raw))
}

func parseCategorization(raw []byte) (enrich.Categorization, error) {
	var payload struct {
		PrimaryCategory     string   `json:"primary_category"`
		SecondaryCategories []string `json:"secondary_categories"`
		ConfidenceScore     *float64 `json:"confidence_score"`
		Keywords            []string `json:"keywords"`
		Reasoning           string   `json:"reasoning"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return enrich.Categorization{}, fmt.Errorf("malformed categorization payload: %w", err)
	}

	// Missing keys fall back field-by-field; the row always leaves with the
	// full schema populated.
	out := enrich.DefaultCategorization(nil)
	if payload.PrimaryCategory != "" {
		out.PrimaryCategory = payload.PrimaryCategory
	}
	if payload.SecondaryCategories != nil {
		out.SecondaryCategories = payload.SecondaryCategories
	}
	if payload.ConfidenceScore != nil && enrich.ValidConfidence(*payload.ConfidenceScore) {
		out.Confidence = *payload.ConfidenceScore
	}
	if payload.Keywords != nil {
		out.Keywords = payload.Keywords
	}
	if payload.Reasoning != "" {
		out.Reasoning = payload.Reasoning
	}
	return out, nil
}

type SentimentAnalyzer struct {
	client *genai.Client
	model  string
}

func NewSentimentAnalyzer(ctx context.Context, apiKey string) (*SentimentAnalyzer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &SentimentAnalyzer{client: client, model: classifierModel}, nil
}

func (s *SentimentAnalyzer) Analyze(ctx context.Context, text string) (enrich.Sentiment, error) {
	system := "You are an advanced sentiment analysis AI reviewing customer reactions to products and services. " +
		"Provide a structured JSON response analyzing the sentiment of a given text."
	prompt := fmt.Sprintf(`Analyze the following comment and provide a detailed sentiment assessment:

Comment: %s

Provide a JSON response with these keys:
- sentiment: Overall sentiment (Positive/Negative/Neutral)
- confidence_score: Confidence level (0-1)
- key_emotions: Array of detected emotions
- reasoning: Brief explanation of sentiment classification

Ensure the response is a valid JSON object.`, text)

	raw, err := generateJSON(ctx, s.client, s.model, system, prompt)
	if err != nil {
		return enrich.Sentiment{}, err
	}
	return parseSentiment([]byte(raw))
}

func parseSentiment(raw []byte) (enrich.Sentiment, error) {
	var payload struct {
		Sentiment       string   `json:"sentiment"`
		ConfidenceScore *float64 `json:"confidence_score"`
		KeyEmotions     []string `json:"key_emotions"`
		Reasoning       string   `json:"reasoning"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return enrich.Sentiment{}, fmt.Errorf("malformed sentiment payload: %w", err)
	}

	out := enrich.DefaultSentiment(nil)
	if payload.Sentiment != "" {
		out.Label = payload.Sentiment
	}
	if payload.ConfidenceScore != nil && enrich.ValidConfidence(*payload.ConfidenceScore) {
		out.Confidence = *payload.ConfidenceScore
	}
	if payload.KeyEmotions != nil {
		out.KeyEmotions = payload.KeyEmotions
	}
	if payload.Reasoning != "" {
		out.Reasoning = payload.Reasoning
	}
	return out, nil
}

func generateJSON(ctx context.Context, client *genai.Client, model, system, prompt string) (string, error) {
	m := client.GenerativeModel(model)
	m.SetTemperature(0.3)
	m.SetMaxOutputTokens(300)
	m.ResponseMIMEType = "application/json"
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	slog.DebugContext(ctx, "classifying content", "model", model, "length", len(prompt))
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty model response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String(), nil
}
