package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/matjarly/matjar/internal/models"
)

// tagPromptTemplate, the target schema, and the fence-stripping fallback in
// ExtractTags form one versioned unit: change any of them together and
// re-validate against the fixtures in tags_test.go.
const tagPromptTemplate = `You are an e-commerce domain analyst for the Libyan market.
Analyze the following product and respond with ONLY a JSON object, no prose,
no explanations, no Markdown code fences. The object must have exactly these keys:

"extracted_tags": an array of short lowercase strings covering the product's
style, occasion, material, and target audience.
"synonyms": an array of search terms a shopper might type for this product, in
Modern Standard Arabic, in English, and in Libyan colloquial dialect.
"category_suggestion": a single category name string.

Product title: %s
Product description: %s
Product specs: %s`

// TagExtractor derives structured metadata for a product from its raw text
// via an OpenAI-compatible chat completion endpoint.
type TagExtractor struct {
	client llms.Model
	log    *logrus.Logger
}

// NewTagExtractor creates a TagExtractor for the given OpenAI-compatible
// endpoint and model. Use "none" as the API key for local services that do
// not require authentication.
func NewTagExtractor(baseURL, model, apiKey string, log *logrus.Logger) (*TagExtractor, error) {
	client, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tag extraction client: %w", err)
	}

	return &TagExtractor{client: client, log: log}, nil
}

// NewTagExtractorWithModel creates a TagExtractor around an existing model,
// used by tests to inject a fake.
func NewTagExtractorWithModel(client llms.Model, log *logrus.Logger) *TagExtractor {
	return &TagExtractor{client: client, log: log}
}

// ExtractTags asks the model for tags, synonyms, and a category suggestion.
// A transport or upstream error is returned to the caller. A malformed
// response is not: parsing falls back to the empty metadata object, because
// the embedding is worth more than the tags and the run must go on.
func (e *TagExtractor) ExtractTags(ctx context.Context, title, description, specs string) (*models.ProductMetadata, error) {
	prompt := fmt.Sprintf(tagPromptTemplate, title, description, specs)

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		return nil, fmt.Errorf("calling tag extraction API: %w", err)
	}

	if len(response.Choices) < 1 {
		e.log.Warn("tag extraction returned no choices, using empty metadata")

		return models.EmptyMetadata(), nil
	}

	return e.parse(response.Choices[0].Content), nil
}

// parse decodes the model's response text, stripping Markdown fences the
// model sometimes adds despite instructions. On any decode failure it
// returns the safe default rather than an error.
func (e *TagExtractor) parse(text string) *models.ProductMetadata {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var meta models.ProductMetadata
	if err := json.Unmarshal([]byte(text), &meta); err != nil {
		e.log.WithError(err).WithField("response", truncate(text, 200)).
			Warn("unparseable tag extraction response, using empty metadata")

		return models.EmptyMetadata()
	}

	// Keys must serialize as [] rather than null.
	if meta.ExtractedTags == nil {
		meta.ExtractedTags = []string{}
	}

	if meta.Synonyms == nil {
		meta.Synonyms = []string{}
	}

	return &meta
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n] + "..."
}
