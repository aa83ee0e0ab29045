package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"supply-sentinel/internal/cache"
	"supply-sentinel/internal/models"
	"supply-sentinel/pkg/utils"
)

// NewsAgentConfig holds the news collector's settings.
type NewsAgentConfig struct {
	APIKey   string // newsdata.io key
	Endpoint string
	Language string
	CacheTTL time.Duration
}

// NewsAgent fetches recent news for a risk topic and classifies it with
// an LLM into a structured risk signal. Every failure mode is folded
// into the signal's error variant; Collect never returns nil.
type NewsAgent struct {
	cfg        NewsAgentConfig
	httpClient *http.Client
	newsCache  cache.NewsCache
	llmFor     LLMFactory
	logger     zerolog.Logger
}

// NewNewsAgent creates a new news risk agent.
func NewNewsAgent(cfg NewsAgentConfig, newsCache cache.NewsCache, llmFor LLMFactory, logger zerolog.Logger) *NewsAgent {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://newsdata.io/api/1/latest"
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if newsCache == nil {
		newsCache = cache.NopCache{}
	}
	return &NewsAgent{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		newsCache:  newsCache,
		llmFor:     llmFor,
		logger:     logger,
	}
}

// Collect fetches and classifies news for the topic and country.
// Successful results are cached by (topic, country); error variants are
// not cached so transient failures retry on the next run.
func (a *NewsAgent) Collect(ctx context.Context, topic, countryCode string, creds Credentials) *models.NewsRiskSignal {
	key := cache.Key(topic, countryCode)

	if cached, ok := a.newsCache.Get(ctx, key); ok {
		var signal models.NewsRiskSignal
		if err := json.Unmarshal([]byte(cached), &signal); err == nil {
			a.logger.Debug().Str("key", key).Msg("News cache hit")
			return &signal
		}
		a.logger.Warn().Str("key", key).Msg("Discarding malformed cache entry")
	}

	articlesText, errSignal := a.fetchArticles(ctx, topic, countryCode)
	if errSignal != nil {
		return errSignal
	}

	signal := a.classify(ctx, articlesText, creds)
	if !signal.Failed() {
		if payload, err := json.Marshal(signal); err == nil {
			a.newsCache.Set(ctx, key, string(payload), a.cfg.CacheTTL)
		}
	}
	return signal
}

// newsdataResponse is the envelope returned by the newsdata.io API.
// Results is an article list on success and an error object otherwise.
type newsdataResponse struct {
	Status       string          `json:"status"`
	TotalResults int             `json:"totalResults"`
	Results      json.RawMessage `json:"results"`
}

type newsdataArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type newsdataError struct {
	Message string `json:"message"`
}

// fetchArticles queries the news API and joins titles and descriptions
// into a single block of text. Failures come back as an error-variant
// signal instead of a Go error.
func (a *NewsAgent) fetchArticles(ctx context.Context, topic, countryCode string) (string, *models.NewsRiskSignal) {
	query := url.Values{}
	query.Set("apikey", a.cfg.APIKey)
	query.Set("q", topic)
	query.Set("country", countryCode)
	query.Set("language", a.cfg.Language)
	endpoint := a.cfg.Endpoint + "?" + query.Encode()

	start := time.Now()
	body, err := utils.RetryWithResult(ctx, utils.DefaultRetryConfig(), func() ([]byte, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if reqErr != nil {
			return nil, reqErr
		}
		resp, respErr := a.httpClient.Do(req)
		if respErr != nil {
			return nil, respErr
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("news api returned %d", resp.StatusCode)
		}
		return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	})
	a.logger.Debug().Dur("duration", time.Since(start)).Str("topic", topic).Str("country", countryCode).Msg("News API call")
	if err != nil {
		return "", models.NewsError(fmt.Sprintf("An API exception occurred: %v", err))
	}

	var envelope newsdataResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", models.NewsError(fmt.Sprintf("An API exception occurred: %v", err))
	}

	if envelope.Status != "success" {
		apiMsg := "Unknown API Error"
		var apiErr newsdataError
		if err := json.Unmarshal(envelope.Results, &apiErr); err == nil && apiErr.Message != "" {
			apiMsg = apiErr.Message
		}
		return "", models.NewsError(fmt.Sprintf("API Error: %s", apiMsg))
	}

	var articles []newsdataArticle
	if err := json.Unmarshal(envelope.Results, &articles); err != nil {
		return "", models.NewsError(fmt.Sprintf("An API exception occurred: %v", err))
	}
	if len(articles) == 0 {
		return "", models.NewsError("No news found for the given criteria.")
	}

	a.logger.Debug().Int("articles", len(articles)).Msg("Found relevant articles")

	parts := make([]string, 0, len(articles))
	for _, article := range articles {
		parts = append(parts, strings.TrimSpace(article.Title+". "+article.Description))
	}
	return strings.Join(parts, " "), nil
}

// llmRiskPayload is the JSON object the model is asked to return.
type llmRiskPayload struct {
	Summary      string   `json:"summary"`
	RiskCategory string   `json:"risk_category"`
	KeyEntities  []string `json:"key_entities"`
}

const classifyPrompt = `Read the following news articles.
First, in a <think> block, reason about the content. Identify the main topic, potential risks, and key entities.
Then, based on your thinking, provide the final structured JSON object inside a <response> block.

The JSON object must have exactly three keys: "summary", "risk_category", and "key_entities".
- "summary": A one-paragraph summary of the key events.
- "risk_category": Classify the main risk type. Choose ONLY one from: 'Logistics', 'Financial', 'Geopolitical', 'Cybersecurity', 'Natural Disaster', or 'Other'.
- "key_entities": A list of up to 3 important company names, locations, or organizations mentioned.

News Articles to analyze: %q`

// classify asks the LLM for a structured risk classification of the
// article text.
func (a *NewsAgent) classify(ctx context.Context, articlesText string, creds Credentials) *models.NewsRiskSignal {
	if a.llmFor == nil {
		return models.NewsError("No model client configured.")
	}

	llm := a.llmFor(creds)
	generated, err := llm.Complete(ctx, fmt.Sprintf(classifyPrompt, articlesText))
	if err != nil {
		return models.NewsError(fmt.Sprintf("Error connecting to the model service: %v", err))
	}

	jsonText, ok := extractResponseBlock(generated)
	if !ok {
		return models.NewsError("AI did not return a valid <response> block.")
	}

	var payload llmRiskPayload
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		return models.NewsError(fmt.Sprintf("Failed to parse JSON from AI response: %v", err))
	}

	entities := payload.KeyEntities
	if len(entities) > 3 {
		entities = entities[:3]
	}

	return &models.NewsRiskSignal{
		Summary:  payload.Summary,
		Category: models.NormalizeCategory(payload.RiskCategory),
		Entities: entities,
	}
}

// extractResponseBlock pulls the JSON out of a <response>...</response>
// block, tolerating a fenced code block around it.
func extractResponseBlock(text string) (string, bool) {
	const startTag, endTag = "<response>", "</response>"

	start := strings.Index(text, startTag)
	end := strings.Index(text, endTag)
	if start == -1 || end == -1 || end < start {
		return "", false
	}

	content := strings.TrimSpace(text[start+len(startTag) : end])
	content = strings.Trim(content, "`")
	content = strings.TrimPrefix(content, "json")
	return strings.TrimSpace(content), content != ""
}
