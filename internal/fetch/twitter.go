package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jonesrussell/opinion-pulse/internal/domain"
	"github.com/jonesrussell/opinion-pulse/internal/logging"
)

// ErrUnavailable indicates the post API could not be reached or refused the
// request (for example, rate limiting).
var ErrUnavailable = errors.New("post API unavailable")

const (
	// The recent-search endpoint accepts 10..100 results per request.
	minPageSize = 10
	maxPageSize = 100

	defaultBaseURL = "https://api.twitter.com"
	defaultTimeout = 15 * time.Second
)

// TwitterClient fetches recent posts from a Twitter-v2-style search API.
// It throttles itself client-side; retry and pagination policy belong to
// the caller's environment, not here.
type TwitterClient struct {
	baseURL      string
	bearerToken  string
	opinionTerms []string
	language     string
	httpClient   *http.Client
	limiter      *rate.Limiter
	logger       logging.Logger
}

// TwitterConfig holds client settings.
type TwitterConfig struct {
	BaseURL      string
	BearerToken  string
	OpinionTerms []string
	Language     string
	RPS          int
	Burst        int
}

// NewTwitterClient creates a client for the recent-search endpoint.
func NewTwitterClient(cfg TwitterConfig, logger logging.Logger) *TwitterClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	rps := cfg.RPS
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = rps
	}

	return &TwitterClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		bearerToken:  cfg.BearerToken,
		opinionTerms: cfg.OpinionTerms,
		language:     cfg.Language,
		httpClient:   &http.Client{Timeout: defaultTimeout},
		limiter:      rate.NewLimiter(rate.Limit(rps), burst),
		logger:       logger,
	}
}

type searchResponse struct {
	Data []struct {
		ID               string    `json:"id"`
		Text             string    `json:"text"`
		Lang             string    `json:"lang"`
		CreatedAt        time.Time `json:"created_at"`
		ReferencedTweets []struct {
			Type string `json:"type"`
			ID   string `json:"id"`
		} `json:"referenced_tweets"`
	} `json:"data"`
	Meta struct {
		ResultCount int `json:"result_count"`
	} `json:"meta"`
}

// FetchRecent returns up to limit recent posts mentioning the subject. The
// returned batch may be smaller than requested.
func (c *TwitterClient) FetchRecent(ctx context.Context, subject string, limit int) ([]domain.RawPost, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	pageSize := limit
	if pageSize < minPageSize {
		pageSize = minPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	params := url.Values{}
	params.Set("query", c.buildQuery(subject))
	params.Set("max_results", strconv.Itoa(pageSize))
	params.Set("tweet.fields", "created_at,lang,referenced_tweets")

	endpoint := c.baseURL + "/2/tweets/search/recent?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	posts := make([]domain.RawPost, 0, len(search.Data))
	for _, tweet := range search.Data {
		if len(posts) >= limit {
			break
		}
		// Retweets are detectable from referenced-tweet metadata and,
		// for legacy clients, the "RT @" text prefix.
		retweet := strings.HasPrefix(tweet.Text, "RT @")
		for _, ref := range tweet.ReferencedTweets {
			if ref.Type == "retweeted" {
				retweet = true
			}
		}

		posts = append(posts, domain.RawPost{
			ID:        tweet.ID,
			Text:      tweet.Text,
			Language:  tweet.Lang,
			IsRetweet: retweet,
			CreatedAt: tweet.CreatedAt,
		})
	}

	c.logger.Debug("Fetched recent posts",
		logging.String("subject", subject),
		logging.Int("requested", limit),
		logging.Int("returned", len(posts)),
	)

	return posts, nil
}

// buildQuery biases the search toward opinion posts: exact subject phrase,
// opinion-term disjunction, no retweets, target language only.
func (c *TwitterClient) buildQuery(subject string) string {
	var sb strings.Builder
	sb.WriteString(`"` + subject + `"`)

	if len(c.opinionTerms) > 0 {
		sb.WriteString(" (" + strings.Join(c.opinionTerms, " OR ") + ")")
	}
	sb.WriteString(" -is:retweet")
	if c.language != "" {
		sb.WriteString(" lang:" + c.language)
	}
	return sb.String()
}
