package catalog

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
	"golang.org/x/time/rate"
)

const (
	searchPath  = "/BooksTotal/Search/20170404"
	rankingPath = "/IchibaItem/Ranking/20220601"

	// requestTimeout bounds a single catalog API call.
	requestTimeout = 30 * time.Second

	// maxResponseBytes guards against a misbehaving upstream.
	maxResponseBytes = 4 << 20
)

// Client calls the external book-catalog API. All endpoints are
// unauthenticated GETs keyed by an application id. Calls are rate limited to
// stay inside the provider's per-second quota.
type Client struct {
	baseURL     string
	appID       string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	log         logger.Logger
}

// NewClient creates a new catalog client.
func NewClient(baseURL, appID string) *Client {
	return &Client{
		baseURL: baseURL,
		appID:   appID,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		// 1 request per second with a small burst, per the provider's
		// published limit.
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
		log:         logger.New(),
	}
}

// get performs one rate-limited API call and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return errors.WithStack(err)
	}

	params.Set("format", "json")
	params.Set("applicationId", c.appID)

	requestURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return errors.WithStack(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("catalog API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.WithStack(err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
