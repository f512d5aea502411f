package vocabsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/junyi/vocabflash/internal/logger"
	"github.com/junyi/vocabflash/internal/vocab"
)

// Client talks to a remote vocabulary source: an HTTP service exposing
// published word sets as JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Default().WithPrefix("vocabsource"),
	}
}

// SetInfo describes one published word set in the source's catalog.
type SetInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       string `json:"level"`
	WordCount   int    `json:"word_count"`
}

type listResp struct {
	Sets []SetInfo `json:"sets"`
}

func (c *Client) ListSets(ctx context.Context) ([]SetInfo, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabsource")
	url := fmt.Sprintf("%s/sets", c.baseURL)

	log.Debug("fetching set catalog from: %s", url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch set catalog: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("catalog response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("catalog request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("catalog status %d: %s", resp.StatusCode, string(body))
	}

	var out listResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode catalog response: %v", err)
		return nil, err
	}

	log.Info("fetched catalog with %d sets", len(out.Sets))
	return out.Sets, nil
}

// FetchSet downloads one word set. The payload uses the same layout as local
// JSON vocabulary files.
func (c *Client) FetchSet(ctx context.Context, setID string) (*vocab.Set, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabsource").WithField("set_id", setID)
	url := fmt.Sprintf("%s/sets/%s", c.baseURL, setID)

	log.Debug("fetching word set")
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch word set: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("set response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("word set %q not found", setID)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("set request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("set status %d: %s", resp.StatusCode, string(body))
	}

	var set vocab.Set
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		log.Error("failed to decode word set: %v", err)
		return nil, err
	}

	log.Info("fetched word set %q with %d words", set.Meta.Name, len(set.Words))
	return &set, nil
}
