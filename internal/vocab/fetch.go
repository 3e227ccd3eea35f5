package vocab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/MikeO7/rdflabel/pkg/log"
)

// DefaultLOVURL lists every vocabulary known to Linked Open Vocabularies
const DefaultLOVURL = "https://lov.linkeddata.es/dataset/lov/api/v2/vocabulary/list"

// Fetcher downloads vocabulary entries from a LOV compatible endpoint
type Fetcher struct {
	URL        string
	Client     *http.Client
	Timeout    time.Duration // per attempt
	MaxRetries uint64

	// InitialInterval is the first backoff delay, defaults to 500ms
	InitialInterval time.Duration
}

// lovVocabulary is one element of the LOV list response
type lovVocabulary struct {
	Prefix    string `json:"prefix"`
	Namespace string `json:"nsp"`
	URI       string `json:"uri"`
}

// Fetch retrieves the catalog, retrying transport errors and 5xx responses
// with exponential backoff. 4xx responses and undecodable bodies fail
// immediately.
func (f *Fetcher) Fetch(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	attempt := 0

	operation := func() error {
		attempt++
		var err error
		entries, err = f.fetchOnce(ctx)
		if err != nil {
			log.WithFields(map[string]interface{}{
				"url":     f.Endpoint(),
				"attempt": attempt,
			}).Debug().Err(err).Msg("Vocabulary fetch attempt failed")
		}
		return err
	}

	if err := backoff.Retry(operation, f.retryPolicy(ctx)); err != nil {
		return nil, fmt.Errorf("failed to fetch vocabulary list after %d attempt(s): %w", attempt, err)
	}
	return entries, nil
}

func (f *Fetcher) retryPolicy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	if f.InitialInterval > 0 {
		b.InitialInterval = f.InitialInterval
	}
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, f.MaxRetries), ctx)
}

// Endpoint returns the URL the catalog is fetched from
func (f *Fetcher) Endpoint() string {
	if f.URL == "" {
		return DefaultLOVURL
	}
	return f.URL
}

func (f *Fetcher) fetchOnce(ctx context.Context) ([]Entry, error) {
	url := f.Endpoint()
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("unexpected status from %s: %s", url, resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("unexpected status from %s: %s", url, resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var vocabularies []lovVocabulary
	if err := json.Unmarshal(body, &vocabularies); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to decode vocabulary list: %w", err))
	}

	entries := make([]Entry, 0, len(vocabularies))
	for _, v := range vocabularies {
		entries = append(entries, Entry{Prefix: v.Prefix, Namespace: v.Namespace})
	}
	return entries, nil
}
