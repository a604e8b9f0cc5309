// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package pathfinder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/AleutianAI/WikiTrail/pkg/logging"
)

const (
	// DefaultWikipediaAPIURL is the MediaWiki query endpoint.
	DefaultWikipediaAPIURL = "https://en.wikipedia.org/w/api.php"

	// DefaultHTTPTimeout bounds a single HTTP exchange.
	DefaultHTTPTimeout = 30 * time.Second
)

// LinkSource retrieves the outgoing links of one article.
//
// Implementations must return titles deduplicated in first-seen order with
// non-content namespaces removed, and must be safe for concurrent use.
type LinkSource interface {
	// Links returns the outgoing links of the article with the given title.
	//
	// Errors:
	//   - ErrFetchFailed: non-success, non-throttling response or
	//     unparseable body (not retried)
	//   - ErrMaxRetriesExceeded: throttling persisted past the retry ceiling
	Links(ctx context.Context, title string) ([]string, error)
}

// WikipediaSource is a LinkSource backed by the MediaWiki
// action=query&prop=links API.
//
// Every individual HTTP exchange (each retry attempt, each pagination
// page) holds one permit from the pool for its duration, so concurrent
// fetches for different articles interleave under one global bound. An
// optional politeness limiter spaces exchanges out in front of the pool.
//
// Thread Safety: Safe for concurrent use.
type WikipediaSource struct {
	apiURL     string
	httpClient *http.Client
	permits    *PermitPool
	limiter    *rate.Limiter
	retry      RetryConfig
	logger     *logging.Logger
}

// SourceOption configures a WikipediaSource.
type SourceOption func(*WikipediaSource)

// WithAPIURL points the source at a different MediaWiki endpoint.
// Used by tests and non-English wikis.
func WithAPIURL(apiURL string) SourceOption {
	return func(s *WikipediaSource) {
		if apiURL != "" {
			s.apiURL = apiURL
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) SourceOption {
	return func(s *WikipediaSource) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithFetchConcurrency sets the permit pool size K.
func WithFetchConcurrency(k int) SourceOption {
	return func(s *WikipediaSource) {
		if k > 0 {
			s.permits = NewPermitPool(k)
		}
	}
}

// WithRetryConfig replaces the throttle-recovery tunables.
func WithRetryConfig(config RetryConfig) SourceOption {
	return func(s *WikipediaSource) {
		if config.Validate() == nil {
			s.retry = config
		}
	}
}

// WithRequestRate caps exchanges at rps requests per second in front of
// the permit pool. Zero or negative disables the cap.
func WithRequestRate(rps float64) SourceOption {
	return func(s *WikipediaSource) {
		if rps > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			s.limiter = nil
		}
	}
}

// NewWikipediaSource creates a link source against the live Wikipedia API
// with the default permit pool (K=5) and retry ceiling (5 attempts).
func NewWikipediaSource(logger *logging.Logger, opts ...SourceOption) *WikipediaSource {
	if logger == nil {
		logger = logging.Default()
	}
	s := &WikipediaSource{
		apiURL:     DefaultWikipediaAPIURL,
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
		permits:    NewPermitPool(DefaultFetchConcurrency),
		retry:      DefaultRetryConfig(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// linkQueryResponse mirrors the MediaWiki prop=links reply.
type linkQueryResponse struct {
	Continue map[string]string `json:"continue"`
	Query    struct {
		Pages map[string]struct {
			Title string `json:"title"`
			Links []struct {
				Title string `json:"title"`
			} `json:"links"`
		} `json:"pages"`
	} `json:"query"`
}

// Links implements LinkSource.
//
// It pages through the API carrying forward every continuation parameter
// the server returns until none is present, accumulating titles
// deduplicated in first-seen order, then strips reserved namespaces.
func (s *WikipediaSource) Links(ctx context.Context, title string) ([]string, error) {
	if ctx == nil {
		return nil, ErrInvalidInput
	}
	if title == "" {
		return nil, fmt.Errorf("%w: title is empty", ErrInvalidInput)
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("titles", title)
	params.Set("prop", "links")
	params.Set("pllimit", "max")

	seen := make(map[string]struct{})
	var links []string

	for page := 1; ; page++ {
		reply, err := s.fetchPage(ctx, title, params)
		if err != nil {
			return nil, err
		}
		recordPageFetched(ctx)

		for _, p := range reply.Query.Pages {
			for _, link := range p.Links {
				if _, dup := seen[link.Title]; dup {
					continue
				}
				seen[link.Title] = struct{}{}
				links = append(links, link.Title)
			}
		}

		if len(reply.Continue) == 0 {
			s.logger.Debug("link pagination exhausted",
				"title", title, "pages", page, "raw_links", len(links))
			break
		}
		for key, value := range reply.Continue {
			params.Set(key, value)
		}
	}

	return filterReserved(links), nil
}

// fetchPage performs one logical exchange with throttle recovery. Each
// attempt waits on the politeness limiter, then holds a permit for the
// duration of the HTTP round trip only; backoff sleeps happen with no
// permit held.
func (s *WikipediaSource) fetchPage(ctx context.Context, title string, params url.Values) (*linkQueryResponse, error) {
	var reply linkQueryResponse

	err := retryThrottled(ctx, s.retry, func(ctx context.Context, attempt int) error {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		if err := s.permits.Acquire(ctx); err != nil {
			return err
		}
		defer s.permits.Release()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"?"+params.Encode(), nil)
		if err != nil {
			return fmt.Errorf("%w: create request: %v", ErrFetchFailed, err)
		}

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: http request: %v", ErrFetchFailed, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			recordThrottle(ctx)
			s.logger.Warn("link source throttled",
				"title", title, "attempt", attempt, "max_attempts", s.retry.MaxAttempts)
			return fmt.Errorf("%w: status 429", ErrThrottled)
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("%w: status %d: %s", ErrFetchFailed, resp.StatusCode, string(body))
		}

		reply = linkQueryResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
			return fmt.Errorf("%w: decode response for %q: %v", ErrFetchFailed, title, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reply, nil
}
