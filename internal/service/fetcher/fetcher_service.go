package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ougirez/coviddash/internal/pkg/constants"
	"github.com/ougirez/coviddash/internal/pkg/logger"
)

const retryInterval = 500 * time.Millisecond

// Service retrieves the raw source csv. One network attempt against the
// configured url; on failure the local cache file is the fallback. Both
// failing is fatal for the caller.
type Service struct {
	client    *http.Client
	url       string
	cachePath string
}

func NewFetcherService(url, cachePath string, timeout time.Duration) *Service {
	return &Service{
		client:    &http.Client{Timeout: timeout},
		url:       url,
		cachePath: cachePath,
	}
}

// Fetch does a single network attempt before falling back to the cache.
// There is no retry here: the fallback is the retry strategy.
func (s *Service) Fetch(ctx context.Context) ([]byte, error) {
	raw, err := s.fetchRemote(ctx)
	if err == nil {
		s.writeCache(ctx, raw)
		return raw, nil
	}

	return s.fallback(ctx, err)
}

// FetchWithRetry is the reload variant: an operator asked for fresh data
// explicitly, so transient network blips get a few constant-interval
// retries before the same cache fallback.
func (s *Service) FetchWithRetry(ctx context.Context, maxRetries uint64) ([]byte, error) {
	var raw []byte
	err := backoff.Retry(
		func() error {
			var fetchErr error
			raw, fetchErr = s.fetchRemote(ctx)
			return fetchErr
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(retryInterval), maxRetries),
			ctx,
		),
	)
	if err == nil {
		s.writeCache(ctx, raw)
		return raw, nil
	}

	return s.fallback(ctx, err)
}

func (s *Service) fetchRemote(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get source: %w", err)
	}
	defer func() {
		err = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read source body: %w", err)
	}

	return raw, nil
}

func (s *Service) fallback(ctx context.Context, fetchErr error) ([]byte, error) {
	logger.Warnf(ctx, "remote fetch failed, falling back to cache %s: %s", s.cachePath, fetchErr.Error())

	raw, cacheErr := os.ReadFile(s.cachePath)
	if cacheErr != nil {
		logger.Errorf(ctx, "cache fallback failed: %s", cacheErr.Error())
		return nil, fmt.Errorf("fetch: %s; cache: %s: %w", fetchErr, cacheErr, constants.ErrDataUnavailable)
	}

	logger.Infof(ctx, "loaded %d cached bytes from %s", len(raw), s.cachePath)
	return raw, nil
}

// writeCache is best effort: a failed write is logged, never fatal.
func (s *Service) writeCache(ctx context.Context, raw []byte) {
	if dir := filepath.Dir(s.cachePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Errorf(ctx, "failed to create cache dir %s: %s", dir, err.Error())
			return
		}
	}

	if err := os.WriteFile(s.cachePath, raw, 0o644); err != nil {
		logger.Errorf(ctx, "failed to write cache %s: %s", s.cachePath, err.Error())
		return
	}

	logger.Infof(ctx, "cached %d bytes to %s", len(raw), s.cachePath)
}
