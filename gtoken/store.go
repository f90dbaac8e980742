package gtoken

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultHost is the page the secret is scraped from when none is given.
const DefaultHost = "translate.google.com"

// PageFetcher downloads the landing page of a translation host.
type PageFetcher interface {
	FetchPage(ctx context.Context, host string) (string, error)
}

// FetcherFunc adapts a plain function to PageFetcher.
type FetcherFunc func(ctx context.Context, host string) (string, error)

// FetchPage calls f.
func (f FetcherFunc) FetchPage(ctx context.Context, host string) (string, error) {
	return f(ctx, host)
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger routes refresh failures reported by Token to fn.
func WithLogger(fn func(format string, args ...any)) StoreOption {
	return func(s *Store) { s.onLog = fn }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithInitialSecret seeds the store, e.g. from a value cached elsewhere.
func WithInitialSecret(secret Secret) StoreOption {
	return func(s *Store) { s.secret = secret }
}

// Store owns the rotating secret of one host. The secret is refreshed at
// most once per hour bucket; concurrent callers that find it stale share a
// single in-flight page fetch.
type Store struct {
	fetcher PageFetcher
	host    string
	now     func() time.Time
	onLog   func(format string, args ...any)

	mu     sync.RWMutex
	secret Secret

	group singleflight.Group
}

// NewStore returns a Store holding the zero secret.
func NewStore(fetcher PageFetcher, host string, opts ...StoreOption) *Store {
	if host == "" {
		host = DefaultHost
	}
	s := &Store{
		fetcher: fetcher,
		host:    host,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Secret returns the current secret.
func (s *Store) Secret() Secret {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.secret
}

// Host returns the host the secret is scraped from.
func (s *Store) Host() string {
	return s.host
}

// Refresh makes sure the secret belongs to the hour bucket of now. It is a
// no-op when it already does. On failure the stale secret stays in place
// and the returned error wraps ErrSecretFetch; callers may keep going with
// the stale value.
func (s *Store) Refresh(ctx context.Context, now time.Time) error {
	bucket := HourBucket(now)
	if s.Secret().Epoch == bucket {
		return nil
	}

	_, err, _ := s.group.Do(strconv.FormatInt(bucket, 10), func() (any, error) {
		// another flight may have finished while we were queued
		if s.Secret().Epoch == bucket {
			return nil, nil
		}
		secret, err := s.fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.secret = secret
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

func (s *Store) fetch(ctx context.Context) (Secret, error) {
	if s.fetcher == nil {
		return Secret{}, fmt.Errorf("%w: no page fetcher", ErrSecretFetch)
	}
	page, err := s.fetcher.FetchPage(ctx, s.host)
	if err != nil {
		return Secret{}, fmt.Errorf("%w: fetching %s: %w", ErrSecretFetch, s.host, err)
	}
	raw, ok := ExtractTKK(page)
	if !ok {
		return Secret{}, fmt.Errorf("%w: %w on %s", ErrSecretFetch, ErrNoTKK, s.host)
	}
	secret, err := EvalTKK(raw)
	if err != nil {
		return Secret{}, fmt.Errorf("%w: %w", ErrSecretFetch, err)
	}
	return secret, nil
}

// Token refreshes the secret if needed and derives the token for text.
// A failed refresh is logged, not returned: the stale (possibly zero)
// secret is used instead.
func (s *Store) Token(ctx context.Context, text string) string {
	if err := s.Refresh(ctx, s.now()); err != nil && s.onLog != nil {
		s.onLog("token: using stale secret %s: %v", s.Secret(), err)
	}
	return Generate(s.Secret().String(), text)
}
