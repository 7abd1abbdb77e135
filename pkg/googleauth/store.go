// Package googleauth owns the Google OAuth2 credential used by the
// calendar client: one token persisted on disk, refreshed transparently,
// re-acquired through interactive consent when the grant is revoked.
package googleauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"image-calendar-generator/pkg/log"
	"image-calendar-generator/pkg/retry"
)

// ErrReauthRequired means the stored grant is gone (never issued, or
// revoked by Google) and a human must run the interactive consent flow
// again. Automatic recovery is not possible.
var ErrReauthRequired = errors.New("google calendar authorization required: run the gcal-auth consent flow")

// Store holds the process-wide OAuth2 token. All access goes through
// the mutex; a refresh holds it for the duration of the refresh-and-
// persist step so concurrent callers wait for one refresh instead of
// racing their own.
type Store struct {
	mu            sync.Mutex
	conf          *oauth2.Config
	path          string
	tok           *oauth2.Token
	consent       ConsentProvider
	refreshPolicy retry.Policy
	l             log.Logger
}

// NewStore creates a credential store persisting to tokenPath. The
// retry policy governs transient refresh failures only; its Retryable
// predicate is replaced so revoked grants are never retried.
func NewStore(l log.Logger, conf *oauth2.Config, tokenPath string, consent ConsentProvider, pol retry.Policy) *Store {
	pol.Retryable = isTransientRefresh
	return &Store{
		conf:          conf,
		path:          tokenPath,
		consent:       consent,
		refreshPolicy: pol,
		l:             l,
	}
}

// Load reads the persisted token, if any. A missing file is not an
// error: the store simply starts unauthenticated.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("googleauth: reading token file: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return fmt.Errorf("googleauth: parsing token file %q: %w", s.path, err)
	}

	s.tok = &tok
	return nil
}

// Authorized reports whether the store holds a usable grant.
func (s *Store) Authorized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tok != nil && (s.tok.Valid() || s.tok.RefreshToken != "")
}

// BeginConsent runs the interactive consent flow and persists the
// resulting token.
func (s *Store) BeginConsent(ctx context.Context) error {
	tok, err := s.consent.Obtain(ctx, s.conf)
	if err != nil {
		return fmt.Errorf("googleauth: consent flow failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = tok
	return s.saveLocked()
}

// Token returns a valid access token, refreshing first if the stored
// one has expired. An expired token is never handed out. Revoked
// grants clear the store and surface ErrReauthRequired.
func (s *Store) Token(ctx context.Context) (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tok == nil {
		return nil, ErrReauthRequired
	}
	if s.tok.Valid() {
		tok := *s.tok
		return &tok, nil
	}
	if s.tok.RefreshToken == "" {
		s.clearLocked(ctx)
		return nil, fmt.Errorf("%w: stored token expired and has no refresh token", ErrReauthRequired)
	}

	src := s.conf.TokenSource(ctx, s.tok)

	var fresh *oauth2.Token
	err := s.refreshPolicy.Do(ctx, func(ctx context.Context) error {
		tok, tokErr := src.Token()
		if tokErr != nil {
			return tokErr
		}
		fresh = tok
		return nil
	})
	if err != nil {
		if isRevokedGrant(err) {
			s.l.Warnf(ctx, "googleauth: refresh grant revoked, interactive consent required: %v", err)
			s.clearLocked(ctx)
			return nil, fmt.Errorf("%w: %v", ErrReauthRequired, err)
		}
		return nil, fmt.Errorf("googleauth: token refresh failed: %w", err)
	}

	s.tok = fresh
	if err := s.saveLocked(); err != nil {
		return nil, err
	}

	tok := *s.tok
	return &tok, nil
}

// InvalidateAccessToken forces a refresh on the next Token call. Used
// after the calendar API rejects a request as unauthorized even though
// the token looked valid locally.
func (s *Store) InvalidateAccessToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tok != nil {
		s.tok.Expiry = time.Now().Add(-time.Minute)
	}
}

// TokenSource adapts the store to oauth2.TokenSource so the calendar
// service can pull tokens per request.
func (s *Store) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &storeTokenSource{ctx: ctx, store: s}
}

type storeTokenSource struct {
	ctx   context.Context
	store *Store
}

func (ts *storeTokenSource) Token() (*oauth2.Token, error) {
	return ts.store.Token(ts.ctx)
}

// saveLocked writes the token atomically (tmp file + rename) with
// owner-only permissions. Callers hold s.mu.
func (s *Store) saveLocked() error {
	data, err := json.Marshal(s.tok)
	if err != nil {
		return fmt.Errorf("googleauth: encoding token: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("googleauth: creating token dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("googleauth: writing token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("googleauth: replacing token file: %w", err)
	}
	return nil
}

// clearLocked drops the grant from memory and disk together so the two
// never disagree. Callers hold s.mu.
func (s *Store) clearLocked(ctx context.Context) {
	s.tok = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.l.Warnf(ctx, "googleauth: removing stale token file: %v", err)
	}
}

// isRevokedGrant reports whether the refresh failed because the user's
// consent no longer exists (revoked or expired refresh token).
func isRevokedGrant(err error) bool {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) {
		return false
	}
	if re.ErrorCode == "invalid_grant" {
		return true
	}
	if re.Response != nil {
		code := re.Response.StatusCode
		return code == 400 || code == 401
	}
	return false
}

// isTransientRefresh qualifies errors for another refresh attempt:
// provider 5xx and transport failures, never 4xx rejections.
func isTransientRefresh(err error) bool {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		return re.Response != nil && re.Response.StatusCode >= 500
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return true
}
