// Package session holds the per-run state shared by search and item
// resolution: the catalog credential and its observed health, the search
// history, and the favorites list consulted by the UI layer.
package session

import (
	"strings"
	"sync"
)

// historyCap bounds the search history to the most recent unique queries.
const historyCap = 10

// Session is safe for concurrent use. Exactly one instance exists per run;
// a confirmed credential failure marks it expired for the rest of the run.
type Session struct {
	mu        sync.RWMutex
	apiKey    string
	expired   bool
	history   []string
	favorites []string
}

// New creates a session for the given catalog credential.
// An empty key means remote calls are never attempted.
func New(apiKey string) *Session {
	return &Session{apiKey: strings.TrimSpace(apiKey)}
}

// APIKey returns the configured catalog credential.
func (s *Session) APIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiKey
}

// HasCredential reports whether a non-empty credential is configured.
func (s *Session) HasCredential() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiKey != ""
}

// Expired reports whether the credential has been confirmed invalid or expired.
func (s *Session) Expired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expired
}

// MarkExpired records a confirmed credential failure. The flag is never
// cleared within a session; every later fetch skips the remote call.
func (s *Session) MarkExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired = true
}

// Usable reports whether a remote catalog call is worth attempting:
// a credential exists and has not been confirmed expired.
func (s *Session) Usable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiKey != "" && !s.expired
}

// RecordSearch prepends a query to the search history. Queries are
// de-duplicated and the history keeps the most recent entries only.
func (s *Session) RecordSearch(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]string, 0, len(s.history)+1)
	filtered = append(filtered, query)
	for _, q := range s.history {
		if !strings.EqualFold(q, query) {
			filtered = append(filtered, q)
		}
	}
	if len(filtered) > historyCap {
		filtered = filtered[:historyCap]
	}
	s.history = filtered
}

// History returns the search history, most recent first.
func (s *Session) History() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// ToggleFavorite adds or removes a title from the favorites list and
// reports whether the title is a favorite afterwards. Favorites are keyed
// by title, matching the behaviour the UI layer expects.
func (s *Session) ToggleFavorite(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, fav := range s.favorites {
		if fav == title {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			return false
		}
	}
	s.favorites = append(s.favorites, title)
	return true
}

// IsFavorite reports whether a title is currently in the favorites list.
func (s *Session) IsFavorite(title string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, fav := range s.favorites {
		if fav == title {
			return true
		}
	}
	return false
}

// Favorites returns the favorite titles in insertion order.
func (s *Session) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.favorites))
	copy(out, s.favorites)
	return out
}
