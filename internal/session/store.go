// ABOUTME: In-memory access token store for the console session
// ABOUTME: The token is never written to disk; only the refresh cookie persists

package session

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// legacySnapshotFile is the identity cache written by older console builds.
// It is only ever deleted; identity is now always derived from the token.
const legacySnapshotFile = "identity.json"

// Store holds the current access token for the lifetime of the process.
// It is the single owner of the credential; other components read it
// through AccessToken and must not cache copies.
type Store struct {
	mu          sync.Mutex
	accessToken string
	configDir   string
}

// NewStore creates an empty store. configDir may be empty; it is only used
// to locate the legacy identity snapshot deleted on Clear.
func NewStore(configDir string) *Store {
	return &Store{configDir: configDir}
}

// SetAccessToken replaces the held token unconditionally.
func (s *Store) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

// AccessToken returns the current token, or "" when none is held.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// Clear drops the held token and removes any legacy identity snapshot.
// Server-side session invalidation is the client's job (Logout); local
// state is cleared regardless of whether that call succeeds.
func (s *Store) Clear() {
	s.mu.Lock()
	s.accessToken = ""
	configDir := s.configDir
	s.mu.Unlock()

	if configDir == "" {
		return
	}
	path := filepath.Join(configDir, legacySnapshotFile)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Debug("could not remove legacy identity snapshot", "path", path, "error", err)
	}
}
