// ABOUTME: Tests for the access token store
// ABOUTME: Covers set/get/clear semantics and legacy snapshot removal

package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetAndGetAccessToken(t *testing.T) {
	s := NewStore("")

	if got := s.AccessToken(); got != "" {
		t.Errorf("expected empty token initially, got %q", got)
	}

	s.SetAccessToken("T1")
	if got := s.AccessToken(); got != "T1" {
		t.Errorf("expected T1, got %q", got)
	}

	s.SetAccessToken("T2")
	if got := s.AccessToken(); got != "T2" {
		t.Errorf("expected T2 after overwrite, got %q", got)
	}
}

func TestClearDropsToken(t *testing.T) {
	s := NewStore("")
	s.SetAccessToken("T1")

	s.Clear()
	if got := s.AccessToken(); got != "" {
		t.Errorf("expected empty token after Clear, got %q", got)
	}
}

func TestClearRemovesLegacySnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, legacySnapshotFile)
	if err := os.WriteFile(path, []byte(`{"username":"stale"}`), 0600); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}

	s := NewStore(dir)
	s.SetAccessToken("T1")
	s.Clear()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected legacy snapshot removed, stat err = %v", err)
	}
}

func TestClearWithoutSnapshotIsQuiet(t *testing.T) {
	s := NewStore(t.TempDir())
	s.Clear() // must not panic or error on a missing file
	if got := s.AccessToken(); got != "" {
		t.Errorf("expected empty token, got %q", got)
	}
}
