package credstore

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestTokenRoundTrip(t *testing.T) {
	s := openTestStore(t)

	token, err := s.Token()
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		t.Fatalf("fresh store returned token %q, want empty", token)
	}

	if err := s.Save("tok-abc"); err != nil {
		t.Fatal(err)
	}
	token, err = s.Token()
	if err != nil {
		t.Fatal(err)
	}
	if token != "tok-abc" {
		t.Fatalf("Token = %q, want tok-abc", token)
	}
}

func TestSaveReplaces(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save("first"); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("second"); err != nil {
		t.Fatal(err)
	}

	token, err := s.Token()
	if err != nil {
		t.Fatal(err)
	}
	if token != "second" {
		t.Fatalf("Token = %q, want second", token)
	}
}

func TestClear(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save("tok"); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	token, err := s.Token()
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		t.Fatalf("Token after Clear = %q, want empty", token)
	}

	// Clearing an empty store is fine too
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
}
