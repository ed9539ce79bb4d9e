package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/moneta-cli/moneta/internal/api"
	"github.com/moneta-cli/moneta/internal/credstore"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newManager builds a manager against the given handler with a temp
// credential store, optionally pre-seeded with a token.
func newManager(t *testing.T, handler http.Handler, seedToken string) (*Manager, *credstore.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	creds, err := credstore.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = creds.Close() })

	if seedToken != "" {
		if err := creds.Save(seedToken); err != nil {
			t.Fatal(err)
		}
	}

	client := api.New(srv.URL, testLogger())
	return NewManager(client, creds, testLogger()), creds
}

func profileHandler(wantToken string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+wantToken {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"not authorized"}`))
			return
		}
		_, _ = w.Write([]byte(`{"_id":"u1","name":"Ada","email":"ada@example.com"}`))
	})
}

func TestRestore_ValidToken(t *testing.T) {
	m, _ := newManager(t, profileHandler("good-token"), "good-token")

	m.Restore(context.Background())

	if !m.IsAuthenticated() {
		t.Fatal("expected authenticated session after restore with valid token")
	}
	user, ok := m.User()
	if !ok || user.Name != "Ada" {
		t.Fatalf("User = %+v ok=%v, want Ada", user, ok)
	}
	if m.Token() != "good-token" {
		t.Fatalf("Token = %q, want good-token", m.Token())
	}
}

func TestRestore_ExpiredTokenCleared(t *testing.T) {
	m, creds := newManager(t, profileHandler("other-token"), "expired-token")

	m.Restore(context.Background())

	if m.IsAuthenticated() {
		t.Fatal("expected unauthenticated session after failed restore")
	}
	token, err := creds.Token()
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		t.Fatalf("persisted token = %q, want cleared", token)
	}
}

func TestRestore_NoTokenNoNetworkCall(t *testing.T) {
	var calls atomic.Int32
	m, _ := newManager(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls.Add(1)
	}), "")

	m.Restore(context.Background())

	if m.IsAuthenticated() {
		t.Fatal("expected unauthenticated session")
	}
	if calls.Load() != 0 {
		t.Fatalf("restore without a stored token hit the network %d times", calls.Load())
	}
}

func TestLogin_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"_id":"u1","name":"Ada","email":"ada@example.com","token":"fresh-token"}`))
	})
	m, creds := newManager(t, mux, "")

	if err := m.Login(context.Background(), "ada@example.com", "pw"); err != nil {
		t.Fatal(err)
	}

	if !m.IsAuthenticated() {
		t.Fatal("expected authenticated session")
	}
	token, err := creds.Token()
	if err != nil {
		t.Fatal(err)
	}
	if token != "fresh-token" {
		t.Fatalf("persisted token = %q, want fresh-token", token)
	}
	if m.IsLoading() {
		t.Fatal("loading flag stuck after login")
	}
}

func TestLogin_FailureIsGeneric(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"user ada@example.com: bcrypt mismatch at auth.go:42"}`))
	}), "")

	err := m.Login(context.Background(), "ada@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	// Server internals must not leak through the session layer.
	var ae *api.Error
	if errors.As(err, &ae) {
		t.Fatal("session layer leaked the transport error")
	}
	if m.IsAuthenticated() {
		t.Fatal("expected unauthenticated session after failed login")
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/register", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"_id":"u2","name":"Grace","email":"g@example.com"},"token":"new-token"}`))
	})
	m, _ := newManager(t, mux, "")

	if err := m.Register(context.Background(), "Grace", "g@example.com", "pw"); err != nil {
		t.Fatal(err)
	}
	user, _ := m.User()
	if user.Name != "Grace" {
		t.Fatalf("User = %+v, want Grace", user)
	}
}

func TestRegister_FailureIsGeneric(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"duplicate key error collection users.email"}`))
	}), "")

	err := m.Register(context.Background(), "Grace", "g@example.com", "pw")
	if !errors.Is(err, ErrRegistrationFailed) {
		t.Fatalf("err = %v, want ErrRegistrationFailed", err)
	}
}

func TestLogout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"_id":"u1","name":"Ada","email":"a@b.c","token":"tok"}`))
	})
	m, creds := newManager(t, mux, "")

	if err := m.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatal(err)
	}
	m.Logout()

	if m.IsAuthenticated() {
		t.Fatal("expected unauthenticated session after logout")
	}
	if m.Token() != "" {
		t.Fatalf("Token = %q after logout", m.Token())
	}
	token, err := creds.Token()
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		t.Fatalf("persisted token = %q after logout, want cleared", token)
	}
}

func TestUpdateProfile_FailureKeepsPriorUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"_id":"u1","name":"Ada","email":"a@b.c","token":"tok"}`))
	})
	mux.HandleFunc("PUT /users/profile", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	m, _ := newManager(t, mux, "")

	if err := m.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatal(err)
	}

	name := "Renamed"
	err := m.UpdateProfile(context.Background(), api.ProfilePatch{Name: &name})
	if !errors.Is(err, ErrProfileUpdateFailed) {
		t.Fatalf("err = %v, want ErrProfileUpdateFailed", err)
	}
	user, _ := m.User()
	if user.Name != "Ada" {
		t.Fatalf("User.Name = %q, want prior value Ada", user.Name)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"_id":"u1","name":"Ada","email":"a@b.c","token":"tok"}`))
	})
	mux.HandleFunc("PUT /users/profile", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"_id":"u1","name":"Renamed","email":"a@b.c"}`))
	})
	m, _ := newManager(t, mux, "")

	if err := m.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatal(err)
	}

	name := "Renamed"
	if err := m.UpdateProfile(context.Background(), api.ProfilePatch{Name: &name}); err != nil {
		t.Fatal(err)
	}
	user, _ := m.User()
	if user.Name != "Renamed" {
		t.Fatalf("User.Name = %q, want Renamed", user.Name)
	}
}

// A single 401 on a data endpoint must not tear the session down — only an
// explicit logout or a failed restore does that.
func TestNo401AutoLogout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"_id":"u1","name":"Ada","email":"a@b.c","token":"tok"}`))
	})
	mux.HandleFunc("GET /budgets", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	creds, err := credstore.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = creds.Close() })

	client := api.New(srv.URL, testLogger())
	m := NewManager(client, creds, testLogger())

	if err := m.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatal(err)
	}

	_, err = client.ListBudgets(context.Background())
	if !api.IsKind(err, api.KindUnauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}

	if !m.IsAuthenticated() {
		t.Fatal("a single 401 silently logged the session out")
	}
	token, err := creds.Token()
	if err != nil {
		t.Fatal(err)
	}
	if token != "tok" {
		t.Fatalf("persisted token = %q, want untouched", token)
	}
}
