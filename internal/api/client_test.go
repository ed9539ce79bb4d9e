package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(srv.URL, testLogger()), srv
}

func TestDo_StatusClassification(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{401, KindUnauthorized},
		{403, KindForbidden},
		{404, KindNotFound},
		{422, KindServerError},
		{500, KindServerError},
	}

	for _, tc := range tests {
		c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(`{"message":"nope"}`))
		}))

		_, err := c.Profile(context.Background())
		srv.Close()

		if err == nil {
			t.Fatalf("status %d: expected error", tc.status)
		}
		if !IsKind(err, tc.want) {
			t.Errorf("status %d classified as %v, want %s", tc.status, err, tc.want)
		}
	}
}

func TestDo_ServerMessagePassedVerbatim(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Email already in use"}`))
	}))
	defer srv.Close()

	_, _, err := c.Register(context.Background(), "a", "a@b.c", "pw")
	if err == nil {
		t.Fatal("expected error")
	}
	var ae *Error
	if !errors.As(err, &ae) {
		t.Fatalf("error %T is not *Error", err)
	}
	if ae.Message != "Email already in use" {
		t.Errorf("Message = %q, want server wording untouched", ae.Message)
	}
}

func TestDo_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(srv.URL, testLogger())
	_, err := c.ListBudgets(context.Background())
	if !IsKind(err, KindNetworkError) {
		t.Fatalf("error %v, want %s", err, KindNetworkError)
	}
}

func TestSetAuthToken_AttachAndDetach(t *testing.T) {
	var gotAuth string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := c.ListTransactions(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "" {
		t.Errorf("unauthenticated request carried Authorization %q", gotAuth)
	}

	c.SetAuthToken("tok-123")
	if _, err := c.ListTransactions(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}

	c.SetAuthToken("")
	if _, err := c.ListTransactions(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "" {
		t.Errorf("detached client still sent Authorization %q", gotAuth)
	}
}

func TestListBudgets_LimitAmountAliasing(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"_id":"b1","category":"food","limit":300,"spent":120,"period":"monthly"},
			{"_id":"b2","category":"rent","amount":900,"period":"monthly"},
			{"_id":"b3","category":"misc","period":"monthly"}
		]`))
	}))
	defer srv.Close()

	budgets, err := c.ListBudgets(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(budgets) != 3 {
		t.Fatalf("got %d budgets, want 3", len(budgets))
	}

	if budgets[0].Limit != 300 || budgets[0].Spent != 120 {
		t.Errorf("b1 = %+v, want limit 300 spent 120", budgets[0])
	}
	if budgets[1].Limit != 900 {
		t.Errorf("b2 Limit = %.2f, want legacy amount 900", budgets[1].Limit)
	}
	if budgets[1].Spent != 0 {
		t.Errorf("b2 Spent = %.2f, want default 0", budgets[1].Spent)
	}
	if budgets[2].Limit != 0 || budgets[2].Spent != 0 {
		t.Errorf("b3 = %+v, want numeric fields defaulted to 0", budgets[2])
	}
}

func TestCheckSpending(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"alerts":["food is at 90% of budget","rent exceeded"]}`))
	}))
	defer srv.Close()

	alerts, err := c.CheckSpending(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2", len(alerts))
	}
	if alerts[1].Message != "rent exceeded" {
		t.Errorf("alerts[1] = %q", alerts[1].Message)
	}
}

func TestListTransactions_ParsesDates(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"_id":"t1","description":"salary","amount":100,"type":"income","category":"work","date":"2025-08-01T09:30:00.000Z"},
			{"_id":"t2","description":"rent","amount":40,"type":"expense","category":"home","date":"2025-08-02"}
		]`))
	}))
	defer srv.Close()

	txs, err := c.ListTransactions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if txs[0].Date.IsZero() {
		t.Error("RFC3339 date parsed as zero")
	}
	if txs[1].Date.IsZero() {
		t.Error("date-only timestamp parsed as zero")
	}
}
