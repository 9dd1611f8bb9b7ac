package ingest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCheckAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	sdb := tempSourceDB(t)
	adapters := []Adapter{
		&fakeAdapter{"good", "ok source", srv.URL + "/ok", ""},
		&fakeAdapter{"bad", "gone source", srv.URL + "/gone", ""},
		&fakeAdapter{"static", "no url", "", ""},
	}
	if err := sdb.Seed(adapters); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	checker := NewChecker(sdb, discardLogger())
	if err := checker.CheckAll(context.Background()); err != nil {
		t.Fatalf("CheckAll: %v", err)
	}

	sources, err := sdb.ListSources()
	if err != nil {
		t.Fatalf("ListSources: %v", err)
	}
	byID := make(map[string]Source, len(sources))
	for _, s := range sources {
		byID[s.AdapterID] = s
	}

	if s := byID["good"]; s.LastStatus == nil || *s.LastStatus != 200 {
		t.Fatalf("good source status = %v", s.LastStatus)
	}
	if s := byID["bad"]; s.LastStatus == nil || *s.LastStatus != 404 {
		t.Fatalf("bad source status = %v", s.LastStatus)
	}
	if s := byID["static"]; s.LastCheck != nil {
		t.Fatal("static source should not be checked")
	}
}

func TestCheckAllNetworkError(t *testing.T) {
	sdb := tempSourceDB(t)
	// Closed server: connection refused.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if err := sdb.Seed([]Adapter{&fakeAdapter{"down", "unreachable", url, ""}}); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	checker := NewChecker(sdb, discardLogger())
	if err := checker.CheckAll(context.Background()); err != nil {
		t.Fatalf("CheckAll should tolerate unreachable sources: %v", err)
	}

	sources, _ := sdb.ListSources()
	s := sources[0]
	if s.LastStatus == nil || *s.LastStatus != 0 {
		t.Fatalf("expected status 0 on network error, got %v", s.LastStatus)
	}
	if s.LastError == nil || *s.LastError == "" {
		t.Fatal("expected last_error to be recorded")
	}
}
