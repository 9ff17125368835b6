package server

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Glaser1/Yatube/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		SessionSecret: "secret",
		ServerPort:    ":0",
		TemplatesDir:  "../../web/templates",
		StaticDir:     "../../web/static",
		PageSize:      10,
	}
}

func TestHealthRoute(t *testing.T) {
	s := NewServer(testConfig(), nil, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 status")
	}
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	s := NewServer(testConfig(), nil, nil)

	req := httptest.NewRequest("GET", "/unexisting_page/", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Page not found") {
		t.Fatalf("expected rendered 404 page, got %q", string(body))
	}
}

func TestProtectedPathsRedirectToLogin(t *testing.T) {
	s := NewServer(testConfig(), nil, nil)

	for path, wantNext := range map[string]string{
		"/create/": "%2Fcreate%2F",
		"/follow/": "%2Ffollow%2F",
	} {
		req := httptest.NewRequest("GET", path, nil)
		resp, err := s.App.Test(req)
		if err != nil {
			t.Fatalf("test request: %v", err)
		}
		if resp.StatusCode != 302 {
			t.Fatalf("expected 302 for %s, got %d", path, resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "/auth/login/?next="+wantNext {
			t.Fatalf("unexpected redirect for %s: %s", path, loc)
		}
	}
}
