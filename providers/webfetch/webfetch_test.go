package webfetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestFetch_Success tests successful web page fetching and conversion
func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		html := `
<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
	<h1>Welcome</h1>
	<p>This is a <strong>test</strong> paragraph.</p>
</body>
</html>`
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, html)
	}))
	defer server.Close()

	result, err := Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if result.URL != server.URL {
		t.Errorf("Expected URL %s, got %s", server.URL, result.URL)
	}
	if !strings.Contains(result.Markdown, "Welcome") {
		t.Error("Markdown should contain 'Welcome' heading")
	}
	if !strings.Contains(result.Markdown, "test") {
		t.Error("Markdown should contain 'test' text")
	}
}

// TestFetch_EmptyURL tests validation of empty and whitespace-only URLs
func TestFetch_EmptyURL(t *testing.T) {
	for _, url := range []string{"", "   "} {
		_, err := Fetch(context.Background(), url)
		if err == nil {
			t.Fatalf("Expected error for URL %q", url)
		}
		if !strings.Contains(err.Error(), "URL cannot be empty") {
			t.Errorf("Expected 'URL cannot be empty' error, got: %v", err)
		}
	}
}

// TestFetch_PartialURL tests automatic https:// prefix for partial URLs
func TestFetch_PartialURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "<html><body><h1>Test</h1></body></html>")
	}))
	defer server.Close()

	serverHost := strings.TrimPrefix(server.URL, "http://")

	// The https:// scheme cannot reach the plain-HTTP test server, so the
	// request fails at the connection, not at URL validation.
	_, err := Fetch(context.Background(), serverHost)
	if err != nil && strings.Contains(err.Error(), "URL cannot be empty") {
		t.Error("URL should have been normalized with https:// prefix")
	}
}

// TestFetch_NonOKStatus tests that non-200 responses are rejected
func TestFetch_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "unexpected status code: 404") {
		t.Errorf("Expected status code error, got: %v", err)
	}
}

// TestFetch_FollowsRedirects tests that the final URL after redirects is returned
func TestFetch_FollowsRedirects(t *testing.T) {
	var finalURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/landing", http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "<html><body><h1>Landed</h1></body></html>")
	}))
	defer server.Close()
	finalURL = server.URL + "/landing"

	result, err := Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if result.URL != finalURL {
		t.Errorf("Expected final URL %s, got %s", finalURL, result.URL)
	}
	if !strings.Contains(result.Markdown, "Landed") {
		t.Error("Markdown should contain content from the redirect target")
	}
}

// TestFetch_ContextCanceled tests that a canceled context aborts the request
func TestFetch_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Fetch(ctx, server.URL)
	if err == nil {
		t.Fatal("Expected error for canceled context")
	}
}
