package semantic_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nikbrunner/bms/internal/semantic"
)

func TestOllamaEmbedder_Embed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Model string `json:"model"`
			Input string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if body.Model != "nomic-embed-text" || body.Input != "hello" {
			t.Errorf("unexpected body %+v", body)
		}
		w.Write([]byte(`{"embeddings": [[0.5, -1, 2]]}`))
	}))
	defer srv.Close()

	e := semantic.NewOllamaEmbedder(srv.URL+"/", "nomic-embed-text")
	vec, err := e.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != 3 || vec[0] != 0.5 || vec[1] != -1 || vec[2] != 2 {
		t.Errorf("unexpected vector %v", vec)
	}
}

func TestOllamaEmbedder_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		empty  bool
	}{
		{"server error", http.StatusInternalServerError, `{}`, false},
		{"bad json", http.StatusOK, `{`, false},
		{"empty embeddings", http.StatusOK, `{"embeddings": []}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := semantic.NewOllamaEmbedder(srv.URL, "m").Embed(context.Background(), "x")
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, semantic.ErrEmptyEmbedding) != tt.empty {
				t.Errorf("ErrEmptyEmbedding mismatch: %v", err)
			}
		})
	}
}

func TestOllamaEmbedder_CheckHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"models": []}`))
	}))

	e := semantic.NewOllamaEmbedder(srv.URL, "m")
	if err := e.CheckHealth(context.Background()); err != nil {
		t.Errorf("expected healthy, got %v", err)
	}

	srv.Close()
	if err := e.CheckHealth(context.Background()); err == nil {
		t.Error("expected error once the server is gone")
	}
}
