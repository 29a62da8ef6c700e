package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"metacbot/internal/config"
)

func TestChatJSON_OfflineWithoutKey(t *testing.T) {
	client := NewClient(config.DefaultSettings())
	obj, err := client.ChatJSON(context.Background(), "prompt", "")
	if err != nil {
		t.Fatalf("offline chat failed: %v", err)
	}
	if obj["probability"] != 0.5 {
		t.Errorf("expected offline fallback payload, got %v", obj)
	}
}

func TestChatJSON_RequestShape(t *testing.T) {
	var captured chatRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decoding chat request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"content": "{\"probability\": 0.3}"}}]}`))
	}))
	defer server.Close()

	cfg := config.DefaultSettings()
	cfg.OpenRouterAPIKey = "key"
	client := NewClient(cfg)
	client.baseURL = server.URL

	obj, err := client.ChatJSON(context.Background(), "prompt", "system")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if obj["probability"] != 0.3 {
		t.Errorf("expected parsed completion, got %v", obj)
	}
	if auth != "Bearer key" {
		t.Errorf("expected bearer auth, got %q", auth)
	}
	if captured.ResponseFormat == nil || captured.ResponseFormat.Type != "json_object" {
		t.Errorf("expected json_object response format, got %+v", captured.ResponseFormat)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" {
		t.Errorf("expected system then user messages, got %+v", captured.Messages)
	}
}

func TestChatJSON_DryRunDegradesToFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	cfg := config.DefaultSettings()
	cfg.OpenRouterAPIKey = "bad"
	client := NewClient(cfg)
	client.baseURL = server.URL

	obj, err := client.ChatJSON(context.Background(), "prompt", "")
	if err != nil {
		t.Fatalf("dry run should degrade to fallback: %v", err)
	}
	if obj["summary"] != "Offline mode fallback" {
		t.Errorf("expected fallback payload, got %v", obj)
	}
}

func TestChatJSON_LiveModePropagatesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	cfg := config.DefaultSettings()
	cfg.OpenRouterAPIKey = "bad"
	cfg.LiveMode = true
	client := NewClient(cfg)
	client.baseURL = server.URL

	if _, err := client.ChatJSON(context.Background(), "prompt", ""); err == nil {
		t.Error("live mode should propagate backend errors")
	}
}
