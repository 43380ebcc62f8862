package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, nil))
}

func TestClient_Generate_SendsNonStreamingRequest(t *testing.T) {
	var captured generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %q, want POST", r.Method)
		}
		if r.URL.Path != "/api/generate" {
			t.Errorf("Path = %q, want /api/generate", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}

		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Fatalf("リクエストボディのパースに失敗: %v", err)
		}

		w.Write([]byte(`{"response": "  generated text  "}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := NewClient(server.URL, "llama3", 5*time.Second, newTestLogger(&buf))

	got, err := c.Generate(context.Background(), "summarize this")
	if err != nil {
		t.Fatalf("Generate がエラーを返した: %v", err)
	}

	if captured.Model != "llama3" {
		t.Errorf("Model = %q, want %q", captured.Model, "llama3")
	}
	if captured.Prompt != "summarize this" {
		t.Errorf("Prompt = %q", captured.Prompt)
	}
	if captured.Stream {
		t.Error("Stream = true, want false")
	}

	// 前後の空白はトリムされる
	if got != "generated text" {
		t.Errorf("Generate = %q, want %q", got, "generated text")
	}
}

func TestClient_Generate_TrailingSlashBaseURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Path = %q, want /api/generate", r.URL.Path)
		}
		w.Write([]byte(`{"response": "ok"}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := NewClient(server.URL+"/", "llama3", 5*time.Second, newTestLogger(&buf))

	if _, err := c.Generate(context.Background(), "p"); err != nil {
		t.Fatalf("Generate がエラーを返した: %v", err)
	}
}

func TestClient_Generate_NonOKStatus_ReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "model not found"}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := NewClient(server.URL, "missing-model", 5*time.Second, newTestLogger(&buf))

	_, err := c.Generate(context.Background(), "p")
	if err == nil {
		t.Fatal("非200レスポンスでエラーが返るべき")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("エラーにステータスコードが含まれるべき: %v", err)
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Errorf("エラーにレスポンスボディが含まれるべき: %v", err)
	}
}

func TestClient_Generate_MalformedJSON_ReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := NewClient(server.URL, "llama3", 5*time.Second, newTestLogger(&buf))

	if _, err := c.Generate(context.Background(), "p"); err == nil {
		t.Fatal("不正なJSONでエラーが返るべき")
	}
}

func TestClient_Generate_Unreachable_ReturnsError(t *testing.T) {
	var buf bytes.Buffer
	c := NewClient("http://127.0.0.1:1", "llama3", time.Second, newTestLogger(&buf))

	if _, err := c.Generate(context.Background(), "p"); err == nil {
		t.Fatal("到達不能なバックエンドでエラーが返るべき")
	}
}

func TestClient_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("Path = %q, want /api/tags", r.URL.Path)
		}
		w.Write([]byte(`{"models": []}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := NewClient(server.URL, "llama3", 5*time.Second, newTestLogger(&buf))

	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping がエラーを返した: %v", err)
	}
}

func TestClient_Ping_Unreachable_ReturnsError(t *testing.T) {
	var buf bytes.Buffer
	c := NewClient("http://127.0.0.1:1", "llama3", time.Second, newTestLogger(&buf))

	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("到達不能なバックエンドでエラーが返るべき")
	}
}
