package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/ccollicutt/wmslog/pkg/analyzer"
	"github.com/ccollicutt/wmslog/pkg/config"
	"github.com/ccollicutt/wmslog/pkg/output"
)

func newTestReport(errors int) *output.Report {
	return output.NewReport(&analyzer.AnalysisResult{
		FileName:        "wms.log",
		ErrorCount:      errors,
		SentDataCount:   12,
		LinesProcessed:  100,
		ElapsedTimeData: analyzer.Series{},
		IntervalData:    analyzer.Series{},
	}, output.Metadata{
		Source:     "wms.log",
		Timezone:   "UTC",
		AnalyzedAt: time.Now(),
		Duration:   time.Second,
	})
}

func TestClient_Send_Success(t *testing.T) {
	var receivedBody []byte
	var receivedContentType string
	var receivedAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedContentType = r.Header.Get("Content-Type")
		receivedAuth = r.Header.Get("Authorization")
		receivedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient()
	report := newTestReport(3)

	resp := client.Send(context.Background(), report, SendOptions{
		URL: server.URL,
	})

	if !resp.Success() {
		t.Errorf("expected success, got error: %v", resp.Error)
	}

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}

	if resp.Body != `{"status":"ok"}` {
		t.Errorf("unexpected body: %s", resp.Body)
	}

	if receivedContentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", receivedContentType)
	}

	if receivedAuth != "" {
		t.Errorf("expected no auth header, got %s", receivedAuth)
	}

	// Verify payload is valid JSON containing expected fields
	var payload map[string]interface{}
	if err := json.Unmarshal(receivedBody, &payload); err != nil {
		t.Errorf("failed to parse received payload: %v", err)
	}

	if _, ok := payload["summary"]; !ok {
		t.Error("payload missing summary field")
	}
	if payload["id"] != report.ID {
		t.Errorf("payload id = %v, want %s", payload["id"], report.ID)
	}
}

func TestClient_Send_WithBearerToken(t *testing.T) {
	var receivedAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient()
	report := newTestReport(3)

	resp := client.Send(context.Background(), report, SendOptions{
		URL:   server.URL,
		Token: "secret-token-123",
	})

	if !resp.Success() {
		t.Errorf("expected success, got error: %v", resp.Error)
	}

	if receivedAuth != "Bearer secret-token-123" {
		t.Errorf("expected Bearer token, got %s", receivedAuth)
	}
}

func TestClient_Send_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal error"}`))
	}))
	defer server.Close()

	client := NewClient()
	report := newTestReport(3)

	resp := client.Send(context.Background(), report, SendOptions{
		URL: server.URL,
	})

	if resp.Success() {
		t.Error("expected failure, got success")
	}

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", resp.StatusCode)
	}

	if resp.Error == nil {
		t.Error("expected error to be set")
	}
}

func TestClient_Send_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient()
	report := newTestReport(3)

	resp := client.Send(context.Background(), report, SendOptions{
		URL:     server.URL,
		Timeout: 50 * time.Millisecond,
	})

	if resp.Success() {
		t.Error("expected failure due to timeout")
	}

	if resp.Error == nil {
		t.Error("expected error to be set")
	}
}

func TestClient_Send_InvalidURL(t *testing.T) {
	client := NewClient()
	report := newTestReport(3)

	resp := client.Send(context.Background(), report, SendOptions{
		URL: "://invalid-url",
	})

	if resp.Success() {
		t.Error("expected failure for invalid URL")
	}

	if resp.Error == nil {
		t.Error("expected error to be set")
	}
}

func TestClient_Send_ConnectionRefused(t *testing.T) {
	client := NewClient()
	report := newTestReport(3)

	resp := client.Send(context.Background(), report, SendOptions{
		URL:     "http://127.0.0.1:59999", // Unlikely to be listening
		Timeout: 100 * time.Millisecond,
	})

	if resp.Success() {
		t.Error("expected failure for connection refused")
	}

	if resp.Error == nil {
		t.Error("expected error to be set")
	}
}

func TestResponse_Success(t *testing.T) {
	tests := []struct {
		name        string
		resp        Response
		wantSuccess bool
	}{
		{"200 OK", Response{StatusCode: 200}, true},
		{"201 Created", Response{StatusCode: 201}, true},
		{"204 No Content", Response{StatusCode: 204}, true},
		{"400 Bad Request", Response{StatusCode: 400}, false},
		{"500 Server Error", Response{StatusCode: 500}, false},
		{"With Error", Response{StatusCode: 200, Error: io.EOF}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.Success(); got != tt.wantSuccess {
				t.Errorf("Success() = %v, want %v", got, tt.wantSuccess)
			}
		})
	}
}

func TestClient_Send_Msgpack(t *testing.T) {
	var receivedBody []byte
	var receivedContentType, receivedUA string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedContentType = r.Header.Get("Content-Type")
		receivedUA = r.Header.Get("User-Agent")
		receivedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	resp := NewClient().Send(context.Background(), newTestReport(3), SendOptions{
		URL:      server.URL,
		Encoding: "msgpack",
	})

	if !resp.Success() {
		t.Fatalf("expected success, got error: %v", resp.Error)
	}
	if receivedContentType != "application/msgpack" {
		t.Errorf("expected Content-Type application/msgpack, got %s", receivedContentType)
	}
	if receivedUA != UserAgent {
		t.Errorf("expected User-Agent %s, got %s", UserAgent, receivedUA)
	}

	var summary struct {
		Summary output.Summary `msgpack:"summary"`
	}
	if err := msgpack.Unmarshal(receivedBody, &summary); err != nil {
		t.Fatalf("failed to decode msgpack payload: %v", err)
	}
	if summary.Summary.ErrorCount != 3 {
		t.Errorf("expected errorCount 3, got %d", summary.Summary.ErrorCount)
	}
}

func TestClient_Send_UnknownEncoding(t *testing.T) {
	resp := NewClient().Send(context.Background(), newTestReport(0), SendOptions{
		URL:      "http://127.0.0.1:1",
		Encoding: "xml",
	})
	if resp.Error == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestOptionsFrom(t *testing.T) {
	opts := OptionsFrom(config.WebhookConfig{
		URL:      "https://example.com/hook",
		Token:    "tok",
		Encoding: "msgpack",
		Timeout:  3 * time.Second,
	})

	want := SendOptions{URL: "https://example.com/hook", Token: "tok", Encoding: "msgpack", Timeout: 3 * time.Second}
	if opts != want {
		t.Errorf("OptionsFrom() = %+v, want %+v", opts, want)
	}
}

func TestShouldFire(t *testing.T) {
	tests := []struct {
		trigger config.WebhookTrigger
		errors  int
		want    bool
	}{
		{config.WebhookTriggerOnErrors, 0, false},
		{config.WebhookTriggerOnErrors, 1, true},
		{"", 2, true},
		{config.WebhookTriggerAlways, 0, true},
		{config.WebhookTriggerAlways, 5, true},
		{config.WebhookTriggerNever, 0, false},
		{config.WebhookTriggerNever, 5, false},
	}

	for _, tt := range tests {
		if got := ShouldFire(tt.trigger, newTestReport(tt.errors)); got != tt.want {
			t.Errorf("ShouldFire(%q, errors=%d) = %v, want %v", tt.trigger, tt.errors, got, tt.want)
		}
	}
}
