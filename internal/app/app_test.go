package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shelfshare/notesum/internal/config"
	"github.com/shelfshare/notesum/internal/modules/inference"
)

func testConfig(endpoint string) *config.AppConfig {
	return &config.AppConfig{
		Port:           5000,
		Env:            "production",
		AllowedOrigins: []string{"localhost:*"},
		Inference: config.InferenceConfig{
			Provider:     config.ProviderHuggingFace,
			APIKey:       "hf_test",
			Endpoint:     endpoint,
			SummaryModel: config.DefaultSummaryModel,
			TitleModel:   config.DefaultTitleModel,
			Timeout:      2 * time.Second,
		},
	}
}

// newProvider fakes the hosted summarization API, replying per model.
func newProvider(t *testing.T, replies map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		model := strings.TrimPrefix(r.URL.Path, "/models/")
		reply, ok := replies[model]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Model ` + model + ` does not exist"}`))
			return
		}
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func serve(a *App, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec
}

var jsonHeader = map[string]string{"Content-Type": "application/json"}

func TestSummarizedTextEndToEnd(t *testing.T) {
	provider := newProvider(t, map[string]string{
		config.DefaultSummaryModel: `[{"summary_text":"Buy milk and call mom."}]`,
	})
	a, err := New(nil, testConfig(provider.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := serve(a, http.MethodPost, "/get_summarized_text", `{"notesList": ["Buy milk", "Call mom"]}`, jsonHeader)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != `{"summary":"Buy milk and call mom."}` {
		t.Fatalf("body = %s", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing request id")
	}
}

func TestMasterTitleEndToEnd(t *testing.T) {
	provider := newProvider(t, map[string]string{
		config.DefaultTitleModel: `[{"summary_text":" what are reading goals for spring. "}]`,
	})
	a, err := New(nil, testConfig(provider.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := serve(a, http.MethodPost, "/get_master_title", `{"titlesList": ["Goals", "Spring"]}`, jsonHeader)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var body struct {
		MasterTitle string `json:"master_title"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.MasterTitle != "Reading goals for spring." {
		t.Fatalf("master_title = %q", body.MasterTitle)
	}
}

func TestUpstreamErrorsAreBadGateway(t *testing.T) {
	provider := newProvider(t, map[string]string{
		config.DefaultSummaryModel: `[{"label":"POSITIVE"}]`,
	})
	a, err := New(nil, testConfig(provider.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := serve(a, http.MethodPost, "/get_summarized_text", `{"notesList": ["a"]}`, jsonHeader)
	if rec.Code != http.StatusBadGateway || !strings.Contains(rec.Body.String(), "summary_text") {
		t.Fatalf("malformed: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = serve(a, http.MethodPost, "/get_master_title", `{"titlesList": ["a"]}`, jsonHeader)
	if rec.Code != http.StatusBadGateway || !strings.Contains(rec.Body.String(), "does not exist") {
		t.Fatalf("transport: status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestUnknownRoutes(t *testing.T) {
	a := NewWithGateway(nil, testConfig("http://127.0.0.1:1"), inference.NewHuggingFace("http://127.0.0.1:1", "k", time.Second))

	if rec := serve(a, http.MethodGet, "/nope", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("404 route: status = %d", rec.Code)
	}
	rec := serve(a, http.MethodGet, "/get_summarized_text", "", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("405 route: status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Fatalf("405 body = %s", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	a := NewWithGateway(nil, testConfig("http://127.0.0.1:1"), inference.NewHuggingFace("http://127.0.0.1:1", "k", time.Second))

	rec := serve(a, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Status    string `json:"status"`
		Inference struct {
			Provider string `json:"provider"`
		} `json:"inference"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Inference.Provider != config.ProviderHuggingFace {
		t.Fatalf("health = %+v", body)
	}
}

func TestCORS(t *testing.T) {
	a := NewWithGateway(nil, testConfig("http://127.0.0.1:1"), inference.NewHuggingFace("http://127.0.0.1:1", "k", time.Second))

	rec := serve(a, http.MethodOptions, "/get_summarized_text", "", map[string]string{
		"Origin":                        "http://localhost:5173",
		"Access-Control-Request-Method": http.MethodPost,
	})
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allowed origin = %q (status %d)", got, rec.Code)
	}

	rec = serve(a, http.MethodOptions, "/get_summarized_text", "", map[string]string{
		"Origin":                        "https://evil.test",
		"Access-Control-Request-Method": http.MethodPost,
	})
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("disallowed origin echoed: %q", got)
	}
}

func TestNewRejectsMissingCredential(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Inference.APIKey = ""
	if _, err := New(nil, cfg); err == nil {
		t.Fatal("expected error without credential")
	}
	if _, err := New(nil, nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
