package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"onestop/internal/catalog"
	"onestop/internal/config"
	"onestop/internal/http/handlers"
	applog "onestop/internal/log"
	"onestop/internal/llm"
	"onestop/internal/repos"
)

// fakeModel emulates the /api/generate NDJSON stream and counts calls.
type fakeModel struct {
	mu    sync.Mutex
	calls int
	lines []string
}

func (f *fakeModel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	_, _ = io.Copy(io.Discard, r.Body)
	for _, l := range f.lines {
		fmt.Fprintln(w, l)
	}
}

func (f *fakeModel) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testConfig(modelURL string) config.Config {
	return config.Config{
		DefaultSlug:     "galaxy-s25-ultra",
		MaxMessageRunes: 2000,
		HistoryLimit:    20,
		HistoryMax:      100,
		Ollama: config.Ollama{
			URL:         modelURL,
			Model:       "gemma3:4b",
			Timeout:     5 * time.Second,
			KeepAlive:   "2h",
			Temperature: 0.2,
			NumCtx:      4096,
		},
	}
}

// newChatApp wires the chat routes the way main does, minus csrf and rate limits.
func newChatApp(t *testing.T, modelURL string) (*fiber.App, *sqlx.DB) {
	t.Helper()
	cfg := testConfig(modelURL)
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	cat, err := catalog.Load("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: handlers.ErrorHandler})
	app.Server().MaxRequestBodySize = 1 << 20
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, cfg, cat, llm.New(cfg.Ollama))
	app.Get("/", deps.ProductHandler.Home)
	app.Get("/product/:slug", deps.ProductHandler.Detail)
	app.Get("/images/*", handlers.Images("../../images"))
	api := app.Group("/api")
	api.Post("/ask", deps.ChatHandler.Ask)
	api.Get("/history", deps.ChatHandler.History)
	api.Post("/eta", deps.DeliveryHandler.Estimate)
	app.Get("/healthz", deps.HealthHandler.Check)
	return app, db
}

// downURL returns the address of a server that is no longer listening.
func downURL() string {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 10_000)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	restore := applog.SetOutput(&lockedBuf{b: &buf, mu: &mu})
	defer restore()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func hasAction(entries []logEntry, action string) bool {
	for _, e := range entries {
		if e.Action == action {
			return true
		}
	}
	return false
}
