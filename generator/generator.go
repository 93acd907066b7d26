package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
)

// Generator is the synthetic traffic client. It exercises the public API on
// a fixed schedule to produce demo telemetry; to the service it is an
// ordinary HTTP client.
type Generator struct {
	baseURL string
	author  string
	client  *http.Client
}

// New creates a generator that targets the API at baseURL.
func New(baseURL, author string) *Generator {
	return &Generator{
		baseURL: baseURL,
		author:  author,
		client:  &http.Client{Timeout: 8 * time.Second},
	}
}

// Run schedules one tick per interval and blocks until ctx is cancelled.
func (g *Generator) Run(ctx context.Context, interval time.Duration) error {
	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", interval), g.Tick); err != nil {
		return fmt.Errorf("failed to schedule traffic job: %w", err)
	}

	slog.Info("traffic generator started", "base_url", g.baseURL, "interval", interval)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	slog.Info("traffic generator stopped")
	return nil
}

// Tick performs one round of synthetic traffic: a health probe, a feed read
// with a random limit, and probabilistic post and comment writes.
func (g *Generator) Tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	g.request(ctx, http.MethodGet, "/healthz", nil)

	limits := []int{5, 10, 20}
	g.request(ctx, http.MethodGet, fmt.Sprintf("/posts?limit=%d", limits[rand.Intn(len(limits))]), nil)

	if rand.Float64() < 0.35 {
		g.createPost(ctx)
	}
	if rand.Float64() < 0.25 {
		g.commentOnLatest(ctx)
	}
}

func (g *Generator) createPost(ctx context.Context) {
	payload := map[string]interface{}{
		"title":       fmt.Sprintf("Synthetic event %s", time.Now().UTC().Format(time.RFC3339)),
		"author_name": g.author,
	}
	switch []string{"text", "link", "photo"}[rand.Intn(3)] {
	case "text":
		payload["type"] = "text"
		payload["body"] = "Shift review: workflow simulated by traffic generator."
	case "link":
		payload["type"] = "link"
		payload["link_url"] = "https://example.com/devops-portfolio"
	default:
		payload["type"] = "photo"
		payload["image_url"] = "https://picsum.photos/300"
	}

	g.request(ctx, http.MethodPost, "/posts", payload)
}

func (g *Generator) commentOnLatest(ctx context.Context) {
	status, body := g.request(ctx, http.MethodGet, "/posts?limit=1", nil)
	if status != http.StatusOK {
		return
	}

	var page struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &page); err != nil || len(page.Items) == 0 {
		return
	}

	g.request(ctx, http.MethodPost, fmt.Sprintf("/posts/%s/comments", page.Items[0].ID), map[string]interface{}{
		"body":        "Automated engagement for observability tests.",
		"author_name": g.author,
	})
}

// request issues one API call and returns the status and body. Failures are
// logged and tolerated; the next tick tries again.
func (g *Generator) request(ctx context.Context, method, path string, payload interface{}) (int, []byte) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return 0, nil
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		slog.Warn("traffic request failed", "method", method, "path", path, "error", err)
		return 0, nil
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil
	}
	return resp.StatusCode, data
}
