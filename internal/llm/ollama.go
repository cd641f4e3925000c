// Package llm talks to a local Ollama-compatible /api/generate endpoint.
package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"onestop/internal/config"
	"onestop/internal/metrics"
)

const maxLineBytes = 1 << 20

type Client struct {
	http *resty.Client
	cfg  config.Ollama
}

func New(cfg config.Ollama) *Client {
	return &Client{
		http: resty.New().
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/x-ndjson"),
		cfg: cfg,
	}
}

func (c *Client) Model() string { return c.cfg.Model }

type generateRequest struct {
	Model     string  `json:"model"`
	Prompt    string  `json:"prompt"`
	Stream    bool    `json:"stream"`
	KeepAlive string  `json:"keep_alive,omitempty"`
	Options   options `json:"options"`
}

type options struct {
	Temperature *float64 `json:"temperature,omitempty"`
	NumCtx      int      `json:"num_ctx,omitempty"`
}

type chunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Complete sends prompt and concatenates the streamed response fragments.
// Transport failures, non-2xx replies and broken streams are returned as errors.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	temp := c.cfg.Temperature
	req := generateRequest{
		Model:     c.cfg.Model,
		Prompt:    prompt,
		Stream:    true,
		KeepAlive: c.cfg.KeepAlive,
		Options:   options{Temperature: &temp, NumCtx: c.cfg.NumCtx},
	}

	ctx, cancel := withTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := c.post(ctx, req)
	if err != nil {
		return "", err
	}
	defer body.Close()

	var sb strings.Builder
	for text, err := range fragments(body) {
		if err != nil {
			return "", fmt.Errorf("read stream: %w", err)
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// Answer is Complete for callers that must always get something to show.
// On failure the reply names the error and ok is false.
func (c *Client) Answer(ctx context.Context, prompt string) (reply string, ok bool) {
	start := time.Now()
	reply, err := c.Complete(ctx, prompt)
	metrics.ObserveGeneration(time.Since(start), err)
	if err != nil {
		return fmt.Sprintf("(AI is unavailable: %v)", err), false
	}
	return reply, true
}

// Warmup asks the service to load the model and keep it resident.
// It is best-effort; callers are free to ignore the error.
func (c *Client) Warmup(ctx context.Context) error {
	keep := c.cfg.KeepAlive
	if keep == "" {
		keep = "2h"
	}
	req := generateRequest{
		Model:     c.cfg.Model,
		Prompt:    " ",
		Stream:    true,
		KeepAlive: keep,
		Options:   options{NumCtx: c.cfg.WarmupNumCtx},
	}

	ctx, cancel := withTimeout(ctx, c.cfg.WarmupTimeout)
	defer cancel()

	body, err := c.post(ctx, req)
	if err != nil {
		return err
	}
	defer body.Close()
	_, err = io.Copy(io.Discard, body)
	return err
}

func (c *Client) post(ctx context.Context, req generateRequest) (io.ReadCloser, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetDoNotParseResponse(true).
		Post(c.cfg.URL)
	if err != nil {
		return nil, err
	}
	body := res.RawBody()
	if !res.IsSuccess() {
		msg, _ := io.ReadAll(io.LimitReader(body, 400))
		body.Close()
		return nil, fmt.Errorf("model service returned %d: %s", res.StatusCode(), strings.TrimSpace(string(msg)))
	}
	return body, nil
}

// fragments yields the response text of each NDJSON line in arrival order.
// Lines that do not decode or exceed maxLineBytes are skipped; only a read
// failure ends the sequence with an error.
func fragments(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		br := bufio.NewReaderSize(r, 64*1024)
		for {
			line, err := readLine(br)
			if text, ok := decodeChunk(line); ok {
				if !yield(text, nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", err)
				return
			}
		}
	}
}

// readLine returns the next line without keeping more than maxLineBytes of it.
// An oversize line comes back nil after being drained from br.
func readLine(br *bufio.Reader) ([]byte, error) {
	var line []byte
	tooLong := false
	for {
		frag, err := br.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(frag) > maxLineBytes {
				tooLong, line = true, nil
			} else {
				line = append(line, frag...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return line, err
	}
}

func decodeChunk(line []byte) (string, bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return "", false
	}
	var ch chunk
	if err := json.Unmarshal(line, &ch); err != nil {
		return "", false
	}
	return ch.Response, true
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
