// Package ocr talks to a PaddleOCR-VL compatible layout-parsing service and
// turns its responses into markdown segments the extractor understands.
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"contractocr/constants"
)

// Config controls the OCR service connection and the document-understanding
// toggles forwarded with every request.
type Config struct {
	BaseURL string        // if empty -> "http://localhost:8118"
	Timeout time.Duration // default 2m

	UseOrientationClassify bool
	UseDocUnwarping        bool
	UseLayoutDetection     bool
	UseChartRecognition    bool
	FormatBlockContent     bool
	MaxConcurrency         int // 0 = service default
}

// DefaultConfig mirrors the service defaults: orientation classification,
// unwarping and layout detection on, chart recognition off.
func DefaultConfig() Config {
	return Config{
		UseOrientationClassify: true,
		UseDocUnwarping:        true,
		UseLayoutDetection:     true,
		UseChartRecognition:    false,
		FormatBlockContent:     true,
	}
}

// PageResult is one page of a parsed document. Markdown holds the payload as
// the service sent it (a string, or an object carrying "markdown_text"), so
// it can be handed to the extractor unchanged; nil when the page produced no
// markdown.
type PageResult struct {
	InputPath string
	PageIndex int
	Markdown  any
	Raw       map[string]any
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8118"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Parse submits one document to the layout-parsing endpoint and returns its
// pages in order.
func (c *Client) Parse(ctx context.Context, path string) ([]PageResult, error) {
	rid := uuid.New().String()
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	ext := constants.NormalizeExt(filepath.Ext(path))

	body := map[string]any{
		"file":                      base64.StdEncoding.EncodeToString(data),
		"fileType":                  string(constants.MapExtToFormat(ext)),
		"useDocOrientationClassify": c.cfg.UseOrientationClassify,
		"useDocUnwarping":           c.cfg.UseDocUnwarping,
		"useLayoutDetection":        c.cfg.UseLayoutDetection,
		"useChartRecognition":       c.cfg.UseChartRecognition,
		"formatBlockContent":        c.cfg.FormatBlockContent,
	}
	if c.cfg.MaxConcurrency > 0 {
		body["maxConcurrency"] = c.cfg.MaxConcurrency
	}

	c.logger.Info("ocr.parse.request",
		"req_id", rid,
		"path", path,
		"bytes", len(data),
		"file_type", string(constants.MapExtToFormat(ext)),
	)

	raw, status, err := c.post(ctx, c.cfg.BaseURL+"/layout-parsing", body)
	if err != nil {
		c.logger.Error("ocr.parse.http_error",
			"req_id", rid, "status", status, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	if err := validateEnvelope(raw); err != nil {
		c.logger.Error("ocr.parse.invalid_envelope",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("ocr response: %w", err)
	}

	pages, err := decodePages(raw, path)
	if err != nil {
		return nil, err
	}

	c.logger.Info("ocr.parse.ok",
		"req_id", rid,
		"path", path,
		"pages", len(pages),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return pages, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, int, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("ocr http error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.logger.Warn("ocr response body close error", "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return raw, resp.StatusCode, fmt.Errorf("ocr status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, resp.StatusCode, nil
}

// decodePages turns a validated envelope into ordered PageResults. InputPath
// and PageIndex prefer what the service reports in the pruned result and fall
// back to the submitted path and the page's position.
func decodePages(raw []byte, path string) ([]PageResult, error) {
	var env struct {
		Result struct {
			Pages []struct {
				Markdown     json.RawMessage `json:"markdown"`
				PrunedResult map[string]any  `json:"prunedResult"`
			} `json:"layoutParsingResults"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode ocr response: %w", err)
	}

	pages := make([]PageResult, 0, len(env.Result.Pages))
	for i, p := range env.Result.Pages {
		page := PageResult{
			InputPath: path,
			PageIndex: i,
			Raw:       p.PrunedResult,
		}
		if len(p.Markdown) > 0 && string(p.Markdown) != "null" {
			var payload any
			if err := json.Unmarshal(p.Markdown, &payload); err != nil {
				return nil, fmt.Errorf("decode markdown payload: %w", err)
			}
			page.Markdown = payload
		}
		if ip, ok := p.PrunedResult["input_path"].(string); ok && ip != "" {
			page.InputPath = ip
		}
		if pi, ok := p.PrunedResult["page_index"].(float64); ok {
			page.PageIndex = int(pi)
		}
		pages = append(pages, page)
	}
	return pages, nil
}
