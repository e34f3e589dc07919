// Package pfam provides a client for the Pfam protein-family annotation
// database (https://pfam.xfam.org). It exposes typed accessors for families,
// clans, proteins, and alignment membership lists, converting the server's
// XML and tab-delimited payloads into structured records.
package pfam

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/beevik/etree"

	"github.com/AlbertoBoldrini/pfam-go/internal/conf"
	"github.com/AlbertoBoldrini/pfam-go/internal/errors"
	"github.com/AlbertoBoldrini/pfam-go/internal/httpclient"
	"github.com/AlbertoBoldrini/pfam-go/internal/logging"
)

// DefaultBaseURL is the public Pfam server endpoint.
const DefaultBaseURL = "https://pfam.xfam.org"

const maxBodyPreviewSize = 200 // maximum characters of a response body kept in error context

// Package-level logger specific to the pfam service. Request paths read the
// logger while NewClientFromSettings may swap it, so the pointer is atomic
// and loggerMu only serializes the swaps themselves.
var (
	serviceLogger   atomic.Pointer[slog.Logger]
	serviceLevelVar = new(slog.LevelVar) // Dynamic level control
	closeLogger     func() error
	loggerMu        sync.Mutex
)

func init() {
	serviceLevelVar.Set(slog.LevelInfo)
	if l := logging.ForService("pfam"); l != nil {
		serviceLogger.Store(l)
	} else {
		// logging.Init has not run; keep a disabled handler so calls stay safe
		handler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: serviceLevelVar})
		serviceLogger.Store(slog.New(handler).With("service", "pfam"))
	}
	closeLogger = func() error { return nil }
}

// logger returns the current service logger.
func logger() *slog.Logger {
	return serviceLogger.Load()
}

// Config holds configuration for the Pfam client.
type Config struct {
	BaseURL   string        // server endpoint, DefaultBaseURL if empty
	Timeout   time.Duration // per-request timeout
	UserAgent string        // User-Agent header value
	Debug     bool          // enable request/response debug logging

	// Transport overrides the pooled HTTP transport. Nil selects the
	// default; tests inject a mock transport here.
	Transport http.RoundTripper
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   30 * time.Second,
		UserAgent: "pfam-go",
	}
}

// Client provides methods for interacting with the Pfam database.
// It is safe for concurrent use; every call builds an independent record
// graph from its own response body.
type Client struct {
	config Config
	http   *httpclient.Client

	// Metrics
	metrics struct {
		apiCalls      int64
		apiErrors     int64
		totalDuration time.Duration
		mu            sync.RWMutex
	}
}

// NewClient creates a new Pfam client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultConfig().BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultConfig().UserAgent
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	httpCfg := httpclient.Config{
		DefaultTimeout: config.Timeout,
		UserAgent:      config.UserAgent,
		Transport:      config.Transport,
	}

	client := &Client{
		config: config,
		http:   httpclient.New(&httpCfg),
	}

	logger().Info("pfam client initialized",
		"base_url", config.BaseURL,
		"timeout", config.Timeout,
		"debug", config.Debug)

	return client
}

// NewClientFromSettings creates a client from settings loaded by the conf
// package and installs the service log file when one is configured.
func NewClientFromSettings(settings *conf.Settings) *Client {
	if settings.Log.Enabled {
		loggerMu.Lock()
		serviceLevelVar.Set(parseLogLevel(settings.Log.Level))
		fileLogger, closeFn, err := logging.NewFileLogger(settings.Log.Path, "pfam", serviceLevelVar)
		if err != nil {
			// Fallback: log the error to the standard logger and keep the current handler
			log.Printf("Failed to initialize pfam file logger at %s: %v. Service logging unchanged.", settings.Log.Path, err)
		} else {
			serviceLogger.Store(fileLogger)
			closeLogger = closeFn
		}
		loggerMu.Unlock()
	}

	return NewClient(Config{
		BaseURL:   settings.BaseURL,
		Timeout:   settings.Timeout,
		UserAgent: settings.UserAgent,
		Debug:     settings.Debug,
	})
}

// parseLogLevel maps a settings level name onto a slog level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Close cleans up client resources.
func (c *Client) Close() {
	c.http.Close()

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if closeLogger != nil {
		if err := closeLogger(); err != nil {
			log.Printf("Error closing pfam logger: %v", err)
		}
		closeLogger = nil
	}
}

// get performs a GET against the Pfam server and returns the raw response
// body. The output query parameter defaults to the given format unless the
// caller set one. A non-2xx status fails before any body interpretation.
func (c *Client) get(ctx context.Context, path string, params url.Values, output string) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	if params.Get("output") == "" {
		params.Set("output", output)
	}

	requestURL := c.config.BaseURL + path + "?" + params.Encode()

	start := time.Now()

	c.metrics.mu.Lock()
	c.metrics.apiCalls++
	c.metrics.mu.Unlock()

	if c.config.Debug {
		logger().Debug("pfam request", "url", requestURL)
	}

	resp, err := c.http.Get(ctx, requestURL)
	if err != nil {
		c.metrics.mu.Lock()
		c.metrics.apiErrors++
		c.metrics.mu.Unlock()

		logger().Error("pfam request failed", "url", requestURL, "error", err)
		return nil, errors.Newf("HTTP request failed: %w", err).
			Category(errors.CategoryNetwork).
			Context("url", requestURL).
			Component("pfam").
			Build()
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger().Debug("failed to close response body", "error", closeErr)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.mu.Lock()
		c.metrics.apiErrors++
		c.metrics.mu.Unlock()

		return nil, errors.Newf("failed to read response body: %w", err).
			Category(errors.CategoryNetwork).
			Context("url", requestURL).
			Context("status_code", resp.StatusCode).
			Component("pfam").
			Build()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.mu.Lock()
		c.metrics.apiErrors++
		c.metrics.mu.Unlock()

		logger().Warn("pfam server returned non-2xx status",
			"status_code", resp.StatusCode,
			"url", requestURL,
			"response_body", truncateBodyPreview(string(body)))
		return nil, errors.Newf("pfam server returned status %d", resp.StatusCode).
			Category(errors.CategoryHTTPStatus).
			Context("status_code", resp.StatusCode).
			Context("url", requestURL).
			Context("response_body", truncateBodyPreview(string(body))).
			Component("pfam").
			Build()
	}

	duration := time.Since(start)
	c.metrics.mu.Lock()
	c.metrics.totalDuration += duration
	c.metrics.mu.Unlock()

	if c.config.Debug {
		logger().Debug("pfam response",
			"url", requestURL,
			"status_code", resp.StatusCode,
			"duration_ms", duration.Milliseconds(),
			"response_size", len(body))
	}

	return body, nil
}

// requestXML performs a GET expecting an XML body and returns the normalized
// document root. A server-reported <error> document fails before the
// normalization pass runs.
func (c *Client) requestXML(ctx context.Context, path string, params url.Values) (*etree.Element, error) {
	body, err := c.get(ctx, path, params, "xml")
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, errors.Newf("failed to parse response as XML: %w", err).
			Category(errors.CategoryXMLParsing).
			Context("path", path).
			Context("response_body", truncateBodyPreview(string(body))).
			Component("pfam").
			Build()
	}

	// etree keeps local names in Tag, so the server's default namespace
	// declaration needs no textual stripping before tag dispatch.
	root := doc.Root()
	if root == nil {
		return nil, errors.Newf("response contains no XML root element").
			Category(errors.CategoryXMLParsing).
			Context("path", path).
			Component("pfam").
			Build()
	}

	if root.Tag == "error" {
		message := strings.TrimSpace(root.Text())
		logger().Warn("pfam server reported an error", "path", path, "message", message)
		return nil, errors.Newf("%s", message).
			Category(errors.CategoryRemote).
			Context("path", path).
			Component("pfam").
			Build()
	}

	return NormalizeTree(root), nil
}

// requestText performs a GET expecting a plain-text body and returns it
// unparsed and unnormalized.
func (c *Client) requestText(ctx context.Context, path string, params url.Values) (string, error) {
	body, err := c.get(ctx, path, params, "text")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// entityNode returns the first child of a response root, which carries the
// entity payload of single-record endpoints.
func entityNode(root *etree.Element, kind string) (*etree.Element, error) {
	node := root.ChildElements()
	if len(node) == 0 {
		return nil, errors.Newf("%s response contains no entry node", kind).
			Category(errors.CategoryXMLParsing).
			Component("pfam").
			Build()
	}
	return node[0], nil
}

// truncateBodyPreview truncates a response body for logging and error context.
func truncateBodyPreview(body string) string {
	if len(body) > maxBodyPreviewSize {
		return body[:maxBodyPreviewSize] + "... (truncated)"
	}
	return body
}

// Metrics represents client performance counters.
type Metrics struct {
	APICalls      int64
	APIErrors     int64
	TotalDuration time.Duration
	AvgDuration   time.Duration
}

// GetMetrics returns current client metrics.
func (c *Client) GetMetrics() Metrics {
	c.metrics.mu.RLock()
	defer c.metrics.mu.RUnlock()

	metrics := Metrics{
		APICalls:      c.metrics.apiCalls,
		APIErrors:     c.metrics.apiErrors,
		TotalDuration: c.metrics.totalDuration,
	}
	if metrics.APICalls > 0 {
		metrics.AvgDuration = time.Duration(int64(metrics.TotalDuration) / metrics.APICalls)
	}
	return metrics
}
