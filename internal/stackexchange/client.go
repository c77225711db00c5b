package stackexchange

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/glabrego/stack-cli/internal/config"
)

type Client struct {
	baseURL  string
	site     string
	pageSize int
	sort     string
	order    string
	filter   string
	http     *http.Client
	logger   *slog.Logger
}

// NewClient builds a client from the immutable search settings in cfg.
func NewClient(cfg config.Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.APIBaseURL, "/"),
		site:     cfg.Site,
		pageSize: cfg.PageSize,
		sort:     cfg.Sort,
		order:    cfg.Order,
		filter:   cfg.Filter,
		http:     httpClient,
		logger:   logger,
	}
}

// PageSize is the number of items requested per query.
func (c *Client) PageSize() int {
	return c.pageSize
}

// Search runs an advanced search. Tags are sent joined with ';'.
func (c *Client) Search(ctx context.Context, query string, tags []string) ([]Question, error) {
	q := c.baseQuery()
	q.Set("q", query)
	if joined := JoinTags(tags); joined != "" {
		q.Set("tagged", joined)
	}
	return fetch[Question](ctx, c, "search questions", "/search/advanced", q)
}

// ListAnswers lists the answers of one question.
func (c *Client) ListAnswers(ctx context.Context, questionID int64) ([]Answer, error) {
	path := "/questions/" + strconv.FormatInt(questionID, 10) + "/answers"
	return fetch[Answer](ctx, c, "list answers", path, c.baseQuery())
}

// JoinTags normalizes user supplied tags (space or ';' separated) into the API form.
func JoinTags(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		for _, part := range strings.FieldsFunc(tag, func(r rune) bool { return r == ';' || r == ' ' || r == '\t' }) {
			out = append(out, part)
		}
	}
	return strings.Join(out, ";")
}

func (c *Client) baseQuery() url.Values {
	q := make(url.Values)
	q.Set("pagesize", strconv.Itoa(c.pageSize))
	q.Set("order", c.order)
	q.Set("sort", c.sort)
	q.Set("site", c.site)
	q.Set("filter", c.filter)
	return q
}

func fetch[T any](ctx context.Context, c *Client, op, path string, q url.Values) ([]T, error) {
	req, err := c.newRequest(ctx, path+"?"+q.Encode())
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	c.logger.Debug("api request", "op", op, "url", req.URL.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Op: op, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := decodedBody(resp)
	if err != nil {
		return nil, &FetchError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	if closer, ok := body.(io.Closer); ok && body != resp.Body {
		defer closer.Close()
	}

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(body, 4096))
		return nil, &FetchError{Op: op, StatusCode: resp.StatusCode, APIError: apiErrorMessage(raw)}
	}

	var page wrapper[T]
	if err := json.NewDecoder(body).Decode(&page); err != nil {
		return nil, &FetchError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if page.ErrorID != 0 {
		return nil, &FetchError{Op: op, StatusCode: resp.StatusCode, APIError: page.ErrorMessage}
	}

	c.logger.Debug("api response", "op", op, "items", len(page.Items), "has_more", page.HasMore, "quota_remaining", page.QuotaRemaining)
	if page.Backoff > 0 {
		c.logger.Warn("api requested backoff", "op", op, "seconds", page.Backoff)
	}
	if page.Items == nil {
		return []T{}, nil
	}
	return page.Items, nil
}

// decodedBody unwraps gzip bodies the transport left compressed.
func decodedBody(resp *http.Response) (io.Reader, error) {
	if resp.Uncompressed || !strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		return resp.Body, nil
	}
	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("open gzip body: %w", err)
	}
	return zr, nil
}

func apiErrorMessage(raw []byte) string {
	var envelope wrapper[json.RawMessage]
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.ErrorMessage != "" {
		if envelope.ErrorName != "" {
			return envelope.ErrorName + ": " + envelope.ErrorMessage
		}
		return envelope.ErrorMessage
	}
	return strings.TrimSpace(string(raw))
}

func (c *Client) newRequest(ctx context.Context, path string) (*http.Request, error) {
	fullURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
