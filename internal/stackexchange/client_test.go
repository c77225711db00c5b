package stackexchange

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glabrego/stack-cli/internal/config"
)

func testConfig(baseURL string) config.Config {
	cfg := config.Default()
	cfg.APIBaseURL = baseURL
	return cfg
}

func TestSearch_SendsQueryAndParsesResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/advanced" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		for key, want := range map[string]string{
			"q":        "goroutine leak",
			"tagged":   "go;concurrency",
			"pagesize": "100",
			"sort":     "votes",
			"order":    "desc",
			"site":     "stackoverflow",
			"filter":   "withbody",
		} {
			if got := q.Get(key); got != want {
				t.Fatalf("unexpected %s: got %q want %q (%s)", key, got, want, r.URL.RawQuery)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"question_id":11,"title":"Why &quot;leak&quot;?","body":"<p>Hello <strong>world</strong></p>","score":7,"tags":["go","concurrency"],"owner":{"display_name":"Ren&#233;"},"answer_count":2,"is_answered":true,"accepted_answer_id":12}],"has_more":false,"quota_remaining":290}`))
	}))
	defer ts.Close()

	c := NewClient(testConfig(ts.URL), ts.Client(), nil)
	questions, err := c.Search(context.Background(), "goroutine leak", []string{"go", "concurrency"})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	q := questions[0]
	if q.ID != 11 || q.Score != 7 || q.AnswerCount != 2 || !q.HasAcceptedAnswer() {
		t.Fatalf("unexpected question: %+v", q)
	}
	if q.DisplayTitle() != `Why "leak"?` {
		t.Fatalf("unexpected title: %q", q.DisplayTitle())
	}
	if q.Owner.Author() != "René" {
		t.Fatalf("unexpected author: %q", q.Owner.Author())
	}
	if !strings.Contains(q.Body, "<strong>world</strong>") {
		t.Fatalf("expected body markup to be kept, got %q", q.Body)
	}
}

func TestSearch_OmitsEmptyTags(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["tagged"]; ok {
			t.Fatalf("did not expect tagged parameter: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer ts.Close()

	c := NewClient(testConfig(ts.URL), ts.Client(), nil)
	questions, err := c.Search(context.Background(), "anything", nil)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if questions == nil || len(questions) != 0 {
		t.Fatalf("expected empty non-nil page, got %#v", questions)
	}
}

func TestListAnswers_ParsesResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/questions/42/answers" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("filter") != "withbody" {
			t.Fatalf("expected body filter, got %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"items":[{"answer_id":1,"question_id":42,"body":"<p>Use a context.</p>","score":3,"is_accepted":true,"owner":{"display_name":"gopher"}},{"answer_id":2,"body":"<p>Other</p>","score":1}]}`))
	}))
	defer ts.Close()

	c := NewClient(testConfig(ts.URL), ts.Client(), nil)
	answers, err := c.ListAnswers(context.Background(), 42)
	if err != nil {
		t.Fatalf("ListAnswers returned error: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}
	if !answers[0].IsAccepted || answers[0].Owner.Author() != "gopher" || answers[0].Score != 3 {
		t.Fatalf("unexpected first answer: %+v", answers[0])
	}
	if answers[1].IsAccepted {
		t.Fatalf("unexpected accepted flag on second answer: %+v", answers[1])
	}
}

func TestFetch_NonSuccessStatusIsFetchError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error_id":400,"error_name":"bad_parameter","error_message":"sort"}`))
	}))
	defer ts.Close()

	c := NewClient(testConfig(ts.URL), ts.Client(), nil)
	_, err := c.Search(context.Background(), "x", nil)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %T %v", err, err)
	}
	if fetchErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", fetchErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "bad_parameter: sort") {
		t.Fatalf("expected API error message, got %v", err)
	}
}

func TestFetch_UndecodableBodyIsFetchError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer ts.Close()

	c := NewClient(testConfig(ts.URL), ts.Client(), nil)
	_, err := c.ListAnswers(context.Background(), 1)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %T %v", err, err)
	}
	if !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetch_NetworkFailureIsFetchError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	c := NewClient(testConfig(url), nil, nil)
	_, err := c.Search(context.Background(), "x", nil)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %T %v", err, err)
	}
	if fetchErr.StatusCode != 0 {
		t.Fatalf("expected no status for transport failure, got %d", fetchErr.StatusCode)
	}
}

func TestFetch_DecompressesGzipBody(t *testing.T) {
	var payload bytes.Buffer
	zw := gzip.NewWriter(&payload)
	_, _ = zw.Write([]byte(`{"items":[{"question_id":5,"title":"Zipped"}]}`))
	_ = zw.Close()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(payload.Bytes())
	}))
	defer ts.Close()

	httpClient := &http.Client{Transport: &http.Transport{DisableCompression: true}}
	c := NewClient(testConfig(ts.URL), httpClient, nil)
	questions, err := c.Search(context.Background(), "zip", nil)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(questions) != 1 || questions[0].Title != "Zipped" {
		t.Fatalf("unexpected questions: %+v", questions)
	}
}

func TestJoinTags(t *testing.T) {
	cases := map[string][]string{
		"":              nil,
		"go":            {"go"},
		"go;http":       {"go", "http"},
		"go;http;tls":   {"go http", ";tls; "},
		"python;pandas": {"python;pandas"},
	}
	for want, in := range cases {
		if got := JoinTags(in); got != want {
			t.Fatalf("JoinTags(%q) = %q, want %q", in, got, want)
		}
	}
}
