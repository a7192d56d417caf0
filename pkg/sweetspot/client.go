// Copyright (c) 2024 Adam Wyatt
//
// This software is licensed under the MIT License.
// See the LICENSE file in the root of the repository for details.

package sweetspot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"time"

	"SweetspotFinder/pkg/civiltime"

	"github.com/gocolly/colly"
	"github.com/maypok86/otter/v2"
)

const (
	DefaultOrigin  = "https://middleware.sweetspot.io"
	DefaultTimeout = 20 * time.Second
	teeTimesPath   = "/api/tee-times"
	pageLimit      = 9999
)

// browser-like headers; the middleware rejects bare clients
var defaultHeaders = map[string]string{
	"Accept":          "application/json, text/plain, */*",
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0 Safari/537.36",
	"Referer":         "https://book.sweetspot.io/",
	"Origin":          "https://book.sweetspot.io",
	"Accept-Language": "sv-SE,sv;q=0.9,en-US;q=0.8,en;q=0.7",
}

// HTTPError is returned when the API answers with a non-success status.
type HTTPError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("tee-times request failed with status %d: %v", e.StatusCode, e.Err)
}

func (e *HTTPError) Unwrap() error { return e.Err }

// Client fetches tee times from the Sweetspot middleware.
type Client struct {
	origin  string
	timeout time.Duration
	cache   *otter.Cache[string, []byte]
}

type Option func(*Client)

// WithOrigin points the client at another API host, e.g. a test server.
func WithOrigin(origin string) Option {
	return func(c *Client) { c.origin = origin }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithCache keeps response bodies in memory for ttl, so the same course and
// day are only requested once per run.
func WithCache(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl <= 0 {
			c.cache = nil
			return
		}
		c.cache = otter.Must(&otter.Options[string, []byte]{
			MaximumSize:      1_000,
			ExpiryCalculator: otter.ExpiryWriting[string, []byte](ttl),
		})
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{origin: DefaultOrigin, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TeeTimesURL builds the query for one course over a UTC window.
func (c *Client) TeeTimesURL(courseID string, w civiltime.Window) (string, error) {
	u, err := url.Parse(c.origin)
	if err != nil {
		return "", fmt.Errorf("invalid API origin: %w", err)
	}
	u.Path = teeTimesPath

	after, before := w.Bounds()
	q := url.Values{}
	q.Set("course.uuid", courseID)
	q.Set("from[after]", after)
	q.Set("from[before]", before)
	q.Set("limit", strconv.Itoa(pageLimit))
	q.Set("order[from]", "asc")
	q.Set("page", "1")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// FetchTeeTimes returns every tee time of a course inside w. Transport and
// HTTP failures are returned as errors, never as an empty list.
func (c *Client) FetchTeeTimes(courseID string, w civiltime.Window) ([]Record, error) {
	reqURL, err := c.TeeTimesURL(courseID, w)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if body, ok := c.cache.GetIfPresent(reqURL); ok {
			log.Printf("[Sweetspot] cache hit for %s on %s", courseID, w.Date)
			return DecodeTeeTimes(body)
		}
	}

	body, err := c.get(reqURL)
	if err != nil {
		return nil, err
	}

	records, err := DecodeTeeTimes(body)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Set(reqURL, body)
	}
	return records, nil
}

func (c *Client) get(reqURL string) ([]byte, error) {
	col := colly.NewCollector(
		colly.AllowURLRevisit(),
	)
	col.SetRequestTimeout(c.timeout)

	var (
		body     []byte
		fetchErr error
	)

	col.OnRequest(func(r *colly.Request) {
		for k, v := range defaultHeaders {
			r.Headers.Set(k, v)
		}
		log.Printf("[Sweetspot] GET %s", r.URL)
	})

	col.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	col.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			fetchErr = &HTTPError{URL: reqURL, StatusCode: r.StatusCode, Err: err}
			return
		}
		fetchErr = fmt.Errorf("tee-times request failed: %w", err)
	})

	if err := col.Visit(reqURL); err != nil && fetchErr == nil {
		fetchErr = fmt.Errorf("tee-times request failed: %w", err)
	}
	col.Wait()

	if fetchErr != nil {
		log.Printf("[Sweetspot] %v", fetchErr)
		return nil, fetchErr
	}
	if body == nil {
		return nil, errors.New("tee-times request returned no response")
	}
	return body, nil
}

// DecodeTeeTimes accepts either {"data": [...]} or a bare array. Items that
// are not objects are skipped.
func DecodeTeeTimes(body []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty tee-times response")
	}

	var items []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decoding tee-times: %w", err)
		}
	case '{':
		var envelope struct {
			Data []json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("decoding tee-times: %w", err)
		}
		items = envelope.Data
	default:
		return nil, fmt.Errorf("unexpected tee-times response: %.40q", trimmed)
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		var rec Record
		if err := json.Unmarshal(item, &rec); err != nil {
			log.Printf("[Sweetspot] skipping undecodable tee time: %v", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
