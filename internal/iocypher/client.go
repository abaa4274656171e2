// Package iocypher talks to a remote Cypher-over-HTTP endpoint. It sends
// queries as JSON and converts the tabular response into string rows.
package iocypher

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gnames/gntraits/pkg/config"
	"github.com/gnames/gntraits/pkg/gntraits"
	"github.com/gnames/gntraits/pkg/traits"
)

type client struct {
	endpoint     string
	token        string
	httpClient   *http.Client
	rowThreshold int
	delay        time.Duration
	sleep        func(time.Duration)
}

// Option modifies the client. Used by tests to substitute the HTTP
// client and the sleep function.
type Option func(*client)

// OptHTTPClient replaces the default HTTP client.
func OptHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// OptSleep replaces the throttling sleep function.
func OptSleep(fn func(time.Duration)) Option {
	return func(c *client) {
		c.sleep = fn
	}
}

// New creates a QueryClient for the configured endpoint. Requests larger
// than the throttle threshold are followed by a fixed pause, shielding
// the remote service from tight request loops.
func New(cfg *config.Config, opts ...Option) gntraits.QueryClient {
	res := &client{
		endpoint: cfg.Endpoint.URL,
		token:    cfg.Endpoint.Token,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
		rowThreshold: cfg.Throttle.RowThreshold,
		delay:        time.Duration(cfg.Throttle.DelayMs) * time.Millisecond,
		sleep:        time.Sleep,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// cypherResponse is the wire format of the endpoint: column names and
// rows of arbitrary JSON scalars.
type cypherResponse struct {
	Columns []string            `json:"columns"`
	Data    [][]json.RawMessage `json:"data"`
}

func (c *client) Execute(
	ctx context.Context,
	q traits.Query,
) ([][]string, error) {
	body, err := json.Marshal(map[string]string{"query": q.Text()})
	if err != nil {
		return nil, RequestError(c.endpoint, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.endpoint, bytes.NewReader(body),
	)
	if err != nil {
		return nil, RequestError(c.endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "JWT "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, RequestError(c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		slog.Error("Endpoint returned a non-success status",
			"status", resp.StatusCode, "body", string(raw))
		return nil, ResponseError(c.endpoint, resp.StatusCode)
	}

	var wire cypherResponse
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err = dec.Decode(&wire); err != nil {
		slog.Error("Cannot parse endpoint response", "error", err)
		return nil, RequestError(c.endpoint, err)
	}

	rows := make([][]string, len(wire.Data))
	for i, data := range wire.Data {
		row := make([]string, len(data))
		for j, cell := range data {
			row[j] = renderCell(cell)
		}
		rows[i] = row
	}

	if len(rows) > c.rowThreshold {
		c.sleep(c.delay)
	}
	return rows, nil
}

// renderCell converts one JSON scalar to its CSV representation. Nulls
// become empty strings, numbers keep their original notation.
func renderCell(raw json.RawMessage) string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return string(raw)
	}
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		// arrays and maps are unexpected, keep raw JSON
		return string(raw)
	}
}
