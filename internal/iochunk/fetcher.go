package iochunk

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"

	"github.com/gnames/gntraits/pkg/gntraits"
	"github.com/gnames/gntraits/pkg/traits"
)

// Status is the outcome of fetching one chunk.
type Status int

const (
	// StatusFetched means the chunk was downloaded during this run.
	StatusFetched Status = iota
	// StatusCached means a file for the chunk already existed and the
	// download was skipped.
	StatusCached
	// StatusEmpty means the query returned no rows and no file was
	// written.
	StatusEmpty
	// StatusFailed means the chunk could not be materialized; its
	// partial file, if any, was discarded.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusFetched:
		return "fetched"
	case StatusCached:
		return "cached"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result describes one processed chunk.
type Result struct {
	Status Status
	Path   string
	Rows   int
	Err    error
}

// window is the number of rows requested per endpoint call.
const window = 50_000

// Fetcher materializes chunks by paging through a query with
// SKIP/LIMIT windows until a window comes back short.
type Fetcher struct {
	client gntraits.QueryClient
	store  gntraits.ChunkStore
	window int
}

// NewFetcher creates a Fetcher. A non-positive windowSize falls back to
// the default.
func NewFetcher(
	client gntraits.QueryClient,
	store gntraits.ChunkStore,
	windowSize int,
) *Fetcher {
	if windowSize <= 0 {
		windowSize = window
	}
	return &Fetcher{client: client, store: store, window: windowSize}
}

// Fetch materializes the chunk for key by running q in windows. An
// existing chunk file is proof of completion and is not re-fetched.
// When the query returns no rows, createEmpty decides between writing a
// header-only file and reporting StatusEmpty without a file. On any
// mid-fetch failure the partial file is removed so the next run starts
// the chunk from scratch.
func (f *Fetcher) Fetch(
	ctx context.Context,
	key gntraits.ChunkKey,
	q traits.Query,
	createEmpty bool,
) Result {
	res := Result{Path: f.store.Path(key)}

	state, err := f.store.State(key)
	if err != nil {
		res.Status, res.Err = StatusFailed, err
		return res
	}
	if state == gntraits.ChunkCached {
		res.Status = StatusCached
		rows, err := f.store.RowCount(key)
		if err != nil {
			slog.Warn("Cannot count rows of a cached chunk",
				"path", res.Path, "error", err)
			res.Status, res.Err = StatusFailed, err
			return res
		}
		res.Rows = rows
		return res
	}

	rows, created, err := f.download(ctx, key, q, createEmpty)
	if err != nil {
		if derr := f.store.Discard(key); derr != nil {
			slog.Warn("Cannot remove a partial chunk",
				"path", res.Path, "error", derr)
		}
		res.Status, res.Err = StatusFailed, err
		return res
	}
	if !created {
		res.Status = StatusEmpty
		return res
	}
	res.Status, res.Rows = StatusFetched, rows
	return res
}

// download pages through the query. The chunk file is created lazily:
// when the first window is empty and createEmpty is false, nothing is
// written at all.
func (f *Fetcher) download(
	ctx context.Context,
	key gntraits.ChunkKey,
	q traits.Query,
	createEmpty bool,
) (total int, created bool, err error) {
	var wc io.WriteCloser
	var w *csv.Writer

	for skip := 0; ; skip += f.window {
		if err = ctx.Err(); err != nil {
			break
		}

		var rows [][]string
		rows, err = f.client.Execute(ctx, q.WithWindow(skip, f.window))
		if err != nil {
			break
		}

		if wc == nil {
			if len(rows) == 0 && !createEmpty {
				return 0, false, nil
			}
			if wc, err = f.store.Create(key); err != nil {
				return 0, false, err
			}
			created = true
			w = csv.NewWriter(wc)
			if err = w.Write(q.Columns()); err != nil {
				break
			}
		}

		if err = w.WriteAll(rows); err != nil {
			break
		}
		total += len(rows)
		if len(rows) < f.window {
			break
		}
	}
	if err != nil {
		if wc != nil {
			wc.Close()
		}
		return 0, created, err
	}

	w.Flush()
	if err = w.Error(); err != nil {
		wc.Close()
		return 0, created, err
	}
	return total, created, wc.Close()
}
