// Package gntraits defines the contracts between the dump pipeline's
// components: the remote query client, the chunk store and the dump
// orchestrator. Implementations live in internal/io* packages.
package gntraits

import (
	"context"
	"io"

	"github.com/gnames/gntraits/pkg/traits"
)

// QueryClient executes a query against the remote graph endpoint and
// returns its rows: an ordered sequence of tuples aligned to the query's
// declared columns. A non-success response or connection problem is
// reported as an error after logging; the client never panics.
//
// Backpressure is the client's concern: after any call whose result
// exceeds the configured row threshold it pauses for a fixed delay before
// allowing the next call, regardless of caller.
type QueryClient interface {
	Execute(ctx context.Context, q traits.Query) ([][]string, error)
}

// ChunkState is the lifecycle state of a chunk in the store.
type ChunkState int

const (
	// ChunkMissing means the chunk has not been materialized yet.
	ChunkMissing ChunkState = iota
	// ChunkCached means a file for the chunk exists. Its presence is
	// proof of completion, content is not re-validated.
	ChunkCached
)

// ChunkKey identifies a chunk by target and partition. An empty Part
// addresses the target's single (or assembled) table file.
type ChunkKey struct {
	Target string
	Part   string
}

// ChunkStore keeps materialized chunks keyed by (target, partition).
// The local-disk implementation treats file existence as the cached
// state; other backends (object stores) can satisfy the same contract.
type ChunkStore interface {
	// State reports whether the chunk is already materialized.
	State(key ChunkKey) (ChunkState, error)

	// Path returns the location of the chunk, whether it exists or not.
	Path(key ChunkKey) string

	// Create opens a writer for a new chunk. The chunk becomes cached
	// once the writer is closed.
	Create(key ChunkKey) (io.WriteCloser, error)

	// RowCount returns the number of data rows in a cached chunk,
	// excluding the header.
	RowCount(key ChunkKey) (int, error)

	// Discard removes a chunk, for cleaning up partial writes after a
	// failure. Discarding a missing chunk is not an error.
	Discard(key ChunkKey) error
}

// Dumper runs the full dump: every target is partitioned, fetched,
// assembled and packaged into the final archive. The run is best effort;
// a partial archive is a success.
type Dumper interface {
	Dump(ctx context.Context) error
}
