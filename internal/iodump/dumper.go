// Package iodump orchestrates the full extraction: it walks every dump
// target, materializes its chunks, assembles the tables and packages
// them into the final archive.
package iodump

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gntraits/internal/iochunk"
	"github.com/gnames/gntraits/pkg/config"
	"github.com/gnames/gntraits/pkg/gntraits"
	"github.com/gnames/gntraits/pkg/traits"
)

type dumper struct {
	cfg     *config.Config
	client  gntraits.QueryClient
	store   gntraits.ChunkStore
	fetcher *iochunk.Fetcher
}

// New creates a Dumper that fetches through client and keeps
// intermediate files in store.
func New(
	cfg *config.Config,
	client gntraits.QueryClient,
	store gntraits.ChunkStore,
) gntraits.Dumper {
	return &dumper{
		cfg:     cfg,
		client:  client,
		store:   store,
		fetcher: iochunk.NewFetcher(client, store, cfg.Dump.ChunkSize),
	}
}

// tableReport describes the outcome for one target.
type tableReport struct {
	target  traits.Target
	rows    int
	chunks  int
	cached  int
	empty   int
	dropped int
	skipped bool
	err     error
}

func (d *dumper) Dump(ctx context.Context) error {
	start := time.Now()
	gn.Info("Starting trait bank extraction from <em>%s</em>",
		d.cfg.Endpoint.URL)
	if d.cfg.Dump.Clade > 0 {
		gn.Info("Restricting pages to clade <em>%d</em>",
			d.cfg.Dump.Clade)
	}

	var reports []tableReport
	var totalRows int
	var failedTables int
	for _, tgt := range traits.Targets() {
		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}

		rep := d.runTarget(ctx, tgt)
		reports = append(reports, rep)
		totalRows += rep.rows
		if rep.err != nil {
			failedTables++
			slog.Error("Table deferred",
				"table", tgt.Name, "error", rep.err)
			// keep going, a partial dump is still useful
			continue
		}
		slog.Info("Table complete",
			"table", tgt.Name,
			"rows", rep.rows,
			"chunks", rep.chunks,
			"cached", rep.cached,
			"empty", rep.empty,
			"dropped", rep.dropped,
		)
	}

	if err := d.archive(reports); err != nil {
		return err
	}
	if err := d.manifest(reports, start); err != nil {
		slog.Warn("Cannot write the manifest", "error", err)
	}

	gn.Info(`Extraction complete
Tables succeeded: %d, deferred: %d. Rows: %s.
Elapsed time: <em>%s</em>
`,
		len(reports)-failedTables,
		failedTables,
		humanize.Comma(int64(totalRows)),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

// runTarget materializes one table. Unpartitioned targets go straight
// into their final file; partitioned ones are discovered, fetched chunk
// by chunk and assembled.
func (d *dumper) runTarget(
	ctx context.Context,
	tgt traits.Target,
) tableReport {
	rep := tableReport{target: tgt}

	tableKey := gntraits.ChunkKey{Target: tgt.Name}
	state, err := d.store.State(tableKey)
	if err == nil && state == gntraits.ChunkCached {
		rep.skipped = true
		rep.rows, err = d.store.RowCount(tableKey)
		if err != nil {
			slog.Warn("Cannot count rows of an existing table",
				"table", tgt.Name, "error", err)
			rep.rows = 0
		}
		gn.Info("Table <em>%s</em> already exists, skipping", tgt.Name)
		return rep
	}

	gn.Info("Extracting table <em>%s</em>", tgt.Name)

	switch tgt.Strategy {
	case traits.StrategyByPredicate:
		return d.runPartitioned(ctx, tgt)
	default:
		// a table without partitions is written even when empty
		res := d.fetcher.Fetch(
			ctx, tableKey, tgt.Query(d.cfg.Dump.Clade), true,
		)
		rep.rows, rep.chunks = res.Rows, 1
		if res.Status == iochunk.StatusFailed {
			rep.err = ChunkError(tgt.Name, "", res.Path, res.Err)
		}
		return rep
	}
}

func (d *dumper) runPartitioned(
	ctx context.Context,
	tgt traits.Target,
) tableReport {
	rep := tableReport{target: tgt}

	preds, err := d.discover(ctx, tgt)
	if err != nil {
		rep.err = DiscoveryError(tgt.Name, err)
		return rep
	}
	slog.Info("Discovered partitions",
		"table", tgt.Name, "predicates", len(preds))

	bar := newProgressBar(len(preds), tgt.Name+" ")
	defer bar.Finish()

	var paths []string
	for i, pred := range preds {
		bar.Increment()
		select {
		case <-ctx.Done():
			rep.err = CancelledError(ctx.Err())
			return rep
		default:
		}

		key := gntraits.ChunkKey{
			Target: tgt.Name,
			Part:   fmt.Sprintf("%03d", i),
		}
		q, err := tgt.PartitionQuery(pred, d.cfg.Dump.Clade)
		if err != nil {
			// an unsafe value shrinks the dump, it never defers it
			slog.Warn("Skipping a predicate with unsafe characters",
				"table", tgt.Name, "predicate", pred)
			rep.dropped++
			continue
		}

		res := d.fetcher.Fetch(ctx, key, q, false)
		rep.chunks++
		switch res.Status {
		case iochunk.StatusCached:
			rep.cached++
			rep.rows += res.Rows
			paths = append(paths, res.Path)
		case iochunk.StatusFetched:
			rep.rows += res.Rows
			paths = append(paths, res.Path)
		case iochunk.StatusEmpty:
			rep.empty++
		case iochunk.StatusFailed:
			// one failed chunk defers the whole table; its cached
			// siblings make the next run cheaper
			rep.err = ChunkError(tgt.Name, pred, res.Path, res.Err)
			return rep
		}
	}

	if err = d.assemble(tgt, paths); err != nil {
		rep.err = err
	}
	return rep
}

// discover fetches the ordered list of partition values for a target.
// The stable order keeps chunk indices identical across resumed runs.
func (d *dumper) discover(
	ctx context.Context,
	tgt traits.Target,
) ([]string, error) {
	rows, err := d.client.Execute(ctx, tgt.DiscoveryQuery())
	if err != nil {
		return nil, err
	}
	res := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		res = append(res, row[0])
	}
	return res, nil
}

func (d *dumper) assemble(tgt traits.Target, paths []string) error {
	key := gntraits.ChunkKey{Target: tgt.Name}
	wc, err := d.store.Create(key)
	if err != nil {
		return AssembleError(tgt.Name, err)
	}
	if err = iochunk.Assemble(wc, tgt.Columns, paths); err != nil {
		wc.Close()
		if derr := d.store.Discard(key); derr != nil {
			slog.Warn("Cannot remove a partial table",
				"table", tgt.Name, "error", derr)
		}
		return AssembleError(tgt.Name, err)
	}
	return wc.Close()
}
