package iodump

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest summarizes a dump run. It is written next to the archive so
// consumers can check completeness without unpacking it.
type Manifest struct {
	CreatedAt time.Time       `yaml:"created_at"`
	Endpoint  string          `yaml:"endpoint"`
	Clade     int             `yaml:"clade,omitempty"`
	Elapsed   string          `yaml:"elapsed"`
	Tables    []ManifestTable `yaml:"tables"`
}

// ManifestTable is the per-table portion of the manifest.
type ManifestTable struct {
	Name         string `yaml:"name"`
	File         string `yaml:"file"`
	Rows         int    `yaml:"rows"`
	Chunks       int    `yaml:"chunks,omitempty"`
	CachedChunks int    `yaml:"cached_chunks,omitempty"`
	EmptyChunks  int    `yaml:"empty_chunks,omitempty"`
	Dropped      int    `yaml:"dropped_predicates,omitempty"`
	Status       string `yaml:"status"`
}

func (d *dumper) manifest(
	reports []tableReport,
	start time.Time,
) error {
	m := Manifest{
		CreatedAt: start.UTC(),
		Endpoint:  d.cfg.Endpoint.URL,
		Clade:     d.cfg.Dump.Clade,
		Elapsed:   time.Since(start).Round(time.Second).String(),
	}
	for _, rep := range reports {
		status := "complete"
		switch {
		case rep.err != nil:
			status = "deferred"
		case rep.skipped:
			status = "cached"
		}
		m.Tables = append(m.Tables, ManifestTable{
			Name:         rep.target.Name,
			File:         rep.target.File,
			Rows:         rep.rows,
			Chunks:       rep.chunks,
			CachedChunks: rep.cached,
			EmptyChunks:  rep.empty,
			Dropped:      rep.dropped,
			Status:       status,
		})
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return ManifestError(d.cfg.Dump.Archive, err)
	}
	dest := d.cfg.Dump.Archive + ".manifest.yaml"
	if err = os.WriteFile(dest, data, 0644); err != nil {
		return ManifestError(dest, err)
	}
	return nil
}
