package iodump

import (
	"archive/tar"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gntraits/pkg/gntraits"
	"github.com/klauspost/compress/gzip"
)

// archiveDir is the directory prefix of every member in the archive.
const archiveDir = "trait_bank"

// archive packages the assembled tables into a gzipped tarball. Tables
// that failed are left out; the archive is written even when some are
// missing.
func (d *dumper) archive(reports []tableReport) error {
	dest := d.cfg.Dump.Archive

	f, err := os.Create(dest)
	if err != nil {
		return ArchiveError(dest, err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	for _, rep := range reports {
		path := d.store.Path(gntraits.ChunkKey{Target: rep.target.Name})
		if _, err = os.Stat(path); err != nil {
			slog.Warn("Table file is missing, leaving it out",
				"table", rep.target.Name, "path", path)
			continue
		}
		if err = addFile(tw, path, rep.target.File); err != nil {
			return ArchiveError(dest, err)
		}
	}

	if err = tw.Close(); err != nil {
		return ArchiveError(dest, err)
	}
	if err = gz.Close(); err != nil {
		return ArchiveError(dest, err)
	}
	if err = f.Close(); err != nil {
		return ArchiveError(dest, err)
	}

	if info, err := os.Stat(dest); err == nil {
		gn.Info("Archive written to <em>%s</em> (%s)",
			dest, humanize.Bytes(uint64(info.Size())))
	}
	return nil
}

func addFile(tw *tar.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	hdr := &tar.Header{
		Name:    filepath.ToSlash(filepath.Join(archiveDir, name)),
		Mode:    0644,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	if err = tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err = io.Copy(tw, f)
	return err
}
