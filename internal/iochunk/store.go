// Package iochunk keeps fetched chunks on local disk and rebuilds the
// final tables from them. A chunk file that exists is treated as
// complete; reruns skip it without looking inside.
package iochunk

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gnames/gnsys"
	"github.com/gnames/gntraits/pkg/gntraits"
)

type diskStore struct {
	dir string
}

// NewStore creates a ChunkStore rooted at dir. Final tables live at the
// root, chunk files under a chunks/ subdirectory.
func NewStore(dir string) (gntraits.ChunkStore, error) {
	for _, d := range []string{dir, filepath.Join(dir, "chunks")} {
		if err := gnsys.MakeDir(d); err != nil {
			return nil, CreateDirError(d, err)
		}
	}
	return &diskStore{dir: dir}, nil
}

func (ds *diskStore) Path(key gntraits.ChunkKey) string {
	if key.Part == "" {
		return filepath.Join(ds.dir, key.Target+".csv")
	}
	return filepath.Join(
		ds.dir, "chunks",
		fmt.Sprintf("%s-%s.csv", key.Target, key.Part),
	)
}

func (ds *diskStore) State(
	key gntraits.ChunkKey,
) (gntraits.ChunkState, error) {
	_, err := os.Stat(ds.Path(key))
	if err == nil {
		return gntraits.ChunkCached, nil
	}
	if os.IsNotExist(err) {
		return gntraits.ChunkMissing, nil
	}
	return gntraits.ChunkMissing, err
}

func (ds *diskStore) Create(
	key gntraits.ChunkKey,
) (io.WriteCloser, error) {
	return os.Create(ds.Path(key))
}

func (ds *diskStore) RowCount(key gntraits.ChunkKey) (int, error) {
	f, err := os.Open(ds.Path(key))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var count int
	for {
		_, err = r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		count++
	}
	if count > 0 {
		count-- // header
	}
	return count, nil
}

func (ds *diskStore) Discard(key gntraits.ChunkKey) error {
	err := os.Remove(ds.Path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
