package iochunk

import (
	"encoding/csv"
	"io"
	"os"
)

// Assemble concatenates chunk files into one table written to w: a
// single header followed by every chunk's data rows in the order the
// paths are given.
func Assemble(w io.Writer, columns []string, paths []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}

	for _, path := range paths {
		if err := appendChunk(cw, path); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func appendChunk(cw *csv.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var first = true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if first {
			first = false // skip the chunk's own header
			continue
		}
		if err = cw.Write(rec); err != nil {
			return err
		}
	}
}
