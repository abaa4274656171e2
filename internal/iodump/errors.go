package iodump

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntraits/pkg/errcode"
)

func CancelledError(err error) error {
	msg := "Extraction was cancelled"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DumpChunkError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cancelled: %w", fn, err),
	}
}

func DiscoveryError(table string, err error) error {
	msg := "Cannot discover partitions for table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DumpDiscoveryError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: partition discovery failed: %w",
			fn, err),
	}
}

func ChunkError(table, predicate, path string, err error) error {
	msg := "Chunk <em>%s</em> failed, deferring table <em>%s</em>"
	vars := []any{path, table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DumpChunkError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: chunk %q (predicate %q) failed: %w",
			fn, path, predicate, err),
	}
}

func AssembleError(table string, err error) error {
	msg := "Cannot assemble table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DumpAssembleError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: table assembly failed: %w",
			fn, err),
	}
}

func ArchiveError(dest string, err error) error {
	msg := "Cannot write archive <em>%s</em>"
	vars := []any{dest}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DumpArchiveError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: archive write failed: %w",
			fn, err),
	}
}

func ManifestError(dest string, err error) error {
	msg := "Cannot write manifest for <em>%s</em>"
	vars := []any{dest}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DumpManifestError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: manifest write failed: %w",
			fn, err),
	}
}
