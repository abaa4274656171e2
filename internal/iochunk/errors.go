package iochunk

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntraits/pkg/errcode"
)

func CreateDirError(dir string, err error) error {
	msg := "Cannot create working directory <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DumpWorkDirError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create dir: %w",
			fn, err),
	}
}
