package iocypher

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntraits/pkg/errcode"
)

func RequestError(endpoint string, err error) error {
	msg := "Request to <em>%s</em> failed"
	vars := []any{endpoint}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.EndpointRequestError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: endpoint request failed: %w",
			fn, err),
	}
}

func ResponseError(endpoint string, status int) error {
	msg := "Endpoint <em>%s</em> answered with status <em>%d</em>"
	vars := []any{endpoint, status}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.EndpointResponseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: endpoint status %d",
			fn, status),
	}
}
