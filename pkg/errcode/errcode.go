package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Query endpoint errors
	EndpointRequestError
	EndpointResponseError

	// Dump errors
	DumpWorkDirError
	DumpDiscoveryError
	DumpChunkError
	DumpAssembleError
	DumpArchiveError
	DumpManifestError
)
