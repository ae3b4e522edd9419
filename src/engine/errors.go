package engine

import "github.com/pkg/errors"

//ErrUnknownTemplate is returned by SettleTemplate for a name which was never added
var ErrUnknownTemplate = errors.New("engine: unknown template")

//ErrClosed is returned by the synchronous commands sent after Close
var ErrClosed = errors.New("engine: closed")
