package provider

import (
    "context"
    "errors"
)

// Error kinds surfaced by adapters. Wrap them with fmt.Errorf("%w: ...").
var (
    ErrConfig         = errors.New("configuration error")
    ErrNetwork        = errors.New("network error")
    ErrUpstreamFormat = errors.New("upstream format error")
    ErrParse          = errors.New("parse error")
)

// ErrorKind tags a failure for the presentation layer.
type ErrorKind int

const (
    KindUnknown ErrorKind = iota
    KindConfig
    KindNetwork
    KindUpstreamFormat
    KindParse
)

func (k ErrorKind) String() string {
    switch k {
    case KindConfig:
        return "ConfigError"
    case KindNetwork:
        return "NetworkError"
    case KindUpstreamFormat:
        return "UpstreamFormatError"
    case KindParse:
        return "ParseError"
    }
    return "UnknownError"
}

// KindOf classifies err. Context cancellation and deadlines count as
// network failures since they only happen around transport calls.
func KindOf(err error) ErrorKind {
    switch {
    case err == nil:
        return KindUnknown
    case errors.Is(err, ErrConfig):
        return KindConfig
    case errors.Is(err, ErrParse):
        return KindParse
    case errors.Is(err, ErrUpstreamFormat):
        return KindUpstreamFormat
    case errors.Is(err, ErrNetwork),
        errors.Is(err, context.DeadlineExceeded),
        errors.Is(err, context.Canceled):
        return KindNetwork
    }
    return KindUnknown
}
