package album

import "fmt"

// DecodeErrorKind partitions document decode failures for reporting and
// machine consumption.
type DecodeErrorKind string

const (
	KindMalformedSyntax      DecodeErrorKind = "malformed-syntax"
	KindUnknownField         DecodeErrorKind = "unknown-field"
	KindInvalidEnumValue     DecodeErrorKind = "invalid-enum-value"
	KindMissingRequiredField DecodeErrorKind = "missing-required-field"
)

// DecodeError describes why an album document could not be decoded.
type DecodeError struct {
	Kind   DecodeErrorKind
	Detail string
	err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode album: %s: %s", e.Kind, e.Detail)
}

func (e *DecodeError) Unwrap() error { return e.err }

func decodeErrorf(kind DecodeErrorKind, err error, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: kind, Detail: fmt.Sprintf(format, args...), err: err}
}
