package capture

// Kind is a stable, machine-readable identifier for a captured failure.
type Kind string

const (
	KindTypeMismatch      Kind = "type-mismatch"
	KindMissingKey        Kind = "missing-key"
	KindNilReference      Kind = "nil-reference"
	KindDivisionByZero    Kind = "division-by-zero"
	KindIndexOutOfRange   Kind = "index-out-of-range"
	KindFileNotFound      Kind = "file-not-found"
	KindJSONParse         Kind = "json-parse"
	KindUTF8Decode        Kind = "utf8-decode"
	KindRecursionLimit    Kind = "recursion-limit"
	KindConnectionFailure Kind = "connection-failure"
	KindValueCoercion     Kind = "value-coercion"
	KindPermissionDenied  Kind = "permission-denied"
	KindDeadlineExceeded  Kind = "deadline-exceeded"
	KindBackgroundFailure Kind = "background-failure"
	KindMemoryExhaustion  Kind = "memory-exhaustion"

	// KindUnclassified marks failures no classifier rule matched.
	KindUnclassified Kind = "unclassified"
)

// Origin distinguishes where a failure was caught.
type Origin string

const (
	OriginRequest    Origin = "request"
	OriginBackground Origin = "background"
)
