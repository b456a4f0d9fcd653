package capture

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"net"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"

	"faultline/internal/domain"
)

const maxFrames = 32

// Frame is one call site on the path from the failure outward.
type Frame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// Diagnostic is the normalized report produced for any captured failure,
// whether it surfaced in a request handler or a detached goroutine.
type Diagnostic struct {
	ID         string
	FaultID    string
	Kind       Kind
	Message    string
	Origin     Origin
	Trace      []Frame
	CapturedAt time.Time
}

// NormalizeError converts a propagating error into a Diagnostic, pulling
// call-site frames from the innermost stack-carrying error in the chain.
func NormalizeError(err error) Diagnostic {
	return Diagnostic{
		ID:         uuid.NewString(),
		Kind:       Classify(err),
		Message:    err.Error(),
		Origin:     OriginRequest,
		Trace:      framesFromError(err),
		CapturedAt: time.Now().UTC(),
	}
}

// NormalizePanic converts a recovered panic value into a Diagnostic. It must
// be called from inside the deferred recover so the panicking frames are
// still on the stack.
func NormalizePanic(v any) Diagnostic {
	return Diagnostic{
		ID:         uuid.NewString(),
		Kind:       ClassifyPanic(v),
		Message:    fmt.Sprint(v),
		Origin:     OriginRequest,
		Trace:      callerFrames(3),
		CapturedAt: time.Now().UTC(),
	}
}

// Classify maps an error chain to its fault kind.
func Classify(err error) Kind {
	// A timed-out dial wraps context.DeadlineExceeded since Go 1.20, so the
	// concrete *net.OpError check has to run before the deadline sentinel.
	// A bare ctx.Err() is not an OpError and still lands on the sentinel.
	var opErr *net.OpError
	if stderrors.As(err, &opErr) {
		return KindConnectionFailure
	}

	switch {
	case stderrors.Is(err, domain.ErrTraversalDepth):
		return KindRecursionLimit
	case stderrors.Is(err, domain.ErrCapacityExceeded):
		return KindMemoryExhaustion
	case stderrors.Is(err, fs.ErrNotExist):
		return KindFileNotFound
	case stderrors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	case stderrors.Is(err, encoding.ErrInvalidUTF8):
		return KindUTF8Decode
	case stderrors.Is(err, context.DeadlineExceeded):
		return KindDeadlineExceeded
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &syntaxErr) || stderrors.As(err, &typeErr) {
		return KindJSONParse
	}
	var numErr *strconv.NumError
	if stderrors.As(err, &numErr) {
		return KindValueCoercion
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return KindConnectionFailure
	}
	return KindUnclassified
}

// ClassifyPanic maps a recovered runtime panic to its fault kind.
func ClassifyPanic(v any) Kind {
	msg := fmt.Sprint(v)
	switch {
	case strings.Contains(msg, "interface conversion"):
		return KindTypeMismatch
	case strings.Contains(msg, "assignment to entry in nil map"):
		return KindMissingKey
	case strings.Contains(msg, "nil pointer dereference"):
		return KindNilReference
	case strings.Contains(msg, "integer divide by zero"):
		return KindDivisionByZero
	case strings.Contains(msg, "index out of range"):
		return KindIndexOutOfRange
	default:
		return KindUnclassified
	}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func framesFromError(err error) []Frame {
	var deepest errors.StackTrace
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			deepest = st.StackTrace()
		}
	}

	frames := make([]Frame, 0, len(deepest))
	for _, f := range deepest {
		pc := uintptr(f) - 1
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		name := fn.Name()
		if skipFrame(name) {
			continue
		}
		file, line := fn.FileLine(pc)
		frames = append(frames, Frame{Function: name, File: file, Line: line})
		if len(frames) >= maxFrames {
			break
		}
	}
	return frames
}

func callerFrames(skip int) []Frame {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip, pcs)
	iter := runtime.CallersFrames(pcs[:n])

	var all []Frame
	for {
		fr, more := iter.Next()
		if fr.Function != "" {
			all = append(all, Frame{Function: fr.Function, File: fr.File, Line: fr.Line})
		}
		if !more {
			break
		}
	}

	// The recovering defer and runtime.gopanic sit between us and the panic
	// site. Cutting at the last gopanic makes the trace start at the panic
	// site no matter which package the recover lives in.
	start := 0
	for i, fr := range all {
		if fr.Function == "runtime.gopanic" {
			start = i + 1
		}
	}

	var frames []Frame
	for _, fr := range all[start:] {
		if skipFrame(fr.Function) {
			continue
		}
		frames = append(frames, fr)
		if len(frames) >= maxFrames {
			break
		}
	}
	return frames
}

func skipFrame(fn string) bool {
	return strings.HasPrefix(fn, "runtime.") ||
		strings.HasPrefix(fn, "faultline/internal/capture.")
}
