package capture_test

import (
	"context"
	"encoding/json"
	"io/fs"
	"net"
	"strconv"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"

	"faultline/internal/capture"
	"faultline/internal/domain"
)

func TestClassify(t *testing.T) {
	var target map[string]any
	jsonErr := json.Unmarshal([]byte(`{bad`), &target)
	require.Error(t, jsonErr)

	_, numErr := strconv.Atoi("high")
	require.Error(t, numErr)

	cases := []struct {
		name string
		err  error
		want capture.Kind
	}{
		{"traversal depth", errors.Wrap(domain.ErrTraversalDepth, "flatten"), capture.KindRecursionLimit},
		{"capacity", errors.Wrap(domain.ErrCapacityExceeded, "import"), capture.KindMemoryExhaustion},
		{"not exist", errors.Wrap(&fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}, "load"), capture.KindFileNotFound},
		{"permission", errors.Wrap(&fs.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}, "write"), capture.KindPermissionDenied},
		{"json syntax", errors.Wrap(jsonErr, "decode"), capture.KindJSONParse},
		{"invalid utf8", errors.Wrap(encoding.ErrInvalidUTF8, "decode"), capture.KindUTF8Decode},
		{"deadline", errors.Wrap(context.DeadlineExceeded, "query"), capture.KindDeadlineExceeded},
		{"value", errors.Wrap(numErr, "parse"), capture.KindValueCoercion},
		{"network", errors.Wrap(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}, "connect"), capture.KindConnectionFailure},
		{"dial timeout", errors.Wrap(&net.OpError{Op: "dial", Net: "tcp", Err: context.DeadlineExceeded}, "connect"), capture.KindConnectionFailure},
		{"unknown", errors.New("something else"), capture.KindUnclassified},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, capture.Classify(tc.err))
		})
	}
}

func TestClassifyPanic(t *testing.T) {
	cases := []struct {
		name  string
		panic func()
		want  capture.Kind
	}{
		{
			"interface conversion",
			func() {
				var v any
				_ = v.(string)
			},
			capture.KindTypeMismatch,
		},
		{
			"nil map assignment",
			func() {
				var m map[string]string
				m["k"] = "v"
			},
			capture.KindMissingKey,
		},
		{
			"nil dereference",
			func() {
				var u *domain.User
				_ = u.Email
			},
			capture.KindNilReference,
		},
		{
			"divide by zero",
			func() {
				a, b := 1, 0
				_ = a / b
			},
			capture.KindDivisionByZero,
		},
		{
			"index out of range",
			func() {
				s := []int{}
				_ = s[len(s)-1]
			},
			capture.KindIndexOutOfRange,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				v := recover()
				require.NotNil(t, v)
				assert.Equal(t, tc.want, capture.ClassifyPanic(v))
			}()
			tc.panic()
		})
	}
}

func innermost() error {
	return errors.New("boom at the bottom")
}

func middle() error {
	if err := innermost(); err != nil {
		return errors.Wrap(err, "middle layer")
	}
	return nil
}

func TestNormalizeErrorFrames(t *testing.T) {
	d := capture.NormalizeError(middle())

	assert.Equal(t, capture.KindUnclassified, d.Kind)
	assert.Contains(t, d.Message, "boom at the bottom")
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, capture.OriginRequest, d.Origin)

	require.Greater(t, len(d.Trace), 1)
	assert.Contains(t, d.Trace[0].Function, "innermost")
	assert.Contains(t, d.Trace[1].Function, "middle")
	for _, frame := range d.Trace {
		assert.NotEmpty(t, frame.File)
		assert.Positive(t, frame.Line)
	}
}

func derefTaskTitle(task *domain.Task) string {
	return task.Title
}

func TestNormalizePanicFrames(t *testing.T) {
	var diag capture.Diagnostic
	func() {
		defer func() {
			if v := recover(); v != nil {
				diag = capture.NormalizePanic(v)
			}
		}()
		_ = derefTaskTitle(nil)
	}()

	assert.Equal(t, capture.KindNilReference, diag.Kind)
	require.Greater(t, len(diag.Trace), 1)
	assert.Contains(t, diag.Trace[0].Function, "derefTaskTitle")
	for _, frame := range diag.Trace {
		assert.NotContains(t, frame.Function, "runtime.")
	}
}
