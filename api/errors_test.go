package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_WrapAndContext(t *testing.T) {
	cause := errors.New("disk on fire")
	err := NewError(ErrCodeTaskFailure, "task failed").
		Wrap(cause).
		WithContext("task", 7)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "task failed: disk on fire")
	assert.Contains(t, err.Error(), "task:7")
	assert.Equal(t, ErrCodeTaskFailure, CodeOf(err))

	var target *Error
	require.ErrorAs(t, fmt.Errorf("outer: %w", err), &target)
	assert.Equal(t, 7, target.Context["task"])
}

func TestError_NilContext(t *testing.T) {
	e := &Error{Code: ErrCodeInternal, Message: "x"}
	assert.Equal(t, "x", e.Error())
	e.WithContext("k", "v")
	assert.Equal(t, "v", e.Context["k"])
}

func TestCodeOf(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{nil, ErrCodeOK},
		{fmt.Errorf("bad: %w", ErrInvalidArgument), ErrCodeInvalidArgument},
		{fmt.Errorf("pool: %w", ErrExecutorClosed), ErrCodeClosed},
		{ErrNotReady, ErrCodeNotReady},
		{errors.New("other"), ErrCodeInternal},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CodeOf(c.err), "%v", c.err)
	}
}

type codedErr struct{}

func (codedErr) Error() string        { return "coded" }
func (codedErr) ErrorCode() ErrorCode { return ErrCodeTaskFailure }

func TestCodeOf_Coder(t *testing.T) {
	assert.Equal(t, ErrCodeTaskFailure, CodeOf(fmt.Errorf("wrapped: %w", codedErr{})))

	// The outermost code wins over a wrapped one.
	outer := NewError(ErrCodeClosed, "rejected").Wrap(codedErr{})
	assert.Equal(t, ErrCodeClosed, CodeOf(outer))
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "closed", ErrCodeClosed.String())
	assert.Equal(t, "invalid_argument", ErrCodeInvalidArgument.String())
	assert.Equal(t, "internal", ErrorCode(42).String())
}

func TestResult(t *testing.T) {
	ok := Result[int]{Value: 3}
	assert.True(t, ok.Ok())
	v, err := ok.Unpack()
	assert.NoError(t, err)
	assert.Equal(t, 3, v)

	bad := Result[int]{Value: 3, Err: ErrNotReady}
	assert.False(t, bad.Ok())
	_, err = bad.Unpack()
	assert.ErrorIs(t, err, ErrNotReady)
}
