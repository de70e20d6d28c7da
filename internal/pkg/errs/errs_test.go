//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"rental-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTooMany = errs.BadRequest("TOO_MANY_GUESTS", "Too many guests")

func TestDomainError_WithfKeepsIdentity(t *testing.T) {
	specific := errTooMany.Withf("Maximum guests allowed is %d", 4)

	assert.Equal(t, "Maximum guests allowed is 4", specific.Error())
	assert.Equal(t, errs.KindBadRequest, specific.Kind())
	assert.Equal(t, "TOO_MANY_GUESTS", specific.Reason())
	assert.ErrorIs(t, specific, errTooMany)
	assert.True(t, errs.Is(specific, errTooMany))

	other := errs.BadRequest("INVALID_DATES", "Too many guests")
	assert.False(t, errors.Is(other, errTooMany))
}

func TestAsDomainError_ThroughWraps(t *testing.T) {
	wrapped := errs.Wrapf(errs.Wrap(errTooMany, "inner"), "outer %d", 1)

	de, ok := errs.AsDomainError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "TOO_MANY_GUESTS", de.Reason())

	kind, ok := errs.KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, errs.KindBadRequest, kind)
	assert.True(t, errs.IsKind(wrapped, errs.KindBadRequest))
	assert.False(t, errs.IsKind(wrapped, errs.KindConflict))

	_, ok = errs.KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "x"))
	assert.NoError(t, errs.Wrapf(nil, "x %d", 1))
	assert.Nil(t, errs.ExtractStackLines(nil, 5))
}

func TestMark(t *testing.T) {
	sentinel := errors.New("concurrent update")
	cause := errs.New("version mismatch")

	marked := errs.Mark(cause, sentinel)

	assert.True(t, errs.Is(marked, sentinel))
	assert.Equal(t, "version mismatch", marked.Error())
	assert.Equal(t, sentinel, errs.Mark(nil, sentinel))
}

func TestExtractStackLines_Truncates(t *testing.T) {
	lines := errs.ExtractStackLines(errs.Wrap(errs.New("root"), "ctx"), 3)

	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ctx")
}
