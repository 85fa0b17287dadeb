package metainspect_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/metainspect"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := metainspect.Errorf(metainspect.EINVALIDURL, "invalid url %q", "http://")

	assert.Equal(t, metainspect.EINVALIDURL, metainspect.ErrorCode(err))
	assert.Equal(t, `invalid url "http://"`, metainspect.ErrorMessage(err))
	assert.Zero(t, metainspect.ErrorStatus(err))
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := metainspect.WrapError(metainspect.ENETWORK, cause, "fetching %s", "http://example.com/")

	assert.Equal(t, metainspect.ENETWORK, metainspect.ErrorCode(err))
	assert.Equal(t, "fetching http://example.com/", metainspect.ErrorMessage(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestStatusErrorf(t *testing.T) {
	t.Parallel()

	err := metainspect.StatusErrorf(404, "response status code was %d", 404)

	assert.Equal(t, metainspect.ESTATUS, metainspect.ErrorCode(err))
	assert.Equal(t, 404, metainspect.ErrorStatus(err))
	assert.Equal(t, "response status code was 404", metainspect.ErrorMessage(err))
}

func TestErrorCode_WrappedWithFmt(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("inspect: %w", metainspect.Errorf(metainspect.ETOOLARGE, "too large"))

	assert.Equal(t, metainspect.ETOOLARGE, metainspect.ErrorCode(err))
	assert.Equal(t, "too large", metainspect.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, metainspect.EINTERNAL, metainspect.ErrorCode(err))
	assert.Equal(t, "Internal error.", metainspect.ErrorMessage(err))
	assert.Zero(t, metainspect.ErrorStatus(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, metainspect.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, metainspect.ErrorMessage(nil))
}
