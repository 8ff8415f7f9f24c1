//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"storefront-pricing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

var errOrderCreationFailed = errs.New("order creation failed")

func TestMark(t *testing.T) {
	t.Run("マークは折り返し後も判定できる", func(t *testing.T) {
		cause := errors.New("insert failed")
		err := errs.Wrap(errs.Mark(cause, errOrderCreationFailed), "checkout")

		assert.True(t, errs.Is(err, errOrderCreationFailed))
		assert.True(t, errs.Is(err, cause))
		assert.Equal(t, "checkout: insert failed", err.Error())
	})

	t.Run("nil はマーク自体を返す", func(t *testing.T) {
		assert.Same(t, errOrderCreationFailed, errs.Mark(nil, errOrderCreationFailed))
	})
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "ignored"))
	assert.NoError(t, errs.Wrapf(nil, "ignored %d", 1))
}

func TestExtractStackLines(t *testing.T) {
	err := errs.Wrap(errs.New("boom"), "handler")

	lines := errs.ExtractStackLines(err, 3)

	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "boom")
	assert.Nil(t, errs.ExtractStackLines(nil, 3))
}
