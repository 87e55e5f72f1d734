package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsKindThroughFmtWrapping(t *testing.T) {
	base := errors.New("relation does not exist")
	err := Wrap(KindSchema, "loader.verify", base, "table orders is missing")
	wrapped := fmt.Errorf("import: %w", err)

	assert.Equal(t, KindSchema, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindSchema))
	assert.ErrorIs(t, wrapped, base)
	assert.Equal(t, "loader.verify: table orders is missing: relation does not exist", err.Error())
}

func TestWrapNil(t *testing.T) {
	require.NoError(t, Wrap(KindParse, "op", nil))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindUnknown))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "no data", Message(New(KindParse, "extract", "no data")))
	assert.Equal(t, "boom", Message(errors.New("boom")))
	assert.Equal(t, "", Message(nil))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(New(KindInvalidInput, "op", "no file")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("get: %w", New(KindNotFound, "op", "gone"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(New(KindSchema, "op", "missing table")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
