package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("eof")
	netErr := NewError(KindNetwork, "read failed", cause)
	wrapped := fmt.Errorf("generate: %w", netErr)

	assert.ErrorIs(t, wrapped, ErrNetwork)
	assert.NotErrorIs(t, wrapped, ErrAPI)
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, IsRetryable(wrapped))
	assert.Equal(t, KindNetwork, KindOf(wrapped))
	assert.Equal(t, ErrorKind(""), KindOf(cause))
	assert.False(t, IsRetryable(cause))
}

func TestNewAPIErrorMessage(t *testing.T) {
	assert.Equal(t, "llm api error (status 503): API request failed with status 503",
		NewAPIError(503, "", nil).Error())
	assert.Equal(t, "llm api error (status 401): No auth credentials found",
		NewAPIError(401, "No auth credentials found", nil).Error())
	assert.False(t, IsRetryable(NewAPIError(500, "", nil)))
}
