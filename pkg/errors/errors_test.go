package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpstreamFetchErrorHidesURLFromUser(t *testing.T) {
	err := NewUpstreamFetchError("topdrawersoccer", "https://example.test/secret", 503, fmt.Errorf("boom"))

	assert.Equal(t, "failed to retrieve data from topdrawersoccer", err.UserMessage())
	assert.NotContains(t, err.UserMessage(), "example.test")
	assert.Equal(t, 502, err.StatusCode)
	assert.Equal(t, "https://example.test/secret", err.Context["url"])
	assert.Contains(t, err.Error(), "boom")
}

func TestClassifiedFindsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("loading commits: %w", NewNotFoundError("conference", "ACC"))

	se, ok := Classified(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, se.Code)
	assert.Equal(t, 404, se.StatusCode)
	assert.Equal(t, "conference not found: ACC", se.UserMessage())

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsUpstream(wrapped))
	assert.False(t, IsParse(wrapped))
	assert.Equal(t, CodeNotFound, KindOf(wrapped))
}

func TestClassifiedRejectsPlainErrors(t *testing.T) {
	_, ok := Classified(stderrors.New("plain"))
	assert.False(t, ok)
	assert.Equal(t, "", KindOf(nil))
}

func TestParseErrorUnwrapsCause(t *testing.T) {
	cause := stderrors.New("no table")
	err := NewParseError("ncaa", "rankings table", cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, IsParse(err))
	assert.Equal(t, CodeParse, KindOf(err))
}

func TestValidationErrorStatus(t *testing.T) {
	err := NewValidationError("gender must be male or female", "gender", "x")
	assert.Equal(t, 400, err.StatusCode)
	assert.Equal(t, "gender", err.Field)
}
