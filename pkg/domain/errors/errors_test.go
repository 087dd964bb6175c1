package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := New(CodeFileNotFound, "migrate", "Dockerfile not found: /tmp/Dockerfile", nil)
	assert.Equal(t, "[migrate:FILE_NOT_FOUND] Dockerfile not found: /tmp/Dockerfile", err.Error())

	cause := fmt.Errorf("permission denied")
	wrapped := New(CodeIoError, "migrate", "reading Dockerfile", cause)
	assert.Equal(t, "[migrate:IO_ERROR] reading Dockerfile: permission denied", wrapped.Error())
	assert.Equal(t, cause, wrapped.Unwrap())
}

func TestIsCode(t *testing.T) {
	err := New(CodeFileNotFound, "migrate", "missing", nil)
	assert.True(t, IsCode(err, CodeFileNotFound))
	assert.False(t, IsCode(err, CodeIoError))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, IsCode(wrapped, CodeFileNotFound))
	assert.False(t, IsCode(nil, CodeFileNotFound))
	assert.False(t, IsCode(fmt.Errorf("plain"), CodeFileNotFound))
}
