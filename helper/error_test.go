package helper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError(t *testing.T) {
	t.Run("Wrapped error names the operation", func(t *testing.T) {
		err := NewError("insert article", errors.New("connection refused"))
		assert.EqualError(t, err, "error in insert article: connection refused")
	})

	t.Run("Wrapped error keeps its cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewError("insert article", cause)
		assert.ErrorIs(t, err, cause, "Expected the cause to stay available for errors.Is")
	})
}
