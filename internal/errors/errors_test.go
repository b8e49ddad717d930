package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/hippomemory/internal/errors"
)

func TestIsCode(t *testing.T) {
	err := errors.NewAlreadyGuessedError("Apple", 3)
	wrapped := fmt.Errorf("click: %w", err)

	assert.True(t, errors.IsCode(err, errors.ErrCodeAlreadyGuessed))
	assert.True(t, errors.IsCode(wrapped, errors.ErrCodeAlreadyGuessed))
	assert.False(t, errors.IsCode(wrapped, errors.ErrCodeInvalidState))
	assert.False(t, errors.IsCode(stderrors.New("plain"), errors.ErrCodeAlreadyGuessed))
	assert.False(t, errors.IsCode(nil, errors.ErrCodeAlreadyGuessed))
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("unexpected end of JSON input")
	err := errors.NewPersistenceCorruptError("progress", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "PERSISTENCE_CORRUPT")
	assert.Contains(t, err.Error(), "unexpected end of JSON input")
}

func TestAlreadyGuessedMessage(t *testing.T) {
	err := errors.NewAlreadyGuessedError("Banana", 0)
	assert.Equal(t, `ALREADY_GUESSED: "Banana" was already guessed on tile 1`, err.Error())
	assert.Equal(t, 409, err.Status)
}
