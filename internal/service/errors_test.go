package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	code, known := CodeOf(ErrAccountNotFound)
	assert.Equal(t, NotFound, code)
	assert.Equal(t, ErrAccountNotFound, known)

	code, known = CodeOf(fmt.Errorf("wrapped: %w", ErrCronSecretMissing))
	assert.Equal(t, PreconditionFailed, code)
	assert.Equal(t, ErrCronSecretMissing, known)

	code, known = CodeOf(errors.New("boom"))
	assert.Equal(t, InternalServerError, code)
	assert.Nil(t, known)
}
