package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassString(t *testing.T) {
	tests := []struct {
		name     string
		class    ErrorClass
		expected string
	}{
		{name: "invalid class", class: ErrorInvalid, expected: "invalid"},
		{name: "fatal class", class: ErrorFatal, expected: "fatal"},
		{name: "unknown class", class: ErrorClass(42), expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.class.String())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("wraps with component context", func(t *testing.T) {
		err := Wrap(ErrNamingCollision, "PropertyGraph", "Evaluate", "register leaf")
		require.Error(t, err)
		assert.Equal(t, "PropertyGraph.Evaluate: register leaf failed: naming collision", err.Error())
		assert.True(t, stderrors.Is(err, ErrNamingCollision))
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "PropertyGraph", "Evaluate", "register leaf"))
		assert.NoError(t, WrapInvalid(nil, "PropertyGraph", "Evaluate", "register leaf"))
		assert.NoError(t, WrapFatal(nil, "PropertyGraph", "Evaluate", "register leaf"))
	})
}

func TestClassification(t *testing.T) {
	t.Run("wrapped invalid error classifies as invalid", func(t *testing.T) {
		err := WrapInvalid(ErrMalformedEquation, "equation", "Product", "validate operands")
		assert.True(t, IsInvalid(err))
		assert.False(t, IsFatal(err))
		assert.Equal(t, ErrorInvalid, Classify(err))
	})

	t.Run("wrapped fatal error classifies as fatal", func(t *testing.T) {
		err := WrapFatal(ErrMissingConfig, "config", "LoadFile", "read model file")
		assert.True(t, IsFatal(err))
		assert.False(t, IsInvalid(err))
		assert.Equal(t, ErrorFatal, Classify(err))
	})

	t.Run("bare standard errors classify by variable", func(t *testing.T) {
		assert.True(t, IsInvalid(ErrNamingCollision))
		assert.True(t, IsInvalid(ErrUnboundReference))
		assert.True(t, IsInvalid(ErrEmptyOperands))
		assert.True(t, IsFatal(ErrMissingConfig))
	})

	t.Run("nil is neither invalid nor fatal", func(t *testing.T) {
		assert.False(t, IsInvalid(nil))
		assert.False(t, IsFatal(nil))
	})
}

func TestClassifiedErrorUnwrap(t *testing.T) {
	err := WrapInvalid(ErrUnboundReference, "generator", "CheckImplementation", "verify members")

	var ce *ClassifiedError
	require.True(t, stderrors.As(err, &ce))
	assert.Equal(t, "generator", ce.Component)
	assert.Equal(t, "CheckImplementation", ce.Operation)
	assert.True(t, stderrors.Is(ce.Unwrap(), ErrUnboundReference))
}
