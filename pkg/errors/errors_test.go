package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() *AppError
		expected string
	}{
		{
			name: "ErrorWithoutCause",
			setup: func() *AppError {
				return New(ValidationError, "test validation error")
			},
			expected: "VALIDATION_ERROR: test validation error",
		},
		{
			name: "ErrorWithCause",
			setup: func() *AppError {
				cause := fmt.Errorf("connection refused")
				return Wrap(UpstreamError, "open-meteo request failed", cause)
			},
			expected: "UPSTREAM_ERROR: open-meteo request failed (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup()
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestAppError_Detail(t *testing.T) {
	assert.Equal(t, "Unknown provider: foo", NewConfigurationError("Unknown provider: foo", nil).Detail())

	err := NewUpstreamError("weatherapi request failed", fmt.Errorf("timeout"))
	assert.Equal(t, "weatherapi request failed: timeout", err.Detail())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("connection reset by peer")
	err := Wrap(UpstreamError, "API call failed", cause)
	assert.Equal(t, cause, err.Unwrap())

	assert.Nil(t, New(NotFoundError, "cache miss").Unwrap())
}

func TestSpecificErrorConstructors(t *testing.T) {
	tests := []struct {
		name         string
		err          *AppError
		expectedType ErrorType
		hasCause     bool
	}{
		{name: "Validation", err: NewValidationError("lat is required"), expectedType: ValidationError},
		{name: "NotFound", err: NewNotFoundError("cache miss"), expectedType: NotFoundError},
		{name: "Upstream", err: NewUpstreamError("status 502", fmt.Errorf("bad gateway")), expectedType: UpstreamError, hasCause: true},
		{name: "Configuration", err: NewConfigurationError("bad config", nil), expectedType: ConfigurationError},
		{name: "Internal", err: NewInternalError("encode failed", fmt.Errorf("boom")), expectedType: InternalError, hasCause: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedType, tt.err.Type)
			if tt.hasCause {
				assert.NotNil(t, tt.err.Cause)
			} else {
				assert.Nil(t, tt.err.Cause)
			}
		})
	}
}

func TestErrorTypeCheckers(t *testing.T) {
	upstream := NewUpstreamError("failed", nil)
	wrapped := fmt.Errorf("get weather: %w", upstream)

	assert.True(t, IsUpstreamError(upstream))
	assert.True(t, IsUpstreamError(wrapped), "checkers must see through fmt.Errorf wrapping")
	assert.False(t, IsValidationError(wrapped))

	assert.True(t, IsConfigurationError(NewConfigurationError("x", nil)))
	assert.True(t, IsNotFoundError(NewNotFoundError("x")))
	assert.True(t, IsValidationError(NewValidationError("x")))

	assert.False(t, IsNotFoundError(fmt.Errorf("plain")))
	assert.False(t, IsNotFoundError(nil))
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "UPSTREAM_ERROR", ErrorTypeUpstream.String())
	assert.Equal(t, "CONFIGURATION_ERROR", ErrorTypeConfiguration.String())
	assert.Equal(t, "UNKNOWN_ERROR", ErrorType(99).String())
	assert.Equal(t, ErrorTypeUnknown, TypeOf(fmt.Errorf("plain")))
}
