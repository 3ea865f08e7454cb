package backend

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/codexr/codexr/internal/configuration"
)

func TestNewGeminiRequiresAPIKey(t *testing.T) {
	_, err := NewGemini(context.Background(), configuration.GeminiConfig{})
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestClassifyGeminiError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType ErrorType
		wantCode int
	}{
		{
			name:     "quota exhausted",
			err:      genai.APIError{Code: http.StatusTooManyRequests, Message: "quota exceeded"},
			wantType: ErrorTypeRateLimit,
			wantCode: http.StatusTooManyRequests,
		},
		{
			name:     "bad credential",
			err:      genai.APIError{Code: http.StatusForbidden, Message: "API key not valid"},
			wantType: ErrorTypeAuth,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "service overloaded",
			err:      genai.APIError{Code: http.StatusServiceUnavailable, Message: "overloaded"},
			wantType: ErrorTypeUnavailable,
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name:     "deadline before response",
			err:      context.DeadlineExceeded,
			wantType: ErrorTypeTimeout,
		},
		{
			name:     "plain transport failure",
			err:      errors.New("connection refused"),
			wantType: ErrorTypeUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyGeminiError(tt.err)

			var backendErr *BackendError
			require.ErrorAs(t, err, &backendErr)
			assert.Equal(t, NameGemini, backendErr.Backend)
			assert.Equal(t, tt.wantType, backendErr.Type)
			assert.Equal(t, tt.wantCode, backendErr.StatusCode)
		})
	}
}
