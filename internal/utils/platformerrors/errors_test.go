package platformerrors

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorCapturesRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	err := NewError(ctx, LayerDomain, ErrorTypeNotFound, "conversation not found", nil, "")
	require.NotNil(t, err)
	assert.Equal(t, "req-123", err.RequestID)

	bare := NewError(context.Background(), LayerDomain, ErrorTypeNotFound, "conversation not found", nil, "")
	assert.Empty(t, bare.RequestID)
}

func TestAsErrorKeepsRequestIDAcrossLayers(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-456")
	repoErr := NewError(ctx, LayerRepository, ErrorTypeDatabaseError, "insert failed", errors.New("disk full"), "")

	domainErr := AsError(ctx, LayerDomain, repoErr, "record intake")
	require.NotNil(t, domainErr)
	assert.Equal(t, "req-456", domainErr.RequestID)
	assert.Equal(t, ErrorTypeDatabaseError, domainErr.Type)
}

func TestLogErrorWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	ctx := WithRequestID(context.Background(), "req-789")
	err := NewError(ctx, LayerRepository, ErrorTypeDatabaseError, "insert failed", errors.New("disk full"), "")
	LogError(log, err)

	out := buf.String()
	assert.Contains(t, out, "DATABASE_ERROR")
	assert.Contains(t, out, "repository")
	assert.Contains(t, out, "req-789")
	assert.Contains(t, out, "disk full")
	assert.Contains(t, out, "insert failed")
}
