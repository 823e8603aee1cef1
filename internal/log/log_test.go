package log

import (
	"bytes"
	"context"
	stderrs "errors"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/olusolaa/stack-sync/internal/errors"
)

func TestNewLogger_InvalidSettings(t *testing.T) {
	_, err := NewLogger(Config{Level: "verbose", Format: FormatText})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConfigValidation, apperrors.GetCode(err))

	_, err = NewLogger(Config{Level: LevelInfo, Format: "xml"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConfigValidation, apperrors.GetCode(err))
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(Config{Level: LevelWarn, Format: FormatText, Output: &buf})
	require.NoError(t, err)

	ctx := context.Background()
	logger.Debugf(ctx, "hidden %d", 1)
	logger.Infof(ctx, "hidden too")
	logger.Warnf(ctx, "shown %s", "warning")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warning")
}

func TestLogger_JSONWithAppError(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(Config{Level: LevelDebug, Format: FormatJSON, Output: &buf})
	require.NoError(t, err)

	cause := apperrors.Wrap(stderrs.New("throttled"), apperrors.CodePlatformAPIError, "UpdateFunctionCode failed")
	logger.WithFields(map[string]any{"resource": "Function1"}).Errorf(context.Background(), cause, "sync of %s failed", "Function1")

	var entry map[string]any
	require.NoError(t, jsoniter.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "sync of Function1 failed", entry["msg"])
	assert.Equal(t, "Function1", entry["resource"])
	assert.Equal(t, "PLATFORM_API_ERROR", entry["error_code"])
	assert.Equal(t, "throttled", entry["error_wrapped"])
}

func TestLogger_WithFieldsStableOrder(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(Config{Level: LevelInfo, Format: FormatText, Output: &buf})
	require.NoError(t, err)

	logger.WithFields(map[string]any{"zeta": 1, "alpha": 2}).Infof(context.Background(), "ordered")
	line := buf.String()
	assert.Less(t, strings.Index(line, "alpha="), strings.Index(line, "zeta="))
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Errorf(context.Background(), stderrs.New("x"), "dropped")
	})
}
