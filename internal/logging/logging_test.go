package logging

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelFallback(t *testing.T) {
	logger, closer := New(Config{Level: "not-a-level"})
	defer closer.Close()
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	logger, closer = New(Config{Level: "debug"})
	defer closer.Close()
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "amdash.log")
	logger, closer := New(Config{Format: "json", File: path})
	logger.Info().Msg("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestNew_FileOpenFailureWarns(t *testing.T) {
	orig := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	// The parent directory does not exist, so the sink cannot be opened.
	path := filepath.Join(t.TempDir(), "missing", "amdash.log")
	logger, closer := New(Config{Format: "json", File: path})
	logger.Info().Msg("still logging")
	require.NoError(t, closer.Close())

	require.NoError(t, w.Close())
	os.Stderr = orig
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "log file could not be opened")
	assert.Contains(t, string(out), "still logging", "console writer keeps working")
}

func TestTraceID_RoundTrip(t *testing.T) {
	id := NewTraceID()
	require.Len(t, id, 26, "ULIDs are 26 characters")

	ctx := ContextWithTraceID(context.Background(), id)
	assert.Equal(t, id, TraceIDFromContext(ctx))
	assert.Empty(t, TraceIDFromContext(context.Background()))
}

func TestNewTraceID_Unique(t *testing.T) {
	assert.NotEqual(t, NewTraceID(), NewTraceID())
}

func TestFromContext_NeverNil(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log)

	logger, closer := New(Config{})
	defer closer.Close()
	ctx := WithContext(context.Background(), ComponentLogger(logger, "test"))
	assert.NotNil(t, FromContext(ctx))
}
