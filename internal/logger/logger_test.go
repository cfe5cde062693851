package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	l := newLogger()

	formatter, ok := l.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)
	assert.Equal(t, time.RFC3339Nano, formatter.TimestampFormat)
	assert.True(t, formatter.FullTimestamp)
}

func TestGetLogger_Fallback(t *testing.T) {
	entry := G(context.Background())
	require.NotNil(t, entry)
	assert.Equal(t, L.Logger, entry.Logger)
}

func TestWithLogger(t *testing.T) {
	custom := logrus.NewEntry(logrus.New()).WithField("request_id", "abc")
	ctx := WithLogger(context.Background(), custom)

	entry := G(ctx)
	assert.Equal(t, custom.Logger, entry.Logger)
	assert.Equal(t, "abc", entry.Data["request_id"])
}

func TestSetLogLevel(t *testing.T) {
	original := L.Logger.GetLevel()
	defer L.Logger.SetLevel(original)

	require.NoError(t, SetLogLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())

	assert.Error(t, SetLogLevel("loud"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())
}

func TestSetLogFormat_JSON(t *testing.T) {
	l := logrus.New()
	var buf bytes.Buffer
	l.SetOutput(&buf)

	require.NoError(t, setFormat(l, "json"))
	l.WithField("skills", 3).Info("model loaded")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "model loaded", line["message"])
	assert.Equal(t, "info", line["level"])
	assert.EqualValues(t, 3, line["skills"])
	assert.Contains(t, line, "timestamp")
}

func TestSetLogFormat_Unknown(t *testing.T) {
	l := logrus.New()
	err := setFormat(l, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log format")
}
