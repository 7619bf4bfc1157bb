package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andrew-torda/embedsub/pkg/logger"
)

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(logger.Config{Level: "info", Format: "json", Out: &buf})
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("Total AA=12.", zap.Int("total_aa", 12))
	require.NoError(t, log.Sync())

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "info", m["level"])
	assert.Equal(t, "Total AA=12.", m["msg"])
	assert.EqualValues(t, 12, m["total_aa"])
	assert.Contains(t, m, "timestamp")
}

func TestConsoleDebug(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(logger.Config{Level: "debug", Out: &buf})
	require.NoError(t, err)
	log.Debug("shown")
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "shown")
}

func TestBadConfig(t *testing.T) {
	_, err := logger.New(logger.Config{Level: "loud"})
	assert.Error(t, err)
	_, err = logger.New(logger.Config{Format: "xml"})
	assert.Error(t, err)
}
