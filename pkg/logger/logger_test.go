package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DEBUG,
		"INFO":    INFO,
		"warning": WARN,
		"Error":   ERROR,
		"fatal":   FATAL,
		"bogus":   INFO,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, WARN)

	l.Infof("tunnel %d updated", 1)
	assert.Empty(t, buf.String())

	l.Warnf("tunnel %d missing port", 2)
	assert.Contains(t, buf.String(), "[WARN]")
	assert.Contains(t, buf.String(), "tunnel 2 missing port")

	buf.Reset()
	l.SetLevel(DEBUG)
	l.Debugf("merged payload")
	assert.Contains(t, buf.String(), "[DEBUG]")
	assert.Equal(t, DEBUG, l.GetLevel())
}
