package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/m-mizutani/masq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode parses the single JSON record in buf.
func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())

	return entry
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace":   LevelTrace,
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "parseLevel(%q)", in)
	}
}

func TestSlogToCharmLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, slogToCharmLevel(LevelTrace))
	assert.Equal(t, log.DebugLevel, slogToCharmLevel(slog.LevelDebug))
	assert.Equal(t, log.InfoLevel, slogToCharmLevel(slog.LevelInfo))
	assert.Equal(t, log.WarnLevel, slogToCharmLevel(slog.LevelWarn))
	assert.Equal(t, log.ErrorLevel, slogToCharmLevel(slog.LevelError))
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&Config{Level: "info", Format: "json", Service: "quotes-service", Version: "1.2.3"}, &buf)

	logger.Info("quote created", slog.String("category", "wisdom"))

	entry := decode(t, &buf)
	assert.Equal(t, "quote created", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "quotes-service", entry["service_name"])
	assert.Equal(t, "1.2.3", entry["service_version"])
	assert.Equal(t, "wisdom", entry["category"])
}

func TestNewWithWriter_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{"text", []string{"level=WARN", `msg="store slow"`, "service_name=quotes-seed"}},
		{"pretty", []string{"store slow", "service_name=quotes-seed"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(&Config{Level: "info", Format: tt.format, Service: "quotes-seed"}, &buf)

			logger.Warn("store slow")

			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestNewWithWriter_Levels(t *testing.T) {
	t.Run("trace renders as TRACE", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&Config{Level: "trace", Format: "json"}, &buf)

		Trace(context.Background(), logger, "store round trip", slog.String("operation", "find"))

		entry := decode(t, &buf)
		assert.Equal(t, "TRACE", entry["level"])
		assert.Equal(t, "find", entry["operation"])
	})

	t.Run("trace hidden at debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&Config{Level: "debug", Format: "json"}, &buf)

		Trace(context.Background(), logger, "hidden")
		logger.Debug("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})
}

func TestNewWithWriter_RollingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.log")

	var console bytes.Buffer
	logger := NewWithWriter(&Config{
		Level:  "info",
		Format: "text",
		File:   FileConfig{Enabled: true, Path: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1},
	}, &console)

	logger.Info("server listening", slog.String("password", "hunter2"))

	assert.Contains(t, console.String(), "server listening")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "server listening", entry["msg"])
	assert.NotContains(t, string(data), "hunter2")
}

func TestRedaction(t *testing.T) {
	tests := []struct {
		name   string
		attr   slog.Attr
		secret string
	}{
		{"password field", slog.String("password", "hunter2"), "hunter2"},
		{"api key field", slog.String("api_key", "k-123"), "k-123"},
		{"secret prefix", slog.String("secretSauce", "ketchup"), "ketchup"},
		{"mongo uri field", slog.String("uri", "mongodb://localhost:27017"), "localhost:27017"},
		{"postgres dsn field", slog.String("dsn", "postgres://quotes@db/quotes"), "quotes@db"},
		{"credential uri value", slog.String("target", "mongodb://quotes:s3cr3t@db:27017/quotes"), "s3cr3t"},
		{"bearer value", slog.String("header", "Bearer abc.def"), "abc.def"},
		{"jwt value", slog.String("blob", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.sig"), "eyJzdWIiOiIxIn0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{ReplaceAttr: NewReplaceAttr()}))

			logger.Info("connecting", tt.attr)

			assert.NotContains(t, buf.String(), tt.secret)
			assert.Contains(t, buf.String(), tt.attr.Key)
		})
	}

	t.Run("plain values survive", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{ReplaceAttr: NewReplaceAttr()}))

		logger.Info("listing", slog.String("author", "Seneca"))

		assert.Contains(t, buf.String(), "Seneca")
	})

	t.Run("extra options", func(t *testing.T) {
		var buf bytes.Buffer
		replace := NewReplaceAttr(masq.WithFieldName("seedFile"))
		logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{ReplaceAttr: replace}))

		logger.Info("seeding", slog.String("seedFile", "/etc/quotes.yaml"))

		assert.NotContains(t, buf.String(), "/etc/quotes.yaml")
	})

	t.Run("pretty handler redacts attrs and With", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&Config{Level: "info", Format: "pretty"}, &buf)

		logger.With(slog.String("token", "abc123")).
			WithGroup("store").
			Info("opening", slog.String("dsn", "postgres://u:p@h/db"))

		out := buf.String()
		assert.Contains(t, out, "opening")
		assert.NotContains(t, out, "abc123")
		assert.NotContains(t, out, "u:p@h")
	})
}

func TestContextLogger(t *testing.T) {
	t.Run("falls back to the default", func(t *testing.T) {
		assert.Same(t, defaultLogger, FromContext(context.Background()))
		assert.Same(t, defaultLogger, FromContext(nil)) //nolint:staticcheck // nil context is handled

		_, ok := Lookup(context.Background())
		assert.False(t, ok)
	})

	t.Run("ids accumulate on the scoped logger", func(t *testing.T) {
		var buf bytes.Buffer
		base := NewWithWriter(&Config{Level: "info", Format: "json"}, &buf)

		ctx := WithContext(context.Background(), base)
		ctx = WithRequestID(ctx, "req-1")
		ctx = WithCorrelationID(ctx, "corr-1")

		scoped, ok := Lookup(ctx)
		require.True(t, ok)

		scoped.Info("handled")

		entry := decode(t, &buf)
		assert.Equal(t, "req-1", entry["request_id"])
		assert.Equal(t, "corr-1", entry["correlation_id"])
	})
}

func TestSetDefault(t *testing.T) {
	previous := slog.Default()
	previousFallback := defaultLogger

	t.Cleanup(func() {
		slog.SetDefault(previous)
		defaultLogger = previousFallback
	})

	var buf bytes.Buffer
	logger := NewWithWriter(&Config{Level: "info", Format: "json"}, &buf)

	SetDefault(logger)

	assert.Same(t, logger, FromContext(context.Background()))

	slog.Info("via slog")
	assert.Contains(t, buf.String(), "via slog")
}

// recordingHandler keeps every record it accepts.
type recordingHandler struct {
	level   slog.Level
	records *[]string
	attrs   []slog.Attr
	err     error
}

func (h *recordingHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.level }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	parts := []string{r.Message}
	for _, a := range h.attrs {
		parts = append(parts, a.String())
	}

	*h.records = append(*h.records, strings.Join(parts, " "))

	return h.err
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)

	return &clone
}

func (h *recordingHandler) WithGroup(string) slog.Handler { return h }

func TestFanoutHandler(t *testing.T) {
	var debugRecords, warnRecords []string

	boom := errors.New("disk full")
	fan := fanoutHandler{
		&recordingHandler{level: slog.LevelDebug, records: &debugRecords},
		&recordingHandler{level: slog.LevelWarn, records: &warnRecords, err: boom},
	}

	assert.True(t, fan.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, fan.Enabled(context.Background(), LevelTrace))

	logger := slog.New(fan).With(slog.String("store", "memory"))

	logger.Debug("found quotes")
	require.NoError(t, fan.Handle(context.Background(), slog.Record{Level: slog.LevelInfo, Message: "direct"}))

	err := logger.Handler().Handle(context.Background(), slog.Record{Level: slog.LevelError, Message: "insert failed"})
	require.ErrorIs(t, err, boom)

	assert.Equal(t, []string{"found quotes store=memory", "direct", "insert failed store=memory"}, debugRecords)
	assert.Equal(t, []string{"insert failed store=memory"}, warnRecords)
}
