package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewInfo(t *testing.T) {
	tests := []struct {
		name                  string
		version, date, commit string
		want                  Info
	}{
		{
			name:    "all values set",
			version: "v1.0.0", date: "2026-01-01", commit: "abc123",
			want: Info{Version: "v1.0.0", Date: "2026-01-01", Commit: "abc123"},
		},
		{
			name: "nothing set by ldflags",
			want: Info{Version: "N/A", Date: "N/A", Commit: "N/A"},
		},
		{
			name:    "only version",
			version: "v0.3.1",
			want:    Info{Version: "v0.3.1", Date: "N/A", Commit: "N/A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, *NewInfo(tt.version, tt.date, tt.commit))
		})
	}
}

func TestFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	logger.Info("Build info", NewInfo("v1.0.0", "", "abc123").Fields()...)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "v1.0.0", ctx["version"])
		assert.Equal(t, "N/A", ctx["build_date"])
		assert.Equal(t, "abc123", ctx["commit"])
	}
}
