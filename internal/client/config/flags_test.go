package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-d", "/tmp/lib.db", "-b", "badger", "-l", "debug"},
			expected: &Config{DBPath: "/tmp/lib.db", Backend: "badger", LogLevel: "debug"}},
		{name: "foreign flags are ignored", args: []string{"cmd", "-c", "conf.json", "-x", "-d", "a.db"},
			expected: &Config{DBPath: "a.db"}},
		{name: "no flags keep values", args: []string{"cmd"},
			expected: &Config{}},
		{name: "missing value", args: []string{"cmd", "-d"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
