package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-a", "http://10.0.0.1:9090", "-t", "10"}, expectPanic: false,
			expected: &Config{ServerURL: "http://10.0.0.1:9090", RequestTimeout: 10 * time.Second}},
		{name: "Test2 prefix", args: []string{"cmd", "-p=/api/v1"}, expectPanic: false,
			expected: &Config{APIPrefix: "/api/v1"}},
		{name: "Test3 foreign flags ignored", args: []string{"cmd", "-x", "1", "-t", "2"}, expectPanic: false,
			expected: &Config{RequestTimeout: 2 * time.Second}},
		{name: "Test4 incorrect timeout", args: []string{"cmd", "-a", "http://10.0.0.1:9090", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

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
