package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	tests := []struct {
		name     string
		build    BuildInfo
		expected string
	}{
		{
			name:     "development",
			build:    BuildInfo{Version: "dev", BuildTime: "unknown", GitCommit: "unknown"},
			expected: "dev (development build)",
		},
		{
			name:     "release",
			build:    BuildInfo{Version: "v1.2.3", BuildTime: "2025-03-01T10:20:30Z", GitCommit: "0123456789abcdef"},
			expected: "v1.2.3 (built 2025-03-01 10:20:30 UTC, commit 01234567)",
		},
		{
			name:     "short commit",
			build:    BuildInfo{Version: "v1.2.3", BuildTime: "2025-03-01T10:20:30Z", GitCommit: "abc"},
			expected: "v1.2.3 (built 2025-03-01 10:20:30 UTC, commit abc)",
		},
		{
			name:     "unparsable time",
			build:    BuildInfo{Version: "v1.2.3", BuildTime: "yesterday"},
			expected: "v1.2.3 (built yesterday)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := info(tt.build); got != tt.expected {
				t.Errorf("info() = %q; want %q", got, tt.expected)
			}
		})
	}
}

func TestGetBuildInfo(t *testing.T) {
	b := GetBuildInfo()
	if b.Version != Version {
		t.Errorf("Version = %q; want %q", b.Version, Version)
	}
	if !strings.HasPrefix(b.GoVersion, "go") && !strings.HasPrefix(b.GoVersion, "devel") {
		t.Errorf("unexpected GoVersion %q", b.GoVersion)
	}
	if !strings.Contains(b.Platform, "/") {
		t.Errorf("unexpected Platform %q", b.Platform)
	}
}
