package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRead(t *testing.T) {
	tt := []struct {
		name          string
		configContent string
		noFile        bool
		expected      *Config
		expectedErr   bool
	}{
		{
			name:   "default config when no file exists",
			noFile: true,
			expected: &Config{
				Context:          3,
				ExcludeMarkers:   []string{"/nix/store"},
				Ignore:           []string{},
				SourceExtensions: []string{},
			},
		},
		{
			name: "valid config with all fields",
			configContent: `
context = 5
exclude_markers = ["/nix/store", "/usr/lib"]
ignore = ["target/**", "benches/**"]
source_extensions = [".rs"]
`,
			expected: &Config{
				Context:          5,
				ExcludeMarkers:   []string{"/nix/store", "/usr/lib"},
				Ignore:           []string{"target/**", "benches/**"},
				SourceExtensions: []string{".rs"},
			},
		},
		{
			name: "partial config keeps defaults",
			configContent: `
ignore = ["examples/**"]
`,
			expected: &Config{
				Context:          3,
				ExcludeMarkers:   []string{"/nix/store"},
				Ignore:           []string{"examples/**"},
				SourceExtensions: []string{},
			},
		},
		{
			name: "non-positive context falls back to default",
			configContent: `
context = 0
`,
			expected: &Config{
				Context:          3,
				ExcludeMarkers:   []string{"/nix/store"},
				Ignore:           []string{},
				SourceExtensions: []string{},
			},
		},
		{
			name:          "malformed config returns defaults and error",
			configContent: `context = [not toml`,
			expected: &Config{
				Context:          3,
				ExcludeMarkers:   []string{"/nix/store"},
				Ignore:           []string{},
				SourceExtensions: []string{},
			},
			expectedErr: true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			root := t.TempDir()
			if !tc.noFile {
				path := filepath.Join(root, "uncovered.toml")
				if err := os.WriteFile(path, []byte(tc.configContent), 0o644); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			config, err := Read(root)
			if tc.expectedErr && err == nil {
				t.Error("expected an error")
			}
			if !tc.expectedErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(config, tc.expected) {
				t.Errorf("Read() = %+v, want %+v", config, tc.expected)
			}
		})
	}
}
