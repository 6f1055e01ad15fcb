package lcov

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

var defaultMarkers = []string{"/nix/store"}

func TestParse(t *testing.T) {
	tt := []struct {
		name     string
		input    string
		markers  []string
		expected map[string][]int
	}{
		{
			name: "zero hits collected, non-zero skipped",
			input: `SF:src/lib.rs
DA:10,0
DA:11,5
DA:12,0
end_of_record
`,
			markers:  defaultMarkers,
			expected: map[string][]int{"src/lib.rs": {10, 12}},
		},
		{
			name: "excluded section never collected",
			input: `SF:/nix/store/abc123/src/dep.rs
DA:1,0
end_of_record
SF:src/lib.rs
DA:3,0
end_of_record
`,
			markers:  defaultMarkers,
			expected: map[string][]int{"src/lib.rs": {3}},
		},
		{
			name: "repeated sections accumulate",
			input: `SF:src/lib.rs
DA:1,0
end_of_record
SF:src/lib.rs
DA:5,0
end_of_record
`,
			markers:  defaultMarkers,
			expected: map[string][]int{"src/lib.rs": {1, 5}},
		},
		{
			name: "malformed data lines silently skipped",
			input: `SF:src/lib.rs
DA:notanumber,0
DA:7
DA:,
DA:8,0
end_of_record
`,
			markers:  defaultMarkers,
			expected: map[string][]int{"src/lib.rs": {8}},
		},
		{
			name: "data outside a section ignored",
			input: `DA:1,0
SF:src/lib.rs
DA:2,0
end_of_record
DA:3,0
`,
			markers:  defaultMarkers,
			expected: map[string][]int{"src/lib.rs": {2}},
		},
		{
			name: "unrelated record types ignored",
			input: `TN:
SF:src/lib.rs
FN:3,main
FNDA:0,main
LH:5
LF:10
DA:4,0
end_of_record
`,
			markers:  defaultMarkers,
			expected: map[string][]int{"src/lib.rs": {4}},
		},
		{
			name: "fully covered file still registered",
			input: `SF:src/lib.rs
DA:1,3
end_of_record
`,
			markers:  defaultMarkers,
			expected: map[string][]int{"src/lib.rs": {}},
		},
		{
			name: "custom markers",
			input: `SF:vendor/dep.go
DA:1,0
end_of_record
SF:pkg/a.go
DA:2,0
end_of_record
`,
			markers:  []string{"vendor/"},
			expected: map[string][]int{"pkg/a.go": {2}},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			profile, err := Parse(strings.NewReader(tc.input), tc.markers)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(map[string][]int(profile), tc.expected) {
				t.Errorf("Parse result = %v, want %v", profile, tc.expected)
			}
		})
	}
}

func TestParseDuplicateDataLines(t *testing.T) {
	input := `SF:src/lib.rs
DA:5,0
DA:5,0
end_of_record
`
	profile, err := Parse(strings.NewReader(input), defaultMarkers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Raw storage keeps the duplicate; the sorted view drops it.
	if !reflect.DeepEqual(profile["src/lib.rs"], []int{5, 5}) {
		t.Errorf("expected raw duplicates to be stored, got %v", profile["src/lib.rs"])
	}
	if !reflect.DeepEqual(profile.UncoveredLines("src/lib.rs"), []int{5}) {
		t.Errorf("expected de-duplicated view, got %v", profile.UncoveredLines("src/lib.rs"))
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coverage.lcov")
	content := "SF:src/lib.rs\nDA:1,0\nend_of_record\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile, err := ParseFile(path, defaultMarkers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(profile["src/lib.rs"], []int{1}) {
		t.Errorf("unexpected profile: %v", profile)
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.lcov"), defaultMarkers)
	if err == nil {
		t.Error("expected an error for a missing coverage file")
	}
}
