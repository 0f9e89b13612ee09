package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	flag := &kong.Flag{Value: &kong.Value{Name: name}}

	value, err := r.Resolve(nil, nil, flag)
	if err != nil {
		t.Fatalf("Resolve(%q): %v", name, err)
	}

	return value
}

func TestResolveYAML(t *testing.T) {
	src := strings.NewReader(`
log_level: debug
log-format: json
log_pretty: false
`)

	resolver, err := resolveYAML(src)
	if err != nil {
		t.Fatalf("resolveYAML: %v", err)
	}

	// Underscore key matches hyphenated flag name.
	if got := resolveFlag(t, resolver, "log-level"); got != "debug" {
		t.Errorf("log-level = %v, want %q", got, "debug")
	}

	// Hyphenated key matches directly.
	if got := resolveFlag(t, resolver, "log-format"); got != "json" {
		t.Errorf("log-format = %v, want %q", got, "json")
	}

	if got := resolveFlag(t, resolver, "log-pretty"); got != false {
		t.Errorf("log-pretty = %v, want false", got)
	}

	// Unknown flags resolve to nil so Kong falls back to defaults.
	if got := resolveFlag(t, resolver, "unknown"); got != nil {
		t.Errorf("unknown = %v, want nil", got)
	}
}

func TestResolveYAMLEmpty(t *testing.T) {
	resolver, err := resolveYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("resolveYAML on empty input: %v", err)
	}

	if got := resolveFlag(t, resolver, "log-level"); got != nil {
		t.Errorf("log-level = %v, want nil", got)
	}
}

func TestFlattenNumbers(t *testing.T) {
	got := flatten(map[string]any{
		"int":    42,
		"int64":  int64(-7),
		"uint64": uint64(9),
		"float":  1.5,
		"string": "s",
		"bool":   true,
	})

	want := map[string]any{
		"int":    "42",
		"int64":  "-7",
		"uint64": "9",
		"float":  "1.5",
		"string": "s",
		"bool":   true,
	}

	for key, val := range want {
		if got[key] != val {
			t.Errorf("flatten[%q] = %v, want %v", key, got[key], val)
		}
	}
}
