package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolveYAML is a [kong.ConfigurationLoader] that parses YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolveYAML, "/path/to/config.yaml")
//
// The YAML document is a flat mapping of flag names to values. Flag names
// with hyphens (e.g., "log-level") may use underscores in the config file
// (e.g., "log_level"). Numbers are converted to strings for Kong's flag
// parsers.
//
// Example config file:
//
//	log_level: debug
//	log_format: json
//	log_pretty: true
//
// Command-line flags override config file values.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	var values map[string]any

	err := yaml.NewDecoder(r).Decode(&values)
	if err != nil {
		if errors.Is(err, io.EOF) {
			// Empty file - return empty config
			return config{}, nil
		}

		return nil, err
	}

	return config(flatten(values)), nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys may use
	// underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flatten converts decoded YAML values to a map suitable for flag resolution.
// Kong requires numbers as strings for parsing.
func flatten(values map[string]any) map[string]any {
	result := make(map[string]any, len(values))

	for key, value := range values {
		switch num := value.(type) {
		case int:
			result[key] = strconv.Itoa(num)
		case int64:
			result[key] = strconv.FormatInt(num, 10)
		case uint64:
			result[key] = strconv.FormatUint(num, 10)
		case float64:
			result[key] = strconv.FormatFloat(num, 'f', -1, 64)
		default:
			result[key] = value
		}
	}

	return result
}
