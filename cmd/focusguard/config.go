package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/specvital/focusguard/pkg/text"
)

// configNames are looked up in the working directory, in order, when no
// --config flag is given.
var configNames = []string{
	".focusguard.toml",
	".focusguard.yaml",
	".focusguard.yml",
	".focusguard.json",
}

// fileConfig holds the settings read from a config file. Nil and empty
// fields were not set.
type fileConfig struct {
	AllowDisabledTests *bool
	BasePath           *string
	TabWidth           *int
	Color              string
	Format             string
	Forbid             []string
	Extended           *bool
	Include            []string
	Exclude            []string
	Workers            *int
	Timeout            *time.Duration
	MaxFileSize        *int64
}

// findConfig returns the first default config file present in dir, or "".
func findConfig(dir string) string {
	for _, name := range configNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// loadConfig reads a TOML, YAML or JSON config file chosen by extension.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var raw map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if decodeErr := yaml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".toml":
		if decodeErr := toml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".json":
		if decodeErr := json.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if raw == nil {
		return cfg, nil
	}

	cfg, err = decodeConfigMap(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// normalizeKey folds allowDisabledTests, allow_disabled_tests and
// allow-disabled-tests to the same key.
func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.NewReplacer("_", "", "-", "").Replace(k)
}

func decodeConfigMap(raw map[string]any) (fileConfig, error) {
	var cfg fileConfig

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v := raw[key]
		var err error
		switch normalizeKey(key) {
		case "allowdisabledtests":
			cfg.AllowDisabledTests, err = boolPtr(v)
		case "basepath":
			var s string
			s, err = toString(v)
			cfg.BasePath = &s
		case "tabwidth":
			n := text.TabWidthFrom(v)
			cfg.TabWidth = &n
		case "color":
			cfg.Color, err = toString(v)
		case "format":
			cfg.Format, err = toString(v)
		case "forbid", "forbidden":
			cfg.Forbid, err = toStrings(v)
		case "extended", "extendedaliases":
			cfg.Extended, err = boolPtr(v)
		case "include", "patterns":
			cfg.Include, err = toStrings(v)
		case "exclude", "excludepatterns":
			cfg.Exclude, err = toStrings(v)
		case "workers", "jobs":
			var n int64
			n, err = toInt(v)
			w := int(n)
			cfg.Workers = &w
		case "timeout":
			var d time.Duration
			d, err = toDuration(v)
			cfg.Timeout = &d
		case "maxfilesize":
			var n int64
			n, err = toInt(v)
			cfg.MaxFileSize = &n
		default:
			return cfg, fmt.Errorf("unknown key %q", key)
		}
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", key, err)
		}
	}
	return cfg, nil
}

var errType = errors.New("unexpected type")

func boolPtr(v any) (*bool, error) {
	switch b := v.(type) {
	case bool:
		return &b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return nil, err
		}
		return &parsed, nil
	default:
		return nil, fmt.Errorf("%w %T, want bool", errType, v)
	}
}

func toString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case nil:
		return "", nil
	case bool:
		// base_path = false disables path rewriting.
		if !s {
			return "", nil
		}
	}
	return "", fmt.Errorf("%w %T, want string", errType, v)
}

func toStrings(v any) ([]string, error) {
	switch s := v.(type) {
	case string:
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	case []string:
		return s, nil
	case []any:
		out := make([]string, 0, len(s))
		for i, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d: %w %T, want string", i, errType, item)
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w %T, want list of strings", errType, v)
	}
}

func toInt(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%d out of range", n)
		}
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int64(n), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
	default:
		return 0, fmt.Errorf("%w %T, want integer", errType, v)
	}
}

// toDuration accepts Go duration strings ("30s", "2m") or a number of
// seconds.
func toDuration(v any) (time.Duration, error) {
	if s, ok := v.(string); ok {
		return time.ParseDuration(strings.TrimSpace(s))
	}
	n, err := toInt(v)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Second, nil
}
