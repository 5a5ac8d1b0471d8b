//go:build integration

package integration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/specvital/focusguard/pkg/checker"
)

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Fixture is a source tree under testdata/fixtures checked with a fixed
// set of options.
type Fixture struct {
	AllowDisabledTests *bool    `yaml:"allow_disabled_tests"`
	Dir                string   `yaml:"dir"`
	Extended           bool     `yaml:"extended"`
	Forbid             []string `yaml:"forbid"`
	Name               string   `yaml:"name"`
	TabWidth           int      `yaml:"tab_width"`
}

// FixturesConfig holds the list of fixtures to check.
type FixturesConfig struct {
	Fixtures []Fixture `yaml:"fixtures"`
}

// Root returns the absolute directory of the fixture tree.
func (f Fixture) Root() (string, error) {
	testDataDir, err := getTestDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Abs(filepath.Join(testDataDir, "fixtures", f.Dir))
}

// Options returns the checker options the fixture is checked with.
// Paths are reported relative to root.
func (f Fixture) Options(root string) []checker.Option {
	opts := []checker.Option{
		checker.WithBasePath(root),
		checker.WithExtendedAliases(f.Extended),
		checker.WithForbidden(f.Forbid...),
	}
	if f.AllowDisabledTests != nil {
		opts = append(opts, checker.WithAllowDisabledTests(*f.AllowDisabledTests))
	}
	if f.TabWidth != 0 {
		opts = append(opts, checker.WithTabWidth(f.TabWidth))
	}
	return opts
}

// LoadFixtures loads fixture definitions from testdata/fixtures.yaml.
func LoadFixtures() (*FixturesConfig, error) {
	testDataDir, err := getTestDataDir()
	if err != nil {
		return nil, err
	}
	return loadFixturesFromPath(filepath.Join(testDataDir, "fixtures.yaml"))
}

func loadFixturesFromPath(path string) (*FixturesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures config from %s: %w", path, err)
	}

	var config FixturesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshal fixtures config: %w", err)
	}

	if err := validateFixturesConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid fixtures config: %w", err)
	}

	return &config, nil
}

func validateFixturesConfig(config *FixturesConfig) error {
	if len(config.Fixtures) == 0 {
		return errors.New("no fixtures defined")
	}

	seen := make(map[string]bool)
	for i, f := range config.Fixtures {
		if f.Name == "" {
			return fmt.Errorf("fixture %d: name is required", i)
		}
		if seen[f.Name] {
			return fmt.Errorf("fixture %s: duplicate name", f.Name)
		}
		seen[f.Name] = true
		if f.Dir == "" {
			return fmt.Errorf("fixture %s: dir is required", f.Name)
		}
	}
	return nil
}

func getTestDataDir() (string, error) {
	integrationDir, err := getIntegrationDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(integrationDir, "testdata"), nil
}

func getIntegrationDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return wd, nil
}
