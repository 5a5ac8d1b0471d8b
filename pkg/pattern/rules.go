package pattern

import (
	"fmt"

	"github.com/specvital/focusguard/pkg/domain"
)

// Focused and disabled call paths recognized by jasmine, minijasminenode,
// angular and mocha.
var (
	FocusedPaths = []string{
		// jasmine / minijasminenode / angular
		"iit",
		"ddescribe",

		// jasmine 2.0 focused specs
		"fit",
		"fdescribe",

		// mocha
		"it.only",
		"describe.only",
	}

	DisabledPaths = []string{
		"xit",
		"xdescribe",
	}
)

// Extended aliases used by jest, mocha's TDD/BDD interfaces and jasmine.
var (
	ExtendedFocusedPaths = []string{
		"fcontext",
		"fspecify",
		"test.only",
		"context.only",
		"suite.only",
		"specify.only",
	}

	ExtendedDisabledPaths = []string{
		"xtest",
		"xcontext",
		"xspecify",
	}
)

// Rule is a forbidden path together with the family it belongs to.
type Rule struct {
	Spec   Spec
	Status domain.TestStatus
}

// RuleSet selects which families end up in the forbidden set.
type RuleSet struct {
	// AllowDisabledTests keeps xit/xdescribe (and their extended aliases)
	// out of the forbidden set.
	AllowDisabledTests bool
	// Extended adds the jest/mocha alias families.
	Extended bool
	// Extra paths are always forbidden and classified as focused.
	Extra []string
}

// DefaultRuleSet forbids focused calls and allows disabled ones.
func DefaultRuleSet() RuleSet {
	return RuleSet{AllowDisabledTests: true}
}

// Rules parses the selected families into rules. Duplicate paths are kept
// once, at their first position.
func (rs RuleSet) Rules() ([]Rule, error) {
	var rules []Rule
	seen := make(map[string]bool)

	add := func(paths []string, status domain.TestStatus) error {
		for _, p := range paths {
			spec, err := Parse(p)
			if err != nil {
				return err
			}
			key := spec.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			rules = append(rules, Rule{Spec: spec, Status: status})
		}
		return nil
	}

	groups := []struct {
		paths   []string
		status  domain.TestStatus
		enabled bool
	}{
		{FocusedPaths, domain.TestStatusFocused, true},
		{ExtendedFocusedPaths, domain.TestStatusFocused, rs.Extended},
		{rs.Extra, domain.TestStatusFocused, true},
		{DisabledPaths, domain.TestStatusSkipped, !rs.AllowDisabledTests},
		{ExtendedDisabledPaths, domain.TestStatusSkipped, !rs.AllowDisabledTests && rs.Extended},
	}
	for _, g := range groups {
		if !g.enabled {
			continue
		}
		if err := add(g.paths, g.status); err != nil {
			return nil, fmt.Errorf("forbidden paths: %w", err)
		}
	}

	return rules, nil
}
