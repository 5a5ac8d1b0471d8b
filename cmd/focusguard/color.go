package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// colorMode selects when diagnostics contexts are colorized.
type colorMode int

const (
	colorAuto colorMode = iota
	colorAlways
	colorNever
)

func (m colorMode) String() string {
	switch m {
	case colorAlways:
		return "always"
	case colorNever:
		return "never"
	default:
		return "auto"
	}
}

func parseColorMode(s string) (colorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return colorAuto, nil
	case "always":
		return colorAlways, nil
	case "never":
		return colorNever, nil
	default:
		return colorAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

// envMap turns KEY=VALUE pairs into a map. Later pairs win.
func envMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		m[k] = v
	}
	return m
}

// colorEnabled resolves the mode against the environment and out.
// In auto mode the priority is TERM=dumb, NO_COLOR, CLICOLOR=0, then
// CLICOLOR_FORCE or FORCE_COLOR, then whether out is a terminal.
func colorEnabled(mode colorMode, env map[string]string, out io.Writer) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	}

	if env["TERM"] == "dumb" {
		return false
	}
	if _, ok := env["NO_COLOR"]; ok {
		return false
	}
	if v, ok := env["CLICOLOR"]; ok && v == "0" {
		return false
	}
	if forceColor(env) {
		return true
	}
	return isTerminal(out)
}

func forceColor(env map[string]string) bool {
	for _, key := range []string{"CLICOLOR_FORCE", "FORCE_COLOR"} {
		if v, ok := env[key]; ok && v != "" && v != "0" {
			return true
		}
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
