package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestParse_ManifestFlagForms(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"long flag", []string{"--manifest", "boot.hcl"}},
		{"short flag", []string{"-m", "boot.hcl"}},
		{"positional", []string{"boot.hcl"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			cfg, shouldExit, err := Parse(tc.args, &out)
			if err != nil {
				t.Fatalf("Parse returned an unexpected error: %v", err)
			}
			if shouldExit {
				t.Fatal("Parse requested an exit for valid arguments")
			}
			if cfg.ManifestPath != "boot.hcl" {
				t.Errorf("ManifestPath = %q, want boot.hcl", cfg.ManifestPath)
			}
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := Parse([]string{"boot.hcl"}, &out)
	if err != nil {
		t.Fatalf("Parse returned an unexpected error: %v", err)
	}

	if cfg.LogFormat != "json" || cfg.LogLevel != "info" {
		t.Errorf("unexpected logging defaults: format=%q level=%q", cfg.LogFormat, cfg.LogLevel)
	}
	if cfg.StatusPort != 0 || cfg.StrictDeps {
		t.Errorf("unexpected defaults: port=%d strict=%v", cfg.StatusPort, cfg.StrictDeps)
	}
}

func TestParse_OptionFlags(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := Parse([]string{"--strict-deps", "--status-port", "8081", "--log-level", "DEBUG", "--log-format", "text", "boot.hcl"}, &out)
	if err != nil {
		t.Fatalf("Parse returned an unexpected error: %v", err)
	}

	if !cfg.StrictDeps || cfg.StatusPort != 8081 {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "text" {
		t.Errorf("logging flags not normalized: level=%q format=%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestParse_NoPathPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse(nil, &out)
	if err != nil {
		t.Fatalf("Parse returned an unexpected error: %v", err)
	}
	if !shouldExit || cfg != nil {
		t.Error("expected a clean usage exit when no manifest path is given")
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Error("usage text was not printed")
	}
}

func TestParse_InvalidValuesGetExitCode(t *testing.T) {
	cases := [][]string{
		{"--log-format", "yaml", "boot.hcl"},
		{"--log-level", "loud", "boot.hcl"},
	}

	for _, args := range cases {
		var out bytes.Buffer
		_, _, err := Parse(args, &out)
		exitErr, ok := err.(*ExitError)
		if !ok {
			t.Fatalf("args %v: expected ExitError, got %v", args, err)
		}
		if exitErr.Code != 2 {
			t.Errorf("args %v: exit code = %d, want 2", args, exitErr.Code)
		}
	}
}
