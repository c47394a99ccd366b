package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "conf", "numgen.yaml")

	var stdout, stderr bytes.Buffer
	if err := run([]string{"init", "--config", cfgPath}, &stdout, &stderr); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(stderr.String(), "wrote config to "+cfgPath) {
		t.Errorf("stderr = %q", stderr.String())
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	got := string(data)
	for _, want := range []string{"input: numerics.yaml\n", "target: csharp\n", "order: lexical\n", "check: true\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("config missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "output:") {
		t.Errorf("output should stay derived from the target:\n%s", got)
	}
}

func TestInitAppliesFlagsAndDrivesGenerate(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	input := writeNumerics(t, dir)
	output := filepath.Join(dir, "irc", "numerics.go")
	cfgPath := filepath.Join(dir, "numgen.yaml")

	var stdout, stderr bytes.Buffer
	args := []string{"init", "--config", cfgPath, "-i", input, "-o", output, "-t", "go", "--package", "irc", "--only", "ERR_"}
	if err := run(args, &stdout, &stderr); err != nil {
		t.Fatalf("init: %v", err)
	}

	stderr.Reset()
	if err := run([]string{"--config", cfgPath}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr.String())
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "package irc\n") {
		t.Errorf("package not saved:\n%s", out)
	}
	if !strings.Contains(out, `var ERR_NOSUCHNICK = NewNumeric("ERR_NOSUCHNICK", 401)`) {
		t.Errorf("missing ERR_NOSUCHNICK:\n%s", out)
	}
	if strings.Contains(out, "RPL_WELCOME") {
		t.Errorf("only filter not saved:\n%s", out)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfgPath := writeTestFile(t, dir, "numgen.yaml", "target: go\n")

	var stdout, stderr bytes.Buffer
	err := run([]string{"init", "--config", cfgPath}, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("err = %v, want already exists", err)
	}
	data, _ := os.ReadFile(cfgPath)
	if string(data) != "target: go\n" {
		t.Errorf("existing config modified: %q", data)
	}

	if err := run([]string{"init", "--config", cfgPath, "--force"}, &stdout, &stderr); err != nil {
		t.Fatalf("init --force: %v", err)
	}
	data, _ = os.ReadFile(cfgPath)
	if !strings.Contains(string(data), "target: csharp") {
		t.Errorf("--force did not rewrite defaults:\n%s", data)
	}
}

func TestInitRejectsInvalidSettings(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "numgen.yaml")

	var stdout, stderr bytes.Buffer
	err := run([]string{"init", "--config", cfgPath, "-t", "cobol"}, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("err = %v, want invalid config", err)
	}
	if _, err := os.Stat(cfgPath); !os.IsNotExist(err) {
		t.Errorf("config written despite invalid settings")
	}
}
