package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "gridbill" {
		t.Errorf("expected root command use 'gridbill', got %s", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("root command should have a short description")
	}
	if !rootCmd.HasSubCommands() {
		t.Error("root command should have subcommands")
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	expected := []string{
		"project", "compare", "tariffs", "heatmap", "headroom",
		"sensitivity", "uncertainty", "serve", "validate", "version",
	}
	for _, name := range expected {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %s to be registered", name)
		}
	}
}

func TestHelpOutput(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOutput(&buf)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("help should not error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"project", "tariffs", "heatmap", "serve"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOutput(&buf)
	rootCmd.SetArgs([]string{"definitely-not-a-command"})

	if err := rootCmd.Execute(); err == nil {
		t.Error("expected an error for an unknown command")
	}
}

func TestValidateMissingFile(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOutput(&buf)
	rootCmd.SetArgs([]string{"validate", "no-such-file.yaml"})

	if err := rootCmd.Execute(); err == nil {
		t.Error("expected an error validating a missing file")
	}
}

func TestTariffsList(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOutput(&buf)
	rootCmd.SetArgs([]string{"tariffs", "list", "--state", "VA"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("tariffs list failed: %v", err)
	}
}

func TestTariffsShowUnknown(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOutput(&buf)
	rootCmd.SetArgs([]string{"tariffs", "show", "no-such-tariff"})

	if err := rootCmd.Execute(); err == nil {
		t.Error("expected an error for an unknown tariff id")
	}
}

func TestProjectWithProfile(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOutput(&buf)
	rootCmd.SetArgs([]string{"project", "--profile", "pso-oklahoma"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("project failed: %v", err)
	}
}

func TestProjectUnknownProfile(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOutput(&buf)
	rootCmd.SetArgs([]string{"project", "--profile", "atlantis-power"})

	if err := rootCmd.Execute(); err == nil {
		t.Error("expected an error for an unknown profile")
	}
}
