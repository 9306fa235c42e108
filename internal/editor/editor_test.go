package editor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveEditorConfig(t *testing.T) {
	result := ResolveEditor("nano")
	if result != "nano" {
		t.Errorf("expected nano, got %q", result)
	}
}

func TestResolveEditorEnvEditor(t *testing.T) {
	t.Setenv("EDITOR", "vim")
	t.Setenv("VISUAL", "code")
	result := ResolveEditor("")
	if result != "vim" {
		t.Errorf("expected vim (from EDITOR), got %q", result)
	}
}

func TestResolveEditorEnvVisual(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "code")
	result := ResolveEditor("")
	if result != "code" {
		t.Errorf("expected code (from VISUAL), got %q", result)
	}
}

func TestResolveEditorFallback(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	result := ResolveEditor("")
	if result != "vi" {
		t.Errorf("expected vi (fallback), got %q", result)
	}
}

func TestEditWithTrueCommand(t *testing.T) {
	// Use 'true' as editor: it exits successfully without modifying the file
	content, changed, err := Edit("true", "original content")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if changed {
		t.Error("expected changed=false for unchanged content")
	}
	if content != "original content" {
		t.Errorf("content = %q, want %q", content, "original content")
	}
}

// script writes an executable editor stand-in running body with the file as $1.
func script(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-editor")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEditEmptyResult(t *testing.T) {
	content, changed, err := Edit(script(t, `: > "$1"`), "original")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if changed {
		t.Error("expected changed=false for empty result")
	}
	if content != "" {
		t.Errorf("content = %q, want empty", content)
	}
}

func TestEditEmptyCommand(t *testing.T) {
	if _, _, err := Edit("  ", "x"); err == nil {
		t.Error("expected error for empty editor command")
	}
}

func TestStripGuide(t *testing.T) {
	in := Guide("2026-01-07") + "Slept badly.\n// a late note\nStill got the report out.\n"
	want := "Slept badly.\nStill got the report out."
	if got := StripGuide(in); got != want {
		t.Errorf("StripGuide = %q, want %q", got, want)
	}
}

func TestReflectionUntouchedGuide(t *testing.T) {
	_, err := Reflection("true", "2026-01-07")
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
}

func TestReflectionWritten(t *testing.T) {
	got, err := Reflection(script(t, `echo "Long walk helped." >> "$1"`), "2026-01-07")
	if err != nil {
		t.Fatalf("Reflection: %v", err)
	}
	if got != "Long walk helped." {
		t.Errorf("Reflection = %q", got)
	}
}
