package main

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"", "localhost"}, "localhost"},
		{[]string{"0.0.0.0", "localhost"}, "0.0.0.0"},
		{[]string{"  ", ""}, ""},
	}
	for _, tt := range tests {
		if got := firstNonEmpty(tt.in...); got != tt.want {
			t.Errorf("firstNonEmpty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindEditorPrefersEnvironment(t *testing.T) {
	t.Setenv("EDITOR", "code --wait")
	t.Setenv("VISUAL", "nano")
	got, err := findEditor()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"code", "--wait"}) {
		t.Errorf("findEditor() = %q", got)
	}
}

func TestValidateTapeFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.tape")
	bad := filepath.Join(dir, "bad.tape")
	if err := os.WriteFile(good, []byte("NewSection\nAdd Hero\nExpectCount 1\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("Add Carousel\n"), 0600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := validateTapeFile(&out, good); err != nil {
		t.Fatalf("validateTapeFile(good) error = %v", err)
	}
	if !strings.Contains(out.String(), "3 command(s), 1 assertion(s)") {
		t.Errorf("output = %q", out.String())
	}

	if err := validateTapeFile(&out, bad); err == nil {
		t.Error("bad tape validated")
	}
}

func TestPrintCatalog(t *testing.T) {
	var out bytes.Buffer
	if err := printCatalog(&out, ""); err != nil {
		t.Fatal(err)
	}
	for _, kind := range []string{"Hero", "Heading", "Button", "Input", "Card"} {
		if !strings.Contains(out.String(), kind) {
			t.Errorf("catalog is missing %s", kind)
		}
	}

	out.Reset()
	if err := printCatalog(&out, "button"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "primary | secondary | outline") {
		t.Errorf("button options missing:\n%s", out.String())
	}

	if err := printCatalog(&out, "carousel"); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestResetConfigAborts(t *testing.T) {
	var out bytes.Buffer
	if err := resetConfigToDefaults(strings.NewReader("n\n"), &out, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Aborted.") {
		t.Errorf("output = %q", out.String())
	}
}
