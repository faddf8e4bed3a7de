package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const scene = `
bodies:
  - name: wall
    position: [4, 0]
    fixtures:
      - shape: box
        half_width: 0.5
        half_height: 2
  - name: ball
    type: dynamic
    linear_velocity: [6, 0]
    fixtures:
      - shape: circle
        radius: 0.5
        density: 1
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseDuration(t *testing.T) {
	for in, want := range map[string]float64{
		"1/60":   1.0 / 60.0,
		"0.5":    0.5,
		" 1 / 4": 0.25,
		"0":      0,
	} {
		got, err := parseDuration(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"", "abc", "1/0", "-1", "1/x"} {
		if _, err := parseDuration(in); err == nil {
			t.Fatalf("%q accepted", in)
		}
	}
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-scene", "s.yaml", "-steps", "10", "-dt", "1/30"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.scene != "s.yaml" || opts.steps != 10 || opts.dt != 1.0/30.0 || opts.watch {
		t.Fatalf("options %+v", opts)
	}

	for _, args := range [][]string{
		{},
		{"-scene", "s.yaml", "-steps", "-1"},
		{"-scene", "s.yaml", "-watch"},
		{"-scene", "s.yaml", "-dt", "1/0"},
		{"-bogus"},
	} {
		if _, err := parseFlags(args); err == nil {
			t.Fatalf("%v accepted", args)
		}
	}

	if _, err := parseFlags([]string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("-h returned %v", err)
	}
}

func TestRun(t *testing.T) {
	path := writeFile(t, "scene.yaml", scene)

	var out bytes.Buffer
	if err := run([]string{"-scene", path, "-steps", "60"}, &out); err != nil {
		t.Fatal(err)
	}

	text := out.String()
	for _, want := range []string{
		"step 30 begin wall ball\n",
		"step 51 end wall ball\n",
		"bodies 2 proxies 2 contacts",
		"tree height 1 balance 0 quality",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output lacks %q:\n%s", want, text)
		}
	}
}

func TestRunWithSettings(t *testing.T) {
	scenePath := writeFile(t, "scene.yaml", scene)
	settingsPath := writeFile(t, "settings.yaml", "aabb_extension: 0.5\n")

	var out bytes.Buffer
	if err := run([]string{"-scene", scenePath, "-settings", settingsPath, "-steps", "1", "-watch"}, &out); err != nil {
		t.Fatal(err)
	}

	bad := writeFile(t, "bad.yaml", "aabb_extension: -1\n")
	if err := run([]string{"-scene", scenePath, "-settings", bad}, &out); err == nil {
		t.Fatal("invalid settings file accepted")
	}
	if err := run([]string{"-scene", filepath.Join(t.TempDir(), "missing.yaml")}, &out); err == nil {
		t.Fatal("missing scene accepted")
	}
}
