// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testScene = `
parts:
  - name: cabinet
    translation: [10, 0, 0]
    children:
      - name: damper_left
        translation: [-1, 0, 0]
        box: {min: [-0.5, -0.5, -0.5], max: [0.5, 0.5, 0.5]}
      - name: damper_right
        translation: [2, 0, 0]
        box: {min: [-0.5, -0.5, -0.5], max: [0.5, 0.5, 0.5]}
  - name: marker
`

func writeScene(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(testScene), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run runs the app and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"partspace", "--scene", writeScene(t)}, args...))
	return buf.String(), err
}

func TestCommands(t *testing.T) {
	for _, x := range [...]struct {
		args []string
		want string
	}{
		{[]string{"tree"}, "cabinet\n  damper_left *\n  damper_right *\nmarker\n"},
		{[]string{"bounds", "cabinet"}, "min 8.5 -0.5 -0.5 max 12.5 0.5 0.5\n"},
		{[]string{"bounds", "marker"}, "min -0.005 -0.005 -0.005 max 0.005 0.005 0.005\n"},
		{[]string{"center", "damper_right"}, "12 0 0\n"},
		{[]string{"size", "cabinet"}, "4 1 1\n"},
		{[]string{"distance", "damper_left", "damper_right"}, "3\n"},
		{[]string{"offset", "damper_left", "damper_right"}, "2 0 0\n"},
		{[]string{"extreme", "damper_left", "0", "1", "0"}, "9 0.5 0\n"},
		{[]string{"to-local", "cabinet", "11", "1", "0"}, "1 1 0\n"},
		{[]string{"to-world", "damper_left", "0", "0", "1"}, "9 0 1\n"},
		{[]string{"classify", "open", "the", "right", "damper"}, "frame damper_right\nhighlight damper_right\nopen damper_right\n"},
		{[]string{"classify", "hello"}, "no command\n"},
	} {
		have, err := run(t, x.args...)
		if err != nil {
			t.Fatalf("%v: %v", x.args, err)
		}
		if have != x.want {
			t.Fatalf("%v\nhave %q\nwant %q", x.args, have, x.want)
		}
	}
}

func TestOutlineCommand(t *testing.T) {
	have, err := run(t, "outline", "cabinet")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(have), "\n")
	if len(lines) != 4 {
		t.Fatalf("outline: lines\nhave %d\nwant 4\n%s", len(lines), have)
	}
	for i, pass := range [...]string{"write", "outline", "write", "outline"} {
		if !strings.HasPrefix(lines[i], pass+" damper_") {
			t.Fatalf("outline: line %d\nhave %q\nwant prefix %q", i, lines[i], pass+" damper_")
		}
	}
	if !strings.HasPrefix(lines[0], "write damper_left min 8.5 -0.5 -0.5 max 9.5 0.5 0.5") {
		t.Fatalf("outline: write overlay\nhave %q", lines[0])
	}
}

func TestCommandErrors(t *testing.T) {
	for _, args := range [...][]string{
		{"center", "nothing"},
		{"center"},
		{"distance", "cabinet"},
		{"extreme", "cabinet", "0", "0", "0"},
		{"to-local", "cabinet", "1", "x", "0"},
		{"classify"},
		{"outline", "marker"},
	} {
		if _, err := run(t, args...); err == nil {
			t.Fatalf("%v: expected an error", args)
		}
	}
	app := newApp()
	app.Writer = io.Discard
	app.ErrWriter = io.Discard
	if err := app.Run([]string{"partspace", "--scene", "/nonexistent.yaml", "tree"}); err == nil {
		t.Fatal("missing scene file: expected an error")
	}
}
