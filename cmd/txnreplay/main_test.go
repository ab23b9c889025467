package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const scenarioDoc = `
view:
  name: term
  geometry: {x: 0, y: 0, w: 400, h: 300}
steps:
  - batch:
      - {op: map}
      - {op: tiled, edges: all}
  - client: {}
`

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "s.yaml")
	if err := os.WriteFile(path, []byte(scenarioDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReplay(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{"--metrics", "--ops", "--log-level", "debug", "--log-format", "json", writeScenario(t)})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	out := stdout.String()
	for _, want := range []string{
		"step 0",
		"applied=true",
		"term: map term",
		`xdgtxn_instructions_total{kind="map",outcome="ready"}`,
		"xdgtxn_configure_requests_total",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if !strings.Contains(stderr.String(), `"msg":"ready"`) {
		t.Errorf("no debug log in json form:\n%s", stderr.String())
	}
}

func TestReplayErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		want string
	}{
		{name: "missing file", args: []string{filepath.Join(t.TempDir(), "nope.yaml")}, want: "failed to load scenario"},
		{name: "bad level", args: []string{"--log-level", "loud", writeScenario(t)}, want: "unknown log level"},
		{name: "bad format", args: []string{"--log-format", "xml", writeScenario(t)}, want: "unknown log format"},
		{name: "no args", args: []string{}, want: "accepts 1 arg"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			cmd := newRootCmd(&stdout, &stderr)
			cmd.SetArgs(tc.args)
			err := cmd.Execute()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("got error %v, want one containing %q", err, tc.want)
			}
		})
	}
}
