package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/bubbleproof/pkg/bubble"
	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
)

func writeTestPage(t *testing.T, dir string) string {
	t.Helper()
	page := &bubble.Page{
		Bubbles: []bubble.Bubble{
			{Coords: geometry.R(100, 100, 200, 150), Text: "Hello"},
			{Coords: geometry.R(400, 400, 405, 405)},
		},
	}
	path := filepath.Join(dir, "page.json")
	if err := bubble.SavePage(path, page); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}
	return path
}

const resizeScript = `# select, then drag the south-east handle
down original 150 125
up
down original 200 150
move 260 210
up
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Reset flags to prevent accumulation between tests
	verbose = false
	replayOut, replayJSON, replayNoSync = "", false, false
	renderMax, renderSelected = 1600, nil
	outputJSON = false

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestReplayE2E(t *testing.T) {
	dir := t.TempDir()
	page := writeTestPage(t, dir)
	scriptPath := filepath.Join(dir, "resize.txt")
	if err := os.WriteFile(scriptPath, []byte(resizeScript), 0644); err != nil {
		t.Fatal(err)
	}
	badScript := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(badScript, []byte("down sideways 1 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name: "text events",
			args: []string{"replay", page, scriptPath},
			wantContain: []string{
				"select       index=0",
				"resize       index=0 coords=(100,100)-(260,210) 160x110",
			},
		},
		{
			name: "json events",
			args: []string{"replay", "--json", page, scriptPath},
			wantContain: []string{
				`"kind": "resize"`,
				`"x2": 260`,
			},
		},
		{
			name:    "unknown viewport",
			args:    []string{"replay", page, badScript},
			wantErr: true,
		},
		{
			name:    "missing page",
			args:    []string{"replay", filepath.Join(dir, "none.json"), scriptPath},
			wantErr: true,
		},
		{
			name:    "missing script argument",
			args:    []string{"replay", page},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := execute(t, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v\nOutput: %s", err, output)
				return
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
		})
	}
}

func TestReplaySavesEditedPage(t *testing.T) {
	dir := t.TempDir()
	page := writeTestPage(t, dir)
	scriptPath := filepath.Join(dir, "resize.txt")
	if err := os.WriteFile(scriptPath, []byte(resizeScript), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "edited.json")

	if output, err := execute(t, "replay", "--out", out, page, scriptPath); err != nil {
		t.Fatalf("replay failed: %v\n%s", err, output)
	}
	edited, err := bubble.LoadPage(out)
	if err != nil {
		t.Fatalf("LoadPage failed: %v", err)
	}
	if got := edited.Bubbles[0].Coords; got != geometry.R(100, 100, 260, 210) {
		t.Fatalf("saved coords = %+v", got)
	}
	if edited.Bubbles[0].Text != "Hello" {
		t.Fatalf("text lost: %+v", edited.Bubbles[0])
	}
}

func TestRenderE2E(t *testing.T) {
	dir := t.TempDir()
	page := writeTestPage(t, dir)
	out := filepath.Join(dir, "overlay.png")

	output, err := execute(t, "render", "--max", "200", "--select", "0", page, out)
	if err != nil {
		t.Fatalf("render failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Rendered 2 bubbles") || !strings.Contains(output, "200x200") {
		t.Fatalf("output = %q", output)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("overlay not written: %v", err)
	}

	if _, err := execute(t, "render", "--select", "7", page, out); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestInfoE2E(t *testing.T) {
	page := writeTestPage(t, t.TempDir())

	output, err := execute(t, "info", page)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{
		"Size:    unknown (using 2000x2000)",
		"Bubbles: 2",
		`[0] (100,100)-(200,150) 100x50 "Hello"`,
		"INVALID",
		"1 bubble(s) need fixing",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
		}
	}

	output, err = execute(t, "info", "--json", page)
	if err != nil {
		t.Fatalf("info --json failed: %v", err)
	}
	if !strings.Contains(output, `"text": "Hello"`) {
		t.Fatalf("json output = %s", output)
	}
}
