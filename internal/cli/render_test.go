package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"FromInput", "", "app.json", "app"},
		{"FromScene", "", "dir/app.scene.json", "dir/app"},
		{"OutputWithFormatExt", "out.svg", "app.json", "out"},
		{"OutputWithOtherExt", "out.v2", "app.json", "out.v2"},
		{"OutputBare", "renders/app", "x.json", "renders/app"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		input    string
		format   string
		multiple bool
		want     string
	}{
		{"ExplicitSingle", "drawing.out", "app.json", "svg", false, "drawing.out"},
		{"ExplicitMultiple", "drawing.svg", "app.json", "png", true, "drawing.png"},
		{"Derived", "", "app.scene.json", "dot", false, "app.dot"},
		{"Stdout", "-", "app.json", "dot", false, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, tt.input, tt.format, tt.multiple); got != tt.want {
				t.Errorf("outputPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	out := captureStdout(t)
	dir := t.TempDir()
	base := filepath.Join(dir, "nested", "wood")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"json": []byte("{}"), "dot": []byte("digraph {}")},
		formats:   []string{"json", "dot", "svg"},
		output:    base,
		woods:     2,
		nodes:     5,
		edges:     3,
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	for ext, want := range map[string]string{"json": "{}", "dot": "digraph {}"} {
		data, err := os.ReadFile(base + "." + ext)
		if err != nil {
			t.Fatalf("read %s: %v", ext, err)
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", ext, data, want)
		}
	}
	if _, err := os.Stat(base + ".svg"); !os.IsNotExist(err) {
		t.Error("formats without an artifact are skipped")
	}

	text := out.String()
	for _, want := range []string{"2 woods", "5 nodes", "3 edges", iconFresh} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestWriteArtifactsStdout(t *testing.T) {
	out := captureStdout(t)

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"dot": []byte("digraph x {}\n")},
		formats:   []string{"dot"},
		output:    "-",
		cacheHit:  true,
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	if !strings.HasPrefix(out.String(), "digraph x {}\n") {
		t.Errorf("stdout = %q", out.String())
	}
	if !strings.Contains(out.String(), iconCached) {
		t.Error("cache hits should be reported")
	}
}

func TestSplitErrors(t *testing.T) {
	if splitErrors(nil) != nil {
		t.Error("nil error yields no lines")
	}
	got := splitErrors(errString("document 0: bad\ndocument 2: worse"))
	if len(got) != 2 || got[1] != "document 2: worse" {
		t.Errorf("splitErrors = %q", got)
	}
}

type errString string

func (e errString) Error() string { return string(e) }
