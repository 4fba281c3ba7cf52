package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestCompletionScripts(t *testing.T) {
	isolate(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out := captureStdout(t)
			if err := execute(t, "completion", shell); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), appName) {
				t.Errorf("%s script should mention %s", shell, appName)
			}
		})
	}

	if err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}

func TestFlagValueCompletions(t *testing.T) {
	isolate(t)

	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"layout", "--primitive", ""}, []string{"sphere", "cube"}},
		{[]string{"render", "--projection", ""}, []string{"front", "top", "side"}},
		{[]string{"visualize", "--format", ""}, []string{"dot", "json", "pdf", "png", "svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			var buf bytes.Buffer
			root := New(io.Discard, log.InfoLevel).RootCommand()
			root.SetOut(&buf)
			root.SetErr(io.Discard)
			root.SetArgs(append([]string{"__complete"}, tt.args...))
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatalf("__complete: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want+"\n") {
					t.Errorf("completions for %v missing %q:\n%s", tt.args, want, buf.String())
				}
			}
		})
	}
}
