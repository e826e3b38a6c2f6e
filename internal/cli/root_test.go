package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestNewRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	for _, name := range []string{"analyze", "chart", "probe", "validate", "version"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRun_Version(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"version"})
	root.SetOut(io.Discard)

	var stderr bytes.Buffer
	if code := run(root, &stderr); code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected stderr: %q", stderr.String())
	}
}

func TestRun_Error(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"analyze", "/nonexistent/wms.log"})
	root.SetOut(io.Discard)

	var stderr bytes.Buffer
	if code := run(root, &stderr); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr.String(), "Failed to read the file") {
		t.Errorf("stderr = %q, want read failure message", stderr.String())
	}
}
