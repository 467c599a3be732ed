package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestModalCommandPreview(t *testing.T) {
	m := newRunModal("/opt/cybex", []string{"claude", "fish"}, false, 80, 24)

	if len(m.lines) == 0 {
		t.Fatal("modal has no preview line")
	}
	preview := m.lines[0]
	if !strings.Contains(preview, "$ ") {
		t.Fatalf("preview %q missing prompt", preview)
	}
	if !strings.Contains(preview, filepath.Join("/opt/cybex", "install")+" claude fish") {
		t.Fatalf("preview %q missing command", preview)
	}
}

func TestModalUninstallPreview(t *testing.T) {
	m := newRunModal("/opt/cybex", []string{"ssh"}, true, 80, 24)
	if !strings.Contains(m.lines[0], "install uninstall ssh") {
		t.Fatalf("preview %q missing uninstall keyword", m.lines[0])
	}
}

func TestModalLinesArriveInOrder(t *testing.T) {
	m := newRunModal("/d", []string{"a"}, false, 80, 24)
	base := len(m.lines)

	for _, line := range []string{"first", "second", "third"} {
		m, _ = m.update(runLineMsg{line: line})
	}

	got := m.lines[base:]
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("lines[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestModalSucceedsOnZeroExit(t *testing.T) {
	m := newRunModal("/d", []string{"a"}, false, 80, 24)
	if m.finished() {
		t.Fatal("modal finished before the run completed")
	}

	m, _ = m.update(runDoneMsg{exitCode: 0})
	if !m.finished() || !m.succeeded() {
		t.Fatal("exit 0 did not reach succeeded state")
	}
	last := m.lines[len(m.lines)-1]
	if !strings.Contains(last, "completed successfully") {
		t.Fatalf("summary line = %q", last)
	}
}

func TestModalFailsOnNonZeroExit(t *testing.T) {
	m := newRunModal("/d", []string{"a"}, false, 80, 24)

	m, _ = m.update(runDoneMsg{exitCode: 2})
	if !m.finished() || m.succeeded() {
		t.Fatal("exit 2 did not reach failed state")
	}
	last := m.lines[len(m.lines)-1]
	if !strings.Contains(last, "exit code: 2") {
		t.Fatalf("summary line = %q", last)
	}
}

func TestModalFailsOnSpawnError(t *testing.T) {
	m := newRunModal("/d", []string{"a"}, false, 80, 24)

	m, _ = m.update(runDoneMsg{exitCode: -1, err: errors.New("permission denied")})
	if !m.finished() || m.succeeded() {
		t.Fatal("spawn error did not reach failed state")
	}
	last := m.lines[len(m.lines)-1]
	if !strings.Contains(last, "Error: permission denied") {
		t.Fatalf("summary line = %q", last)
	}
}

func TestRunCmdExecutesInstaller(t *testing.T) {
	dir := t.TempDir()
	script := "#!/bin/sh\necho hello\nexit 0\n"
	if err := os.WriteFile(filepath.Join(dir, "install"), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	msg := runCmd(dir, []string{"claude"}, false)()
	done, ok := msg.(runDoneMsg)
	if !ok {
		t.Fatalf("runCmd returned %T, want runDoneMsg", msg)
	}
	if done.err != nil || done.exitCode != 0 {
		t.Fatalf("runDoneMsg = %+v", done)
	}
}

func TestRunCmdReportsSpawnError(t *testing.T) {
	msg := runCmd(t.TempDir(), []string{"claude"}, false)()
	done, ok := msg.(runDoneMsg)
	if !ok {
		t.Fatalf("runCmd returned %T, want runDoneMsg", msg)
	}
	if done.err == nil {
		t.Fatal("missing spawn error for absent install script")
	}
}

func TestModalViewStates(t *testing.T) {
	m := newRunModal("/d", []string{"a", "b"}, false, 80, 24)
	view := m.view()
	if !strings.Contains(view, "Installing: a, b") {
		t.Fatalf("running view missing header:\n%s", view)
	}
	if strings.Contains(view, "press enter to close") {
		t.Fatal("running view offers dismissal")
	}

	m, _ = m.update(runDoneMsg{exitCode: 0})
	view = m.view()
	if !strings.Contains(view, "press enter to close") {
		t.Fatal("finished view missing dismissal hint")
	}
}
