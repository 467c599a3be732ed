// Package installer runs the external install script and streams its
// output line by line.
package installer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
)

const maxLineSize = 1024 * 1024

// BuildCommand returns the argv for one installer run. The ordering is a
// contract with the install script: executable, optional "uninstall"
// keyword, then option IDs in the order given.
func BuildCommand(scriptDir string, optionIDs []string, uninstall bool) []string {
	cmd := []string{filepath.Join(scriptDir, "install")}
	if uninstall {
		cmd = append(cmd, "uninstall")
	}
	cmd = append(cmd, optionIDs...)
	return cmd
}

// Run executes the install script with the given options, calling onLine
// for each output line as it arrives. Stderr is merged into stdout and
// invalid UTF-8 is replaced, never an error. Run blocks until the process
// exits and returns its exit code; a nonzero code is a normal outcome.
// The returned error is non-nil only when the process could not be
// started or waited on at all.
func Run(scriptDir string, optionIDs []string, uninstall bool, onLine func(string)) (int, error) {
	argv := BuildCommand(scriptDir, optionIDs, uninstall)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = scriptDir

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		return -1, err
	}

	done := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		pw.Close()
		done <- err
	}()

	scanner := bufio.NewScanner(pr)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		if onLine != nil {
			onLine(strings.ToValidUTF8(scanner.Text(), "�"))
		}
	}

	// A scan failure (a line past maxLineSize, say) leaves the pipe
	// undrained; close it so the copier unblocks and Wait can return.
	scanErr := scanner.Err()
	if scanErr != nil {
		pr.CloseWithError(scanErr)
	}

	err := <-done
	if scanErr != nil {
		return -1, fmt.Errorf("read output: %w", scanErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, err
	}
	return 0, nil
}
