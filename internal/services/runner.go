package services

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner abstracts external command execution so services can be exercised
// in tests without the real binaries installed. Every invocation is attempted
// exactly once; there is no retry layer.
type Runner interface {
	// Run executes the binary and streams combined stdout/stderr lines to
	// onLine when provided. It blocks until the process exits.
	Run(ctx context.Context, binary string, args []string, onLine func(string)) error
	// Output executes the binary and returns its captured stdout. Stderr is
	// folded into the returned error on failure.
	Output(ctx context.Context, binary string, args []string) ([]byte, error)
}

// CommandRunner is the production Runner backed by os/exec.
type CommandRunner struct{}

// Run implements Runner.
func (CommandRunner) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...)

	if onLine == nil {
		output, err := cmd.CombinedOutput()
		return classifyExecError(binary, err, output)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%s: stdout pipe: %w", binary, err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return classifyExecError(binary, err, nil)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var tail []string
	for scanner.Scan() {
		line := scanner.Text()
		onLine(line)
		tail = append(tail, line)
		if len(tail) > 20 {
			tail = tail[1:]
		}
	}

	if err := cmd.Wait(); err != nil {
		return classifyExecError(binary, err, []byte(strings.Join(tail, "\n")))
	}
	return nil
}

// Output implements Runner.
func (CommandRunner) Output(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return nil, classifyExecError(binary, err, stderr.Bytes())
	}
	return output, nil
}

func classifyExecError(binary string, err error, output []byte) error {
	if err == nil {
		return nil
	}
	detail := strings.TrimSpace(string(output))
	if errors.Is(err, exec.ErrNotFound) {
		return Wrap(ErrToolNotFound, binary, "", "install it and ensure it is on PATH", err)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		wrapped := err
		if detail != "" {
			wrapped = fmt.Errorf("%w: %s", err, detail)
		}
		return &ExitCodeError{Tool: binary, Code: exitErr.ExitCode(), Err: Wrap(ErrToolFailed, binary, "", "", wrapped)}
	}
	if detail != "" {
		return Wrap(ErrToolFailed, binary, "", detail, err)
	}
	return Wrap(ErrToolFailed, binary, "", "", err)
}
