package source

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner provides an abstraction for running external commands.
type Runner interface {
	// Run executes name with args in dir and returns its stdout.
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner implements Runner using os/exec.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command. A non-zero exit is reported as ErrSourceFailed
// with the command's stderr attached.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%w: %s: %v", ErrSourceFailed, name, err)
		}
		return nil, fmt.Errorf("%w: %s: %v: %s", ErrSourceFailed, name, err, msg)
	}
	return output, nil
}

// Call records one invocation of FakeRunner.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// FakeRunner implements Runner with canned output for testing.
type FakeRunner struct {
	Output []byte
	Err    error
	Calls  []Call
}

// NewFakeRunner creates a FakeRunner that returns output.
func NewFakeRunner(output string) *FakeRunner {
	return &FakeRunner{Output: []byte(output)}
}

// Run records the call and returns the canned output or error.
func (r *FakeRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	r.Calls = append(r.Calls, Call{Dir: dir, Name: name, Args: args})
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Output, nil
}
