// Package source provides the plan sources that supply the ordered element
// list: an external build-graph command, or a file/stdin containing its
// previously captured output.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/danieljhkim/chunkplan/internal/element"
)

// ErrSourceFailed indicates the plan source could not produce output.
var ErrSourceFailed = errors.New("plan source failed")

// Source produces raw plan output for a target.
type Source interface {
	// Read returns the plan lines for target.
	Read(ctx context.Context, target string) ([]byte, error)
}

// CommandSource runs a build-graph command with the target appended.
type CommandSource struct {
	runner  Runner
	command []string
	dir     string
}

// NewCommandSource creates a CommandSource. command must contain at least
// the program name.
func NewCommandSource(runner Runner, command []string, dir string) *CommandSource {
	return &CommandSource{
		runner:  runner,
		command: command,
		dir:     dir,
	}
}

// Read runs the command and returns its stdout.
func (s *CommandSource) Read(ctx context.Context, target string) ([]byte, error) {
	if len(s.command) == 0 {
		return nil, fmt.Errorf("%w: no command configured", ErrSourceFailed)
	}

	args := make([]string, 0, len(s.command))
	args = append(args, s.command[1:]...)
	args = append(args, target)

	return s.runner.Run(ctx, s.dir, s.command[0], args...)
}

// FileSource reads previously captured plan output. The path "-" reads from
// the configured stdin reader.
type FileSource struct {
	path  string
	stdin io.Reader
}

// NewFileSource creates a FileSource.
func NewFileSource(path string, stdin io.Reader) *FileSource {
	return &FileSource{
		path:  path,
		stdin: stdin,
	}
}

// Read returns the file contents. The target is ignored; the file is
// assumed to already describe it.
func (s *FileSource) Read(ctx context.Context, target string) ([]byte, error) {
	if s.path == "-" {
		data, err := io.ReadAll(s.stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read stdin: %v", ErrSourceFailed, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceFailed, err)
	}
	return data, nil
}

// Load reads the plan for target from src and parses it. Malformed lines are
// logged as warnings and dropped.
func Load(ctx context.Context, src Source, target string, logger *zap.Logger) ([]element.Element, error) {
	data, err := src.Read(ctx, target)
	if err != nil {
		return nil, err
	}

	elems, issues, err := element.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceFailed, err)
	}

	for _, issue := range issues {
		logger.Warn("Skipping malformed plan line",
			zap.Int("line", issue.Line),
			zap.String("text", issue.Text),
			zap.String("reason", issue.Reason))
	}
	logger.Debug("Plan loaded",
		zap.String("target", target),
		zap.Int("elements", len(elems)),
		zap.Int("skipped", len(issues)))

	return elems, nil
}
