// Package report renders a partition result in the shape consumed by CI:
//
//	{"core": "...", "matrix": {...}, "cache_keys": {...}, "final": "..."}
//
// as indented JSON, or as key=value lines for a GitHub Actions
// $GITHUB_OUTPUT file.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danieljhkim/chunkplan/internal/planner"
)

// EnvGitHubOutput names the file GitHub Actions reads step outputs from.
const EnvGitHubOutput = "GITHUB_OUTPUT"

// Output is the serialized scheduling plan.
type Output struct {
	Core      string            `json:"core"`
	Matrix    map[string]string `json:"matrix"`
	CacheKeys map[string]string `json:"cache_keys"`
	Final     string            `json:"final"`
}

// FromResult builds the Output for r. Maps are never nil.
func FromResult(r *planner.Result) Output {
	return Output{
		Core:      r.CoreTarget(),
		Matrix:    r.Matrix(),
		CacheKeys: r.CacheKeys(),
		Final:     r.FinalTarget,
	}
}

// WriteJSON writes out as indented JSON followed by a newline.
func WriteJSON(w io.Writer, out Output) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

// compactJSON encodes v on one line without HTML escaping.
func compactJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// WriteGitHubOutput writes one name=value line per field. Map fields are
// encoded as compact JSON so workflows can use fromJSON().
func WriteGitHubOutput(w io.Writer, out Output) error {
	matrix, err := compactJSON(out.Matrix)
	if err != nil {
		return fmt.Errorf("failed to encode matrix: %w", err)
	}
	keys, err := compactJSON(out.CacheKeys)
	if err != nil {
		return fmt.Errorf("failed to encode cache keys: %w", err)
	}

	lines := [][2]string{
		{"core", out.Core},
		{"matrix", matrix},
		{"cache_keys", keys},
		{"final", out.Final},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s=%s\n", l[0], l[1]); err != nil {
			return err
		}
	}
	return nil
}

// AppendGitHubOutput appends out to the file named by $GITHUB_OUTPUT.
func AppendGitHubOutput(out Output) error {
	path := os.Getenv(EnvGitHubOutput)
	if path == "" {
		return fmt.Errorf("%s is not set", EnvGitHubOutput)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	return WriteGitHubOutput(f, out)
}
