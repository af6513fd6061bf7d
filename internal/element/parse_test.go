package element

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Element
		wantErr bool
	}{
		{
			name: "all fields",
			line: "libs/foo.bst||waiting||abc123",
			want: Element{Name: "libs/foo.bst", State: "waiting", Key: "abc123"},
		},
		{
			name: "key omitted",
			line: "libs/foo.bst||buildable",
			want: Element{Name: "libs/foo.bst", State: "buildable"},
		},
		{
			name: "empty key",
			line: "d.bst||waiting||",
			want: Element{Name: "d.bst", State: "waiting"},
		},
		{
			name: "whitespace trimmed",
			line: "  a.bst ||cached|| k1 ",
			want: Element{Name: "a.bst", State: "cached", Key: "k1"},
		},
		{
			name: "extra fields ignored",
			line: "a.bst||waiting||k1||junk",
			want: Element{Name: "a.bst", State: "waiting", Key: "k1"},
		},
		{
			name:    "single field",
			line:    "just-a-name",
			wantErr: true,
		},
		{
			name:    "empty name",
			line:    "||waiting||k1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLine(%q) expected error, got %+v", tt.line, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLine(%q) error = %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("ParseLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"a.bst||waiting||k1",
		"garbage",
		"",
		"b.bst||cached||k2",
		"||waiting",
		"c.bst||waiting||k3",
	}, "\n")

	elems, issues, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	names := Names(elems)
	want := []string{"a.bst", "b.bst", "c.bst"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Parse() names = %v, want %v", names, want)
	}

	if len(issues) != 2 {
		t.Fatalf("expected 2 parse issues, got %d: %v", len(issues), issues)
	}
	if issues[0].Line != 2 || issues[0].Text != "garbage" {
		t.Errorf("unexpected first issue: %+v", issues[0])
	}
	if issues[1].Line != 5 {
		t.Errorf("expected second issue on line 5, got %d", issues[1].Line)
	}
	if !strings.Contains(issues[0].Error(), "line 2") {
		t.Errorf("Error() = %q, expected line number", issues[0].Error())
	}
}

func TestParse_EmptyInput(t *testing.T) {
	elems, issues, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(elems) != 0 || len(issues) != 0 {
		t.Errorf("expected nothing, got %d elements and %d issues", len(elems), len(issues))
	}
}

func TestParse_ReadError(t *testing.T) {
	readErr := errors.New("boom")
	_, _, err := Parse(iotest.ErrReader(readErr))
	if !errors.Is(err, readErr) {
		t.Errorf("Parse() error = %v, want wrapped %v", err, readErr)
	}
}

func TestElementHelpers(t *testing.T) {
	elems := []Element{
		{Name: "a", State: StateWaiting, Key: "k1"},
		{Name: "b", State: StateCached},
	}

	if !elems[1].IsCached(StateCached) {
		t.Error("expected b to be cached")
	}
	if elems[0].IsCached(StateCached) {
		t.Error("expected a not to be cached")
	}

	keys := Keys(elems)
	if len(keys) != 2 || keys[0] != "k1" || keys[1] != "" {
		t.Errorf("Keys() = %v", keys)
	}
}
