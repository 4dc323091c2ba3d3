package config

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Options
	}{
		{
			name: "positionals only",
			args: []string{"./src/foo.h", "bar"},
			want: Options{HeaderFile: "./src/foo.h", NewName: "bar"},
		},
		{
			name: "debug after positionals",
			args: []string{"foo.h", "bar", "--debug"},
			want: Options{HeaderFile: "foo.h", NewName: "bar", Debug: true},
		},
		{
			name: "short flags before and between",
			args: []string{"-v", "foo.h", "-d", "bar"},
			want: Options{HeaderFile: "foo.h", NewName: "bar", Debug: true, Verbose: true},
		},
		{
			name: "value flags",
			args: []string{"--config", "cfg.json", "foo.h", "bar", "--journal", "/tmp/j", "-c"},
			want: Options{HeaderFile: "foo.h", NewName: "bar", ConfigPath: "cfg.json", JournalDir: "/tmp/j", Confirm: true},
		},
		{
			name: "history needs no positionals",
			args: []string{"--history", "--journal", "j"},
			want: Options{History: true, JournalDir: "j"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.args, io.Discard)
			if err != nil {
				t.Fatalf("ParseFlags failed: %v", err)
			}
			if *got != tt.want {
				t.Errorf("got %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"foo.h"},
		{"foo.h", "bar", "baz"},
		{"foo.h", "bar", "--unknown"},
	} {
		if _, err := ParseFlags(args, io.Discard); err == nil {
			t.Errorf("ParseFlags(%q) succeeded, want error", args)
		}
	}
}

func TestParseFlagsHelp(t *testing.T) {
	var out bytes.Buffer
	_, err := ParseFlags([]string{"--help"}, &out)
	if !errors.Is(err, ErrHelp) {
		t.Fatalf("expected ErrHelp, got %v", err)
	}
	if !strings.Contains(out.String(), "pairrename [OPTIONS] <header_file> <new_name>") {
		t.Errorf("usage not printed:\n%s", out.String())
	}
}
