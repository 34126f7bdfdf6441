// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"strings"
	"testing"
)

// fakeExecutor records invocations and returns canned results.
type fakeExecutor struct {
	lookPathErr error
	runErr      error
	runs        [][]string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.lookPathErr != nil {
		return "", f.lookPathErr
	}
	return "/usr/local/bin/" + file, nil
}

func (f *fakeExecutor) Run(name string, args ...string) error {
	f.runs = append(f.runs, append([]string{name}, args...))
	return f.runErr
}

func TestNewSiltexConverter(t *testing.T) {
	t.Run("defaults to siltex binary", func(t *testing.T) {
		fake := &fakeExecutor{}
		conv, err := newSiltexConverter("", fake)
		if err != nil {
			t.Fatalf("newSiltexConverter: %v", err)
		}
		if conv.bin != "siltex" {
			t.Errorf("bin = %q, want siltex", conv.bin)
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		fake := &fakeExecutor{lookPathErr: errors.New("executable file not found")}
		if _, err := newSiltexConverter("siltex", fake); err == nil {
			t.Fatal("expected error when binary is not on PATH")
		}
	})
}

func TestSiltexConvertArgv(t *testing.T) {
	fake := &fakeExecutor{}
	conv, err := newSiltexConverter("siltex", fake)
	if err != nil {
		t.Fatal(err)
	}

	// Paths with spaces must pass through untouched: there is no shell.
	tex := "/assets/ui buttons/ok.tex"
	png := "/out/ui buttons/ok.png"
	if err := conv.Convert(tex, png); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if len(fake.runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(fake.runs))
	}
	want := []string{"siltex", "tex2png", "-o", png, tex}
	got := fake.runs[0]
	if len(got) != len(want) {
		t.Fatalf("argv = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("argv[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSiltexConvertFailure(t *testing.T) {
	fake := &fakeExecutor{runErr: errors.New("exit status 1: unsupported texture format: 0x84")}
	conv, err := newSiltexConverter("siltex", fake)
	if err != nil {
		t.Fatal(err)
	}

	err = conv.Convert("in.tex", "out.png")
	if err == nil {
		t.Fatal("expected error on non-zero exit")
	}
	if !strings.Contains(err.Error(), "siltex tex2png") {
		t.Errorf("error = %v, want converter context", err)
	}
}
