// Copyright 2025 ramometer Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestGenerateDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tree")
	_, stderr, err := execute(t, "--out", out, "--target", "gcc", "--sizes", "16KB,1MB", "--seed", "3")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stderr, "generated 9 units for target gcc") {
		t.Errorf("stderr = %q", stderr)
	}

	main, err := os.ReadFile(filepath.Join(out, "main.cpp"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(main), "buffer_size_bytes{ KB16, MB1 }") {
		t.Errorf("main.cpp does not use the requested sizes:\n%s", main)
	}
	meas, err := os.ReadFile(filepath.Join(out, "measurement_64bit.cpp"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(meas), "srand( 3u );") {
		t.Error("seed not applied")
	}
}

func TestGenerateArchiveToStdout(t *testing.T) {
	stdout, _, err := execute(t, "--archive", "-", "--target", "ve", "--clock-hz", "1600000000")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	a := txtar.Parse([]byte(stdout))
	var utils string
	for _, f := range a.Files {
		if f.Name == "include/utils.hpp" {
			utils = string(f.Data)
		}
	}
	if !strings.Contains(utils, "1600000000ull") {
		t.Errorf("clock override missing from utils.hpp:\n%s", utils)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown target", []string{"--target", "sparc"}, "unknown target"},
		{"unknown variant", []string{"--variants", "16"}, "unknown variant width"},
		{"bad size", []string{"--sizes", "12XB"}, "invalid size"},
		{"bad alignment", []string{"--alignment", "48"}, "power of two"},
		{"size below one element", []string{"--sizes", "16KB,4"}, "buffer size 4B is smaller than one 8 byte element"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "tree")
			args := append([]string{"--out", out}, tt.args...)
			_, _, err := execute(t, args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("execute(%v) = %v, want error containing %q", tt.args, err, tt.want)
			}
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				t.Errorf("output directory created on error: %v", err)
			}
		})
	}
}

func TestGenerateRefusesForeignDirectory(t *testing.T) {
	out := t.TempDir()
	notes := filepath.Join(out, "notes.txt")
	if err := os.WriteFile(notes, []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := execute(t, "--out", out, "--target", "gcc", "--sizes", "16KB")
	if err == nil || !strings.Contains(err.Error(), "not generated") {
		t.Fatalf("execute = %v, want refusal", err)
	}
	if got, err := os.ReadFile(notes); err != nil || string(got) != "mine" {
		t.Fatalf("notes.txt = %q, %v", got, err)
	}

	// A generated tree may be regenerated in place.
	sub := filepath.Join(out, "tree")
	for i := 0; i < 2; i++ {
		if _, _, err := execute(t, "--out", sub, "--target", "gcc", "--sizes", "16KB"); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	if _, _, err := execute(t, "--out", out, "--target", "gcc", "--sizes", "16KB", "--force"); err != nil {
		t.Fatalf("execute --force: %v", err)
	}
	if _, err := os.Stat(notes); !os.IsNotExist(err) {
		t.Errorf("--force kept notes.txt: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "manifest.json")); err != nil {
		t.Error(err)
	}
}

func TestTargetsCommand(t *testing.T) {
	stdout, _, err := execute(t, "targets")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"ve", "gcc", "clang", "host", "nc++"} {
		if !strings.Contains(stdout, name) {
			t.Errorf("targets output missing %q:\n%s", name, stdout)
		}
	}
}
