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

package cgen

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/tools/txtar"
)

// Sink receives generated files. Names are slash-separated and relative to
// the output root.
//
// Nothing a Sink receives is visible at its destination until Commit; a
// failed run calls Discard instead, so an aborted generation never leaves a
// partially written tree behind.
type Sink interface {
	WriteFile(name string, data []byte) error
	Commit() error
	Discard() error
}

func checkName(name string) error {
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return fmt.Errorf("output name %q escapes the output root", name)
	}
	return nil
}

// ErrForeignOutput is returned by DirSink.Commit when the target directory
// holds files that were not generated.
var ErrForeignOutput = errors.New("output directory holds files that were not generated")

// DirSink writes files below a staging directory next to the target
// directory and swaps it into place on Commit.
//
// An existing target is replaced only when it is empty or contains the
// marker file of an earlier run, unless Force is set.
type DirSink struct {
	// Force replaces the target directory whatever it contains.
	Force bool

	root    string
	marker  string
	staging string
}

// NewDirSink creates the staging directory for root. The parent of root
// must exist. marker names the file every generated tree contains.
func NewDirSink(root, marker string) (*DirSink, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve output directory: %w", err)
	}
	staging, err := os.MkdirTemp(filepath.Dir(root), "."+filepath.Base(root)+".staging-")
	if err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}
	return &DirSink{root: root, marker: marker, staging: staging}, nil
}

// Root returns the absolute directory the files end up in after Commit.
func (s *DirSink) Root() string { return s.root }

// WriteFile writes data below the staging directory.
func (s *DirSink) WriteFile(name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	full := filepath.Join(s.staging, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}

// replaceable reports whether root may be removed to make room for the
// staged tree.
func (s *DirSink) replaceable() error {
	if s.Force {
		return nil
	}
	entries, err := os.ReadDir(s.root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("inspect previous output: %w", err)
	case len(entries) == 0:
		return nil
	}
	if s.marker != "" {
		if fi, err := os.Lstat(filepath.Join(s.root, s.marker)); err == nil && fi.Mode().IsRegular() {
			return nil
		}
	}
	return fmt.Errorf("%w: %s has no %s", ErrForeignOutput, s.root, s.marker)
}

// Commit replaces root with the staged tree.
func (s *DirSink) Commit() error {
	if err := s.replaceable(); err != nil {
		return err
	}
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("remove previous output: %w", err)
	}
	if err := os.Rename(s.staging, s.root); err != nil {
		return fmt.Errorf("move staged output into place: %w", err)
	}
	return nil
}

// Discard deletes the staging directory.
func (s *DirSink) Discard() error {
	return os.RemoveAll(s.staging)
}

// ArchiveSink collects files into a txtar archive, in write order.
type ArchiveSink struct {
	archive txtar.Archive
	out     io.Writer
}

// NewArchiveSink returns a sink that formats the archive to out on Commit.
// out may be nil when the archive is only inspected through Archive.
func NewArchiveSink(out io.Writer) *ArchiveSink {
	return &ArchiveSink{out: out}
}

// WriteFile records one archive member.
func (s *ArchiveSink) WriteFile(name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	s.archive.Files = append(s.archive.Files, txtar.File{Name: name, Data: append([]byte(nil), data...)})
	return nil
}

// Archive returns the collected archive.
func (s *ArchiveSink) Archive() *txtar.Archive { return &s.archive }

// Commit writes the formatted archive.
func (s *ArchiveSink) Commit() error {
	if s.out == nil {
		return nil
	}
	_, err := s.out.Write(txtar.Format(&s.archive))
	return err
}

// Discard drops every collected file.
func (s *ArchiveSink) Discard() error {
	s.archive.Files = nil
	return nil
}
