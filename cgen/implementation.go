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
	"slices"
	"strings"
)

// Indent is the indentation emitted per nesting level of code lines.
const Indent = "   "

// LineKind distinguishes indented code from column-zero annotations.
type LineKind int

const (
	// CodeLine is indented according to its nesting depth.
	CodeLine LineKind = iota
	// AnnotationLine is emitted at column zero (pragmas, preprocessor).
	AnnotationLine
)

// Line is one line of a function body.
type Line struct {
	Kind  LineKind
	Depth int // nesting depth; a function body starts at 1
	Text  string
}

// String renders the line without a trailing newline.
func (l Line) String() string {
	if l.Kind == AnnotationLine {
		return l.Text
	}
	return strings.Repeat(Indent, l.Depth) + l.Text
}

// Implementation is an immutable body builder. Every method returns a new
// Implementation and leaves the receiver untouched, so a partially built
// body can be shared by sibling generators without one seeing the other's
// lines.
//
//	body := cgen.NewImplementation().
//		Open("for( size_t i = 0; i < n; ++i ) {").
//		Code("sum += p[ i ];").
//		Close()
type Implementation struct {
	lines []Line
	depth int
}

// NewImplementation returns an empty body at depth 1.
func NewImplementation() Implementation {
	return Implementation{depth: 1}
}

func (im Implementation) with(l Line) Implementation {
	// Clip so append never writes into an array another value can see.
	im.lines = append(slices.Clip(im.lines), l)
	return im
}

// Code appends an indented code line at the current depth.
func (im Implementation) Code(text string) Implementation {
	return im.with(Line{Kind: CodeLine, Depth: im.depth, Text: text})
}

// Annotate appends an unindented annotation line. Empty text is ignored so
// callers can pass an absent per-target annotation unconditionally.
func (im Implementation) Annotate(text string) Implementation {
	if text == "" {
		return im
	}
	return im.with(Line{Kind: AnnotationLine, Text: text})
}

// Open appends a code line and nests the following lines one level deeper.
func (im Implementation) Open(text string) Implementation {
	im = im.Code(text)
	im.depth++
	return im
}

// Close leaves the innermost nesting level and appends its closing brace.
func (im Implementation) Close() Implementation {
	if im.depth > 1 {
		im.depth--
	}
	return im.Code("}")
}

// Combine appends other's lines verbatim. Depths are kept as recorded in
// other, relative to the start of a function body.
func (im Implementation) Combine(other Implementation) Implementation {
	im.lines = append(slices.Clip(im.lines), other.lines...)
	return im
}

// Shift returns a copy with every code line and the current depth moved
// levels deeper. Fragments built at depth 1 are shifted before being
// combined into a nested scope.
func (im Implementation) Shift(levels int) Implementation {
	out := Implementation{lines: make([]Line, len(im.lines)), depth: im.depth + levels}
	for i, l := range im.lines {
		if l.Kind == CodeLine {
			l.Depth += levels
		}
		out.lines[i] = l
	}
	return out
}

// Depth returns the current nesting depth.
func (im Implementation) Depth() int { return im.depth }

// Lines returns a copy of the recorded lines.
func (im Implementation) Lines() []Line {
	return slices.Clone(im.lines)
}

// Len returns the number of lines.
func (im Implementation) Len() int { return len(im.lines) }

// String renders every line followed by a newline.
func (im Implementation) String() string {
	var sb strings.Builder
	for _, l := range im.lines {
		sb.WriteString(l.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
