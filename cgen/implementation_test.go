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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestImplementationRender(t *testing.T) {
	body := NewImplementation().
		Code("uint64_t result = 0;").
		Annotate("#pragma _NEC shortloop").
		Open("for( size_t i = 0; i < 4; ++i ) {").
		Code("result |= p[ i ];").
		Close().
		Code("return result;")

	want := "   uint64_t result = 0;\n" +
		"#pragma _NEC shortloop\n" +
		"   for( size_t i = 0; i < 4; ++i ) {\n" +
		"      result |= p[ i ];\n" +
		"   }\n" +
		"   return result;\n"
	if diff := cmp.Diff(want, body.String()); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}
	if body.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", body.Depth())
	}
}

func TestImplementationAnnotateEmpty(t *testing.T) {
	im := NewImplementation().Annotate("")
	if im.Len() != 0 {
		t.Errorf("Annotate(\"\") added %d lines", im.Len())
	}
}

// Siblings built from one shared prefix must not see each other's lines.
func TestImplementationImmutable(t *testing.T) {
	prefix := NewImplementation().Code("a;").Code("b;")
	left := prefix.Code("left;")
	right := prefix.Code("right;")

	if prefix.Len() != 2 {
		t.Errorf("prefix.Len() = %d, want 2", prefix.Len())
	}
	if got := left.Lines()[2].Text; got != "left;" {
		t.Errorf("left third line = %q", got)
	}
	if got := right.Lines()[2].Text; got != "right;" {
		t.Errorf("right third line = %q", got)
	}

	lines := left.Lines()
	lines[0].Text = "mutated"
	if left.Lines()[0].Text != "a;" {
		t.Error("Lines() exposes the internal slice")
	}
}

func TestImplementationCombine(t *testing.T) {
	loop := NewImplementation().
		Open("for( ;; ) {").
		Code("x;").
		Close()
	body := NewImplementation().Code("int x = 0;").Combine(loop).Code("return x;")

	want := []Line{
		{Kind: CodeLine, Depth: 1, Text: "int x = 0;"},
		{Kind: CodeLine, Depth: 1, Text: "for( ;; ) {"},
		{Kind: CodeLine, Depth: 2, Text: "x;"},
		{Kind: CodeLine, Depth: 1, Text: "}"},
		{Kind: CodeLine, Depth: 1, Text: "return x;"},
	}
	if diff := cmp.Diff(want, body.Lines()); diff != "" {
		t.Errorf("Combine mismatch (-want +got):\n%s", diff)
	}
}

func TestImplementationShift(t *testing.T) {
	frag := NewImplementation().Annotate("#pragma x").Code("y;")
	shifted := frag.Shift(2)
	want := []Line{
		{Kind: AnnotationLine, Depth: 0, Text: "#pragma x"},
		{Kind: CodeLine, Depth: 3, Text: "y;"},
	}
	if diff := cmp.Diff(want, shifted.Lines()); diff != "" {
		t.Errorf("Shift mismatch (-want +got):\n%s", diff)
	}
	if frag.Lines()[1].Depth != 1 {
		t.Error("Shift modified its receiver")
	}
}
