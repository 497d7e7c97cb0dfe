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
	"bytes"
	"fmt"

	"k8s.io/klog/v2"
)

// RenderDeclaration renders the unit's declaration file. It returns nil for
// program-entry units.
func RenderDeclaration(u *Unit) []byte {
	if u.Kind == ProgramEntry {
		return nil
	}
	var buf bytes.Buffer
	guard := u.Guard()
	fmt.Fprintf(&buf, "#ifndef %s\n", guard)
	fmt.Fprintf(&buf, "#define %s\n", guard)
	for _, h := range u.SystemHeaders {
		fmt.Fprintf(&buf, "#include <%s>\n", h)
	}
	for _, req := range u.Requires {
		fmt.Fprintf(&buf, "#include \"%s.hpp\"\n", req)
	}
	for _, d := range u.Defines {
		fmt.Fprintf(&buf, "%s\n", d)
	}
	for _, m := range u.Methods {
		if u.Kind == HeaderOnly {
			// Inline keeps the definitions legal when the header is
			// included by several translation units.
			buf.WriteString("inline ")
			buf.WriteString(m.Definition())
		} else {
			buf.WriteString(m.Declaration())
		}
	}
	fmt.Fprintf(&buf, "#endif\n")
	return buf.Bytes()
}

// RenderDefinition renders the unit's definition file. It returns nil for
// header-only units.
func RenderDefinition(u *Unit) []byte {
	if u.Kind == HeaderOnly {
		return nil
	}
	var buf bytes.Buffer
	if u.Kind == ProgramEntry {
		for _, h := range u.SystemHeaders {
			fmt.Fprintf(&buf, "#include <%s>\n", h)
		}
		for _, req := range u.Requires {
			fmt.Fprintf(&buf, "#include \"%s/%s.hpp\"\n", IncludeDir, req)
		}
		for _, d := range u.Defines {
			fmt.Fprintf(&buf, "%s\n", d)
		}
	} else {
		fmt.Fprintf(&buf, "#include \"%s\"\n", u.DeclarationPath())
	}
	buf.WriteString("\n")
	for _, m := range u.Methods {
		buf.WriteString(m.Definition())
	}
	return buf.Bytes()
}

// Emitter writes rendered units to a Sink.
type Emitter struct {
	sink Sink
}

// NewEmitter returns an emitter writing to sink.
func NewEmitter(sink Sink) *Emitter {
	return &Emitter{sink: sink}
}

// Emit renders u and writes its files.
func (e *Emitter) Emit(u *Unit) error {
	klog.V(1).Infof("emit %s unit %s (%d methods)", u.Kind, u.Name, len(u.Methods))
	if p := u.DeclarationPath(); p != "" {
		if err := e.sink.WriteFile(p, RenderDeclaration(u)); err != nil {
			return fmt.Errorf("write declaration of %s: %w", u.Name, err)
		}
	}
	if p := u.DefinitionPath(); p != "" {
		if err := e.sink.WriteFile(p, RenderDefinition(u)); err != nil {
			return fmt.Errorf("write definition of %s: %w", u.Name, err)
		}
	}
	return nil
}

// WriteFile passes a non-unit file (build script, manifest) to the sink.
func (e *Emitter) WriteFile(name string, data []byte) error {
	klog.V(1).Infof("emit file %s", name)
	if err := e.sink.WriteFile(name, data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
