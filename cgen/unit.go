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
	"fmt"
	"path"
	"strings"

	"github.com/samber/lo"
)

// IncludeDir is the sub-directory holding declaration files.
const IncludeDir = "include"

// Kind selects which files a Unit produces.
type Kind int

const (
	// Normal units produce a declaration and a definition file.
	Normal Kind = iota
	// HeaderOnly units produce only a declaration file carrying full
	// inline definitions.
	HeaderOnly
	// ProgramEntry units produce only a definition file that includes every
	// required unit directly and carries the program-wide defines.
	ProgramEntry
)

func (k Kind) String() string {
	switch k {
	case Normal:
		return "normal"
	case HeaderOnly:
		return "header-only"
	case ProgramEntry:
		return "program-entry"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Define is one "#define NAME VALUE" line.
type Define struct {
	Name  string
	Value string
}

func (d Define) String() string {
	return "#define " + d.Name + " " + d.Value
}

// Unit is one logical compilation unit.
type Unit struct {
	Name          string
	Kind          Kind
	SystemHeaders []string // <cstddef>, <iostream>, ...
	Requires      []string // names of other units, ordered, no duplicates
	Defines       []Define
	Methods       []Method
}

// NewUnit creates a unit. Duplicate header and required-unit names are
// dropped, keeping first occurrences in order.
func NewUnit(name string, kind Kind, systemHeaders, requires []string) *Unit {
	return &Unit{
		Name:          name,
		Kind:          kind,
		SystemHeaders: lo.Uniq(systemHeaders),
		Requires:      lo.Uniq(requires),
	}
}

// AddMethod appends m to the unit.
func (u *Unit) AddMethod(m Method) {
	u.Methods = append(u.Methods, m)
}

// AddDefine appends a define.
func (u *Unit) AddDefine(name, value string) {
	u.Defines = append(u.Defines, Define{Name: name, Value: value})
}

// HeaderName returns "<name>.hpp".
func (u *Unit) HeaderName() string { return u.Name + ".hpp" }

// DeclarationPath returns the declaration file path relative to the output
// root, or "" for program-entry units.
func (u *Unit) DeclarationPath() string {
	if u.Kind == ProgramEntry {
		return ""
	}
	return path.Join(IncludeDir, u.HeaderName())
}

// DefinitionPath returns the definition file path relative to the output
// root, or "" for header-only units.
func (u *Unit) DefinitionPath() string {
	if u.Kind == HeaderOnly {
		return ""
	}
	return u.Name + ".cpp"
}

// Files lists the paths the unit produces, declaration first.
func (u *Unit) Files() []string {
	return lo.Compact([]string{u.DeclarationPath(), u.DefinitionPath()})
}

// Guard returns the include guard macro, e.g. INCLUDE_READ_64BIT_HPP.
func (u *Unit) Guard() string {
	return strings.ToUpper(IncludeDir + "_" + u.Name + "_HPP")
}
