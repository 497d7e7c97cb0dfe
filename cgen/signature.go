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
	"slices"
	"strings"
)

// ErrDuplicateParameter is matched by every DuplicateParameterError.
var ErrDuplicateParameter = errors.New("duplicate parameter")

// DuplicateParameterError reports a parameter name that already exists in
// the signature it was added to.
type DuplicateParameterError struct {
	Signature string // function name
	Parameter string // colliding parameter name
}

func (e *DuplicateParameterError) Error() string {
	return fmt.Sprintf("signature %s: parameter %q already declared", e.Signature, e.Parameter)
}

func (e *DuplicateParameterError) Is(target error) bool {
	return target == ErrDuplicateParameter
}

// Parameter is one C++ function parameter.
type Parameter struct {
	Type string // "uint64_t const * const", "size_t const"
	Name string // "p_data"
}

// String renders the parameter as "type name".
func (p Parameter) String() string {
	return p.Type + " " + p.Name
}

// Signature is a C++ function head: return type, name and parameters.
//
// Signatures are values. The parameter slice is never shared between two
// signatures: AppendParameter always reallocates, so a copied Signature
// can be specialized without touching the one it was copied from.
type Signature struct {
	ReturnType string
	Name       string
	params     []Parameter
}

// NewSignature builds a signature, rejecting duplicate parameter names.
func NewSignature(returnType, name string, params ...Parameter) (Signature, error) {
	sig := Signature{ReturnType: returnType, Name: name}
	for _, p := range params {
		if err := sig.AppendParameter(p); err != nil {
			return Signature{}, err
		}
	}
	return sig, nil
}

// AppendParameter adds p as the trailing parameter.
func (s *Signature) AppendParameter(p Parameter) error {
	if s.HasParameter(p.Name) {
		return &DuplicateParameterError{Signature: s.Name, Parameter: p.Name}
	}
	// Clip forces append to allocate a fresh backing array.
	s.params = append(slices.Clip(s.params), p)
	return nil
}

// HasParameter reports whether a parameter with the given name exists.
func (s Signature) HasParameter(name string) bool {
	return slices.ContainsFunc(s.params, func(p Parameter) bool { return p.Name == name })
}

// Params returns a copy of the parameter list.
func (s Signature) Params() []Parameter {
	return slices.Clone(s.params)
}

// Len returns the number of parameters.
func (s Signature) Len() int { return len(s.params) }

// Copy returns an independent deep copy.
func (s Signature) Copy() Signature {
	s.params = slices.Clone(s.params)
	return s
}

// Renamed returns a deep copy carrying a different function name.
func (s Signature) Renamed(name string) Signature {
	c := s.Copy()
	c.Name = name
	return c
}

// ParameterList renders "type name, type name, ...". An empty list renders
// as the empty string.
func (s Signature) ParameterList() string {
	parts := make([]string, len(s.params))
	for i, p := range s.params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// ArgumentList renders the parameter names as call arguments.
func (s Signature) ArgumentList() string {
	names := make([]string, len(s.params))
	for i, p := range s.params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

// Head renders "ret name( type name, ... )", or "ret name( )" without
// parameters. Declarations and definitions are both built from Head.
func (s Signature) Head() string {
	list := s.ParameterList()
	if list == "" {
		return s.ReturnType + " " + s.Name + "( )"
	}
	return s.ReturnType + " " + s.Name + "( " + list + " )"
}

// Call renders a call expression passing every parameter by name.
func (s Signature) Call() string {
	args := s.ArgumentList()
	if args == "" {
		return s.Name + "( )"
	}
	return s.Name + "( " + args + " )"
}
