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

// Method is a C++ function: a signature plus its body. The body is attached
// once, at construction, and neither part can be changed afterwards.
type Method struct {
	sig  Signature
	body Implementation
}

// NewMethod pairs a signature with its body. The signature is copied.
func NewMethod(sig Signature, body Implementation) Method {
	return Method{sig: sig.Copy(), body: body}
}

// Name returns the function name.
func (m Method) Name() string { return m.sig.Name }

// Signature returns a copy of the method's signature.
func (m Method) Signature() Signature { return m.sig.Copy() }

// Body returns the method body.
func (m Method) Body() Implementation { return m.body }

// Head renders the function head shared by Declaration and Definition.
func (m Method) Head() string { return m.sig.Head() }

// Declaration renders "head;\n".
func (m Method) Declaration() string {
	return m.Head() + ";\n"
}

// Definition renders "head {\n body }\n".
func (m Method) Definition() string {
	return m.Head() + " {\n" + m.body.String() + "}\n"
}
