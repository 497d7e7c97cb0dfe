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

// Package cgen models generated C++ source: function signatures, bodies,
// and compilation units, and renders them into declaration (.hpp) and
// definition (.cpp) files.
//
// A Unit is written through an Emitter to a Sink:
//
//	sink, err := cgen.NewDirSink("generated", "manifest.json")
//	...
//	e := cgen.NewEmitter(sink)
//	if err := e.Emit(unit); err != nil {
//		sink.Discard()
//		return err
//	}
//	return sink.Commit()
//
// Declaration and definition renderings of a Method are both derived from
// its Signature's Head, so the two files can never disagree about a
// function's parameters.
package cgen
