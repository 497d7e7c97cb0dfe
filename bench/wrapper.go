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

package bench

import (
	"fmt"
	"strconv"

	"github.com/ajroetker/ramometer/cgen"
	"github.com/ajroetker/ramometer/profile"
)

// TestPrefix is prepended to a kernel name to name its timing wrapper.
const TestPrefix = "test_"

// RecordFields names the semicolon separated columns of a result record.
var RecordFields = []string{
	"operator",
	"bit_width",
	"loop_width",
	"length",
	"operator_repetitions",
	"duration_s",
	"duration_per_repetition_s",
}

// NewTestWrapper builds the timing harness around kernel. The wrapper takes
// the kernel's parameters plus p_operator_repetitions, calls the kernel once
// untimed, then times p_operator_repetitions calls and prints one record.
func NewTestWrapper(kernel cgen.Method, op Operator, v profile.Variant, w int) (cgen.Method, error) {
	sig := kernel.Signature().Renamed(TestPrefix + kernel.Name())
	if err := sig.AppendParameter(cgen.Parameter{Type: "size_t const", Name: ParamOpReps}); err != nil {
		return cgen.Method{}, fmt.Errorf("test wrapper for %s: %w", kernel.Name(), err)
	}
	call := kernel.Signature().Call()
	body := cgen.NewImplementation().
		Code(sig.ReturnType + " result = " + call + ";").
		Code("uint64_t start = get_user_clock( );").
		Open("for( size_t i = 0; i < " + ParamOpReps + "; ++i ) {").
		Code("result |= " + call + ";").
		Close().
		Code("uint64_t end = get_user_clock( );").
		Code("double duration = get_user_time_s( start, end );").
		Code(recordStatement(op, v, w)).
		Code("return result;")
	return cgen.NewMethod(sig, body), nil
}

// recordStatement prints "Op;bits;w;length;reps;total;per-rep" to std::cout.
func recordStatement(op Operator, v profile.Variant, w int) string {
	prefix := op.RecordName() + ";" + v.BitWidth() + ";" + strconv.Itoa(w) + ";"
	return `std::cout << "` + prefix + `" << ` + ParamLength +
		` << ";" << ` + ParamOpReps +
		` << ";" << duration << ";" << duration / ( ( double ) ` + ParamOpReps + ` ) << "\n";`
}
