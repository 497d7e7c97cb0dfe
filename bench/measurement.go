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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ajroetker/ramometer/cgen"
	"github.com/ajroetker/ramometer/profile"
)

// ErrUnboundParameter is returned when a wrapper parameter has no argument
// in the measurement driver.
var ErrUnboundParameter = errors.New("unbound parameter")

// MeasurementOrder is the order wrappers are called in per repetition.
// Write fills p_in, copy moves it to p_out, read consumes p_out.
var MeasurementOrder = []string{writeName, copyName, readName}

// argumentBindings maps wrapper parameter names to measurement driver
// expressions, per operator.
var argumentBindings = map[string]map[string]string{
	writeName: {
		ParamOut:    ParamIn,
		ParamLength: ParamLength,
		ParamVal:    "result",
		ParamDummy:  "dummy",
		ParamOpReps: ParamOpReps,
	},
	copyName: {
		ParamData:   ParamIn,
		ParamLength: ParamLength,
		ParamOut:    ParamOut,
		ParamDummy:  "dummy",
		ParamOpReps: ParamOpReps,
	},
	readName: {
		ParamData:   ParamOut,
		ParamLength: ParamLength,
		ParamOpReps: ParamOpReps,
	},
}

// BindCall renders a call to sig with each parameter replaced by the
// expression bound to its name.
func BindCall(sig cgen.Signature, bindings map[string]string) (string, error) {
	args := make([]string, 0, sig.Len())
	for _, p := range sig.Params() {
		expr, ok := bindings[p.Name]
		if !ok {
			return "", fmt.Errorf("%s: %w %s", sig.Name, ErrUnboundParameter, p.Name)
		}
		args = append(args, expr)
	}
	if len(args) == 0 {
		return sig.Name + "( )", nil
	}
	return sig.Name + "( " + strings.Join(args, ", ") + " )", nil
}

// MeasurementName returns "measurement<suffix>".
func MeasurementName(v profile.Variant) string {
	return "measurement" + v.Suffix
}

// MeasurementSignature returns the signature of the per-variant sweep.
func MeasurementSignature(v profile.Variant) (cgen.Signature, error) {
	return cgen.NewSignature("void", MeasurementName(v),
		cgen.Parameter{Type: v.ConstPointer(), Name: ParamIn},
		cgen.Parameter{Type: v.ConstPointer(), Name: ParamOut},
		cgen.Parameter{Type: "size_t const", Name: ParamLength},
		cgen.Parameter{Type: "size_t const", Name: ParamTestReps},
		cgen.Parameter{Type: "size_t const", Name: ParamOpReps},
	)
}

// seedStatement seeds the C random source. Seed 0 uses the wall clock.
func seedStatement(seed int64) string {
	if seed == 0 {
		return "srand( time( NULL ) );"
	}
	return "srand( " + strconv.FormatUint(uint64(uint32(seed)), 10) + "u );"
}

// NewMeasurementDriver builds the sweep over every loop width of v.
// wrappers maps an operator name to its wrappers indexed by loop width - 1.
func NewMeasurementDriver(v profile.Variant, wrappers map[string][]cgen.Method, seed int64) (cgen.Method, error) {
	sig, err := MeasurementSignature(v)
	if err != nil {
		return cgen.Method{}, err
	}
	T := v.DataType()
	body := cgen.NewImplementation().
		Code(seedStatement(seed)).
		Code(T + " result = static_cast< " + T + " >( rand( ) );")
	for _, w := range v.LoopWidths() {
		body = body.
			Code(`std::cerr << "Test ` + v.BitWidth() + ` Bit with LoopWidth = ` + strconv.Itoa(w) + `...";`).
			Open("for( size_t i = 0; i < " + ParamTestReps + "; ++i ) {").
			Code("size_t const dummy = rand( ) % " + ParamLength + ";").
			Code("result ^= static_cast< " + T + " >( rand( ) );")
		for _, name := range MeasurementOrder {
			ws := wrappers[name]
			if len(ws) < w {
				return cgen.Method{}, fmt.Errorf("%s: no %s wrapper for loop width %d", sig.Name, name, w)
			}
			call, err := BindCall(ws[w-1].Signature(), argumentBindings[name])
			if err != nil {
				return cgen.Method{}, fmt.Errorf("%s: %w", sig.Name, err)
			}
			body = body.Code("result |= " + call + ";")
		}
		body = body.
			Close().
			Code(`std::cerr << "Done. Dummy Result = " << ( unsigned long long ) result << "\n";`)
	}
	return cgen.NewMethod(sig, body), nil
}
