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
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Parameter names shared by kernels, wrappers and the measurement driver.
const (
	ParamData     = "p_data"
	ParamLength   = "p_length"
	ParamOut      = "p_out"
	ParamVal      = "p_val"
	ParamDummy    = "p_dummy"
	ParamOpReps   = "p_operator_repetitions"
	ParamTestReps = "p_test_repetitions"
	ParamIn       = "p_in"
)

// Operator is one memory access pattern the benchmark measures.
type Operator struct {
	// Name is the lower-case kernel prefix: "read", "copy", "write".
	Name string
	// Kernel builds the kernel for one variant and loop width.
	Kernel func(p *profile.Profile, v profile.Variant, w int) (cgen.Method, error)
}

// RecordName is the operator name as written in result records.
func (op Operator) RecordName() string {
	return cases.Title(language.English).String(op.Name)
}

// KernelName returns "<op><suffix>_<w>", e.g. "read_64bit_4".
func (op Operator) KernelName(v profile.Variant, w int) string {
	return kernelName(op.Name, v, w)
}

func kernelName(op string, v profile.Variant, w int) string {
	return op + v.Suffix + "_" + strconv.Itoa(w)
}

const (
	readName  = "read"
	copyName  = "copy"
	writeName = "write"
)

// Read, Copy and Write are the measured operators.
var (
	Read  = Operator{Name: readName, Kernel: ReadKernel}
	Copy  = Operator{Name: copyName, Kernel: CopyKernel}
	Write = Operator{Name: writeName, Kernel: WriteKernel}
)

// Operators lists the operators in generation order.
func Operators() []Operator {
	return []Operator{Read, Copy, Write}
}

// laneInit declares a Lanes sized array and fills it with value.
func laneInit(p *profile.Profile, v profile.Variant, array, value string) cgen.Implementation {
	lanes := strconv.Itoa(v.Lanes)
	return cgen.NewImplementation().
		Code(v.DataType()+" "+array+"[ "+lanes+" ];").
		Annotate(p.VectorRegisterFor(array)).
		Annotate(p.PackedVectorFor(v)).
		Open("for( size_t i = 0; i < " + lanes + "; ++i ) {").
		Code(array + "[ i ] = " + value + ";").
		Close()
}

// blockedLoop walks [0, blocked_length) in steps of w. innerHead opens the
// per-block loop; prologue runs once per block before it.
func blockedLoop(p *profile.Profile, v profile.Variant, w int, prologue []string, innerHead, stmt string) cgen.Implementation {
	im := cgen.NewImplementation().
		Annotate(p.NoOuterUnroll).
		Annotate(p.PackedVectorFor(v)).
		Open(fmt.Sprintf("for( size_t outer = 0; outer < blocked_length; outer += %d ) {", w))
	for _, l := range prologue {
		im = im.Code(l)
	}
	return im.
		Annotate(p.ShortLoop).
		Annotate(p.PackedVectorFor(v)).
		Open(innerHead).
		Code(stmt).
		Close().
		Close()
}

// tailLoop handles the p_length % w elements after the blocked region.
func tailLoop(p *profile.Profile, v profile.Variant, stmt string) cgen.Implementation {
	return cgen.NewImplementation().
		Annotate(p.PackedVectorFor(v)).
		Open("for( size_t i = blocked_length; i < " + ParamLength + "; ++i ) {").
		Code(stmt).
		Close()
}

func blockedLength(w int) string {
	return "size_t const blocked_length = " + LoopPlan{Width: w}.BlockedEndExpr(ParamLength) + ";"
}

func innerFromZero(w int) string {
	return fmt.Sprintf("for( size_t inner = 0; inner < %d; ++inner ) {", w)
}

// ReadKernel ORs every element of p_data into a lane accumulator and
// returns the folded lanes.
func ReadKernel(p *profile.Profile, v profile.Variant, w int) (cgen.Method, error) {
	sig, err := cgen.NewSignature(v.DataType(), kernelName(readName, v, w),
		cgen.Parameter{Type: v.ConstPointerToConst(), Name: ParamData},
		cgen.Parameter{Type: "size_t const", Name: ParamLength},
	)
	if err != nil {
		return cgen.Method{}, err
	}
	fold := cgen.NewImplementation().
		Code(v.DataType() + " result = 0;").
		Annotate(p.PackedVectorFor(v)).
		Open("for( size_t aggr = 0; aggr < " + strconv.Itoa(v.Lanes) + "; ++aggr ) {").
		Code("result |= result_array[ aggr ];").
		Close()
	body := laneInit(p, v, "result_array", "0").
		Code(blockedLength(w)).
		Combine(blockedLoop(p, v, w, nil, innerFromZero(w),
			"result_array[ inner ] |= p_data[ outer + inner ];")).
		Combine(fold).
		Combine(tailLoop(p, v, "result |= p_data[ i ];")).
		Code("return result;")
	return cgen.NewMethod(sig, body), nil
}

// CopyKernel copies p_data into p_out and returns p_out[ p_dummy ].
func CopyKernel(p *profile.Profile, v profile.Variant, w int) (cgen.Method, error) {
	sig, err := cgen.NewSignature(v.DataType(), kernelName(copyName, v, w),
		cgen.Parameter{Type: v.ConstPointerToConst(), Name: ParamData},
		cgen.Parameter{Type: "size_t const", Name: ParamLength},
		cgen.Parameter{Type: v.ConstPointer(), Name: ParamOut},
		cgen.Parameter{Type: "size_t const", Name: ParamDummy},
	)
	if err != nil {
		return cgen.Method{}, err
	}
	body := cgen.NewImplementation().
		Code(blockedLength(w)).
		Combine(blockedLoop(p, v, w,
			[]string{fmt.Sprintf("size_t const inner_upper_bound = outer + %d;", w)},
			"for( size_t inner = outer; inner < inner_upper_bound; ++inner ) {",
			"p_out[ inner ] = p_data[ inner ];")).
		Combine(tailLoop(p, v, "p_out[ i ] = p_data[ i ];")).
		Code("return p_out[ p_dummy ];")
	return cgen.NewMethod(sig, body), nil
}

// WriteKernel fills p_out with p_val and returns p_out[ p_dummy ].
func WriteKernel(p *profile.Profile, v profile.Variant, w int) (cgen.Method, error) {
	sig, err := cgen.NewSignature(v.DataType(), kernelName(writeName, v, w),
		cgen.Parameter{Type: v.ConstPointer(), Name: ParamOut},
		cgen.Parameter{Type: "size_t const", Name: ParamLength},
		cgen.Parameter{Type: v.ConstType(), Name: ParamVal},
		cgen.Parameter{Type: "size_t const", Name: ParamDummy},
	)
	if err != nil {
		return cgen.Method{}, err
	}
	body := laneInit(p, v, "val", ParamVal).
		Code(blockedLength(w)).
		Combine(blockedLoop(p, v, w, nil, innerFromZero(w),
			"p_out[ outer + inner ] = val[ inner ];")).
		Combine(tailLoop(p, v, "p_out[ i ] = p_val;")).
		Code("return p_out[ p_dummy ];")
	return cgen.NewMethod(sig, body), nil
}
