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
	"strings"
	"testing"

	"github.com/ajroetker/ramometer/cgen"
	"github.com/ajroetker/ramometer/profile"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func mustVariant(t *testing.T, width int) profile.Variant {
	t.Helper()
	v, err := profile.VariantByWidth(width)
	require.NoError(t, err)
	return v
}

func mustProfile(t *testing.T, name string) *profile.Profile {
	t.Helper()
	p, err := profile.Get(name)
	require.NoError(t, err)
	return p
}

func TestLoopPlanPartition(t *testing.T) {
	// 64-bit, loop width 4, 10 elements.
	blocked, tail := LoopPlan{Width: 4}.Partition(10)
	if blocked != (Range{0, 8}) {
		t.Errorf("blocked = %+v, want [0, 8)", blocked)
	}
	if tail != (Range{8, 10}) {
		t.Errorf("tail = %+v, want [8, 10)", tail)
	}
	if got := (LoopPlan{Width: 4}).TailLen(10); got != 2 {
		t.Errorf("TailLen(10) = %d, want 2", got)
	}

	for w := 1; w < 8; w++ {
		p := LoopPlan{Width: w}
		for n := 0; n < 3*w; n++ {
			blocked, tail := p.Partition(n)
			if blocked.Len()%w != 0 || tail.Len() != p.TailLen(n) || blocked.Len()+tail.Len() != n {
				t.Errorf("w=%d n=%d: blocked %+v tail %+v", w, n, blocked, tail)
			}
		}
	}
}

// Walk the loop structure the kernels emit and check every index is
// visited exactly once.
func TestLoopPlanCoversEveryIndexOnce(t *testing.T) {
	for w := 1; w <= 17; w++ {
		for n := 0; n <= 3*w+2; n++ {
			p := LoopPlan{Width: w}
			seen := make([]int, n)
			end := p.BlockedEnd(n)
			for outer := 0; outer < end; outer += w {
				for inner := outer; inner < outer+w; inner++ {
					seen[inner]++
				}
			}
			for i := end; i < n; i++ {
				seen[i]++
			}
			for i, c := range seen {
				if c != 1 {
					t.Fatalf("w=%d n=%d: index %d visited %d times", w, n, i, c)
				}
			}
			if p.TailLen(n) != n-end || p.TailLen(n) >= w {
				t.Fatalf("w=%d n=%d: TailLen = %d", w, n, p.TailLen(n))
			}
		}
	}
}

func TestBlockedEndExpr(t *testing.T) {
	if got, want := (LoopPlan{Width: 4}).BlockedEndExpr("p_length"), "p_length - ( p_length % 4 )"; got != want {
		t.Errorf("BlockedEndExpr = %q, want %q", got, want)
	}
}

func TestKernelSignatures(t *testing.T) {
	p := mustProfile(t, "ve")
	v := mustVariant(t, 64)
	tests := []struct {
		op   Operator
		want string
	}{
		{Read, "uint64_t read_64bit_4( uint64_t const * const p_data, size_t const p_length )"},
		{Copy, "uint64_t copy_64bit_4( uint64_t const * const p_data, size_t const p_length, uint64_t * const p_out, size_t const p_dummy )"},
		{Write, "uint64_t write_64bit_4( uint64_t * const p_out, size_t const p_length, uint64_t const p_val, size_t const p_dummy )"},
	}
	for _, tt := range tests {
		t.Run(tt.op.Name, func(t *testing.T) {
			m, err := tt.op.Kernel(p, v, 4)
			require.NoError(t, err)
			require.Equal(t, tt.want, m.Head())
		})
	}
}

func TestReadKernelBody(t *testing.T) {
	m, err := ReadKernel(mustProfile(t, "ve"), mustVariant(t, 64), 4)
	require.NoError(t, err)

	want := `   uint64_t result_array[ 256 ];
#pragma _NEC vreg( result_array )
   for( size_t i = 0; i < 256; ++i ) {
      result_array[ i ] = 0;
   }
   size_t const blocked_length = p_length - ( p_length % 4 );
#pragma _NEC noouterloop_unroll
   for( size_t outer = 0; outer < blocked_length; outer += 4 ) {
#pragma _NEC shortloop
      for( size_t inner = 0; inner < 4; ++inner ) {
         result_array[ inner ] |= p_data[ outer + inner ];
      }
   }
   uint64_t result = 0;
   for( size_t aggr = 0; aggr < 256; ++aggr ) {
      result |= result_array[ aggr ];
   }
   for( size_t i = blocked_length; i < p_length; ++i ) {
      result |= p_data[ i ];
   }
   return result;
`
	if diff := cmp.Diff(want, m.Body().String()); diff != "" {
		t.Errorf("read kernel body mismatch (-want +got):\n%s", diff)
	}
}

func TestCopyAndWriteKernelBodies(t *testing.T) {
	p := mustProfile(t, "ve")
	v := mustVariant(t, 64)

	cp, err := CopyKernel(p, v, 8)
	require.NoError(t, err)
	body := cp.Body().String()
	require.Contains(t, body, "      size_t const inner_upper_bound = outer + 8;\n")
	require.Contains(t, body, "for( size_t inner = outer; inner < inner_upper_bound; ++inner ) {")
	require.Contains(t, body, "p_out[ inner ] = p_data[ inner ];")
	require.Contains(t, body, "p_out[ i ] = p_data[ i ];")
	require.True(t, strings.HasSuffix(body, "   return p_out[ p_dummy ];\n"), body)

	wr, err := WriteKernel(p, v, 8)
	require.NoError(t, err)
	body = wr.Body().String()
	require.Contains(t, body, "   uint64_t val[ 256 ];\n#pragma _NEC vreg( val )\n")
	require.Contains(t, body, "val[ i ] = p_val;")
	require.Contains(t, body, "p_out[ outer + inner ] = val[ inner ];")
	require.Contains(t, body, "for( size_t i = blocked_length; i < p_length; ++i ) {\n      p_out[ i ] = p_val;")
	require.True(t, strings.HasSuffix(body, "   return p_out[ p_dummy ];\n"), body)
}

func countAnnotations(m cgen.Method, text string) int {
	n := 0
	for _, l := range m.Body().Lines() {
		if l.Kind == cgen.AnnotationLine && l.Text == text {
			n++
		}
	}
	return n
}

func TestKernelAnnotationsFollowProfile(t *testing.T) {
	ve := mustProfile(t, "ve")
	gcc := mustProfile(t, "gcc")
	packed := mustVariant(t, 32)
	plain := mustVariant(t, 64)

	// Read has five loops: lane init, outer, inner, fold and tail.
	m, err := ReadKernel(ve, packed, 3)
	require.NoError(t, err)
	require.Equal(t, 5, countAnnotations(m, "#pragma _NEC packed_vector"))

	m, err = ReadKernel(ve, plain, 3)
	require.NoError(t, err)
	require.Zero(t, countAnnotations(m, "#pragma _NEC packed_vector"))

	m, err = ReadKernel(gcc, plain, 3)
	require.NoError(t, err)
	require.Equal(t, 1, countAnnotations(m, "#pragma GCC unroll 1"))
	require.Equal(t, 1, countAnnotations(m, "#pragma GCC ivdep"))
	require.NotContains(t, m.Definition(), "_NEC")
}

func TestRecordName(t *testing.T) {
	for _, tt := range []struct {
		op   Operator
		want string
	}{{Read, "Read"}, {Copy, "Copy"}, {Write, "Write"}} {
		if got := tt.op.RecordName(); got != tt.want {
			t.Errorf("%s.RecordName() = %q, want %q", tt.op.Name, got, tt.want)
		}
	}
}
