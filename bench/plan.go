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

import "fmt"

// Range is the half-open index interval [Start, End).
type Range struct {
	Start, End int
}

// Len returns the number of indices in r.
func (r Range) Len() int { return r.End - r.Start }

// LoopPlan describes how a kernel of the given loop width splits its input:
// full blocks of Width elements, then a scalar tail of length % Width.
type LoopPlan struct {
	Width int
}

// BlockedEnd returns the end of the blocked region for n elements.
func (p LoopPlan) BlockedEnd(n int) int { return n - n%p.Width }

// TailLen returns how many elements the scalar tail loop handles.
func (p LoopPlan) TailLen(n int) int { return n % p.Width }

// Partition splits [0, n) into the blocked and the tail range.
func (p LoopPlan) Partition(n int) (blocked, tail Range) {
	end := p.BlockedEnd(n)
	return Range{0, end}, Range{end, n}
}

// BlockedEndExpr renders BlockedEnd as C++ over the length expression.
func (p LoopPlan) BlockedEndExpr(length string) string {
	return fmt.Sprintf("%s - ( %s %% %d )", length, length, p.Width)
}
