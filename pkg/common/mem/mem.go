// Copyright 2023 Veckit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mem

import "github.com/veckit/veckit/pkg/common/vcerr"

// Allocator is the capability a container needs to obtain and release
// storage. Allocate returns a block with room for exactly n elements, or
// an error when the request cannot be served. Deallocate must be called
// with the same element count the block was allocated with; blocks must
// only be returned to the allocator they came from.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Deallocate(block []T, n int)
}

// Heap serves every request from the Go runtime. Deallocate drops the
// reference and leaves reclamation to the GC.
type Heap[T any] struct{}

var _ Allocator[int] = Heap[int]{}

func (Heap[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, vcerr.NewInvalidInput("negative allocation size %d", n)
	}
	if n == 0 {
		return nil, nil
	}
	return make([]T, n), nil
}

func (Heap[T]) Deallocate([]T, int) {}
