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

// Arena owns one fixed block and serves every request that fits by
// handing out a prefix of that same block. It models environments where
// storage is a single static region reserved up front: consecutive
// allocations alias each other, so a caller growing in place must treat
// old and new blocks that share a base address as the same memory.
type Arena[T any] struct {
	block []T
}

var _ Allocator[int] = &Arena[int]{}

func NewArena[T any](size int) *Arena[T] {
	return &Arena[T]{block: make([]T, size)}
}

// Size returns the element count of the backing region.
func (a *Arena[T]) Size() int {
	return len(a.block)
}

func (a *Arena[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, vcerr.NewInvalidInput("negative allocation size %d", n)
	}
	if n > len(a.block) {
		return nil, vcerr.NewOOM(n, len(a.block))
	}
	if n == 0 {
		return nil, nil
	}
	return a.block[:n:n], nil
}

// Deallocate is a no-op, the region is static.
func (a *Arena[T]) Deallocate([]T, int) {}
