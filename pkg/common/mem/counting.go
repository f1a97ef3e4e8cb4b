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

// Counting wraps an upstream allocator and records the calls made through
// it. Diagnostics and tests use it to check exact allocate/deallocate
// accounting. Not synchronized, matching the single-writer contract of
// the containers it backs.
type Counting[T any] struct {
	upstream Allocator[T]

	allocCount      int
	freeCount       int
	lastAllocSize   int
	lastDeallocSize int
}

var _ Allocator[int] = &Counting[int]{}

func NewCounting[T any](upstream Allocator[T]) *Counting[T] {
	return &Counting[T]{upstream: upstream}
}

func (c *Counting[T]) Allocate(n int) ([]T, error) {
	block, err := c.upstream.Allocate(n)
	if err != nil {
		return nil, err
	}
	c.allocCount++
	c.lastAllocSize = n
	return block, nil
}

func (c *Counting[T]) Deallocate(block []T, n int) {
	c.upstream.Deallocate(block, n)
	c.freeCount++
	c.lastDeallocSize = n
}

func (c *Counting[T]) AllocCount() int {
	return c.allocCount
}

func (c *Counting[T]) FreeCount() int {
	return c.freeCount
}

func (c *Counting[T]) LastAllocSize() int {
	return c.lastAllocSize
}

func (c *Counting[T]) LastDeallocSize() int {
	return c.lastDeallocSize
}
