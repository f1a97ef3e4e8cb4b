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

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veckit/veckit/pkg/common/vcerr"
)

func TestHeap(t *testing.T) {
	var h Heap[int64]

	block, err := h.Allocate(10)
	require.NoError(t, err)
	require.Equal(t, 10, len(block))
	for i, v := range block {
		require.Zero(t, v, "slot %d not zeroed", i)
	}
	h.Deallocate(block, 10)

	_, err = h.Allocate(-1)
	require.True(t, vcerr.IsVcErrCode(err, vcerr.ErrInvalidInput), "got %v", err)
}

func TestArena(t *testing.T) {
	a := NewArena[int](8)
	require.Equal(t, 8, a.Size())

	b1, err := a.Allocate(4)
	require.NoError(t, err)
	require.Equal(t, 4, len(b1))

	// every allocation that fits is a prefix of the same static block
	b2, err := a.Allocate(8)
	require.NoError(t, err)
	require.Equal(t, 8, len(b2))
	require.Same(t, &b1[0], &b2[0])

	_, err = a.Allocate(9)
	require.True(t, vcerr.IsVcErrCode(err, vcerr.ErrOOM), "got %v", err)

	a.Deallocate(b1, 4)
	a.Deallocate(b2, 8)
}

func TestQuota(t *testing.T) {
	q := NewQuota[byte](Heap[byte]{}, 100)

	b1, err := q.Allocate(60)
	require.NoError(t, err)
	require.Equal(t, 60, q.InUse())

	_, err = q.Allocate(41)
	require.True(t, vcerr.IsVcErrCode(err, vcerr.ErrOOM), "got %v", err)
	require.Equal(t, 60, q.InUse())

	b2, err := q.Allocate(40)
	require.NoError(t, err)
	require.Equal(t, 100, q.InUse())

	q.Deallocate(b1, 60)
	q.Deallocate(b2, 40)
	require.Equal(t, 0, q.InUse())
	require.Equal(t, q.NumAlloc(), q.NumFree(), "leak")
}

// upstream refusals must not leak budget
func TestQuotaUpstreamRefusal(t *testing.T) {
	q := NewQuota[int](NewArena[int](4), 100)
	_, err := q.Allocate(8)
	require.True(t, vcerr.IsVcErrCode(err, vcerr.ErrOOM), "got %v", err)
	require.Equal(t, 0, q.InUse())
}

func TestQuotaForRace(t *testing.T) {
	q := NewQuota[int64](Heap[int64]{}, 1<<20)
	var wg sync.WaitGroup
	run := func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			block, err := q.Allocate(8)
			if err != nil {
				panic(err)
			}
			q.Deallocate(block, 8)
		}
	}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go run()
	}
	wg.Wait()
	require.Equal(t, 0, q.InUse())
}

func TestCounting(t *testing.T) {
	c := NewCounting[int](Heap[int]{})
	require.Equal(t, 0, c.AllocCount())

	block, err := c.Allocate(7)
	require.NoError(t, err)
	require.Equal(t, 1, c.AllocCount())
	require.Equal(t, 7, c.LastAllocSize())
	require.Equal(t, 0, c.FreeCount())

	c.Deallocate(block, 7)
	require.Equal(t, 1, c.FreeCount())
	require.Equal(t, 7, c.LastDeallocSize())

	// refused requests are not counted as allocations
	c2 := NewCounting[int](NewArena[int](2))
	_, err = c2.Allocate(3)
	require.Error(t, err)
	require.Equal(t, 0, c2.AllocCount())
}
