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
	"sync/atomic"

	"github.com/veckit/veckit/pkg/common/vcerr"
	"github.com/veckit/veckit/pkg/logutil"
)

// Quota caps the total number of elements outstanding from an upstream
// allocator. Requests that would push the outstanding total past the
// budget are refused without touching the upstream.
type Quota[T any] struct {
	upstream Allocator[T]
	limit    int64

	inUse    atomic.Int64
	numAlloc atomic.Int64
	numFree  atomic.Int64
}

var _ Allocator[int] = &Quota[int]{}

func NewQuota[T any](upstream Allocator[T], limit int) *Quota[T] {
	return &Quota[T]{upstream: upstream, limit: int64(limit)}
}

func (q *Quota[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, vcerr.NewInvalidInput("negative allocation size %d", n)
	}
	for {
		inUse := q.inUse.Load()
		if inUse+int64(n) > q.limit {
			logutil.Debugf("mem: quota refused %d elements, %d of %d in use", n, inUse, q.limit)
			return nil, vcerr.NewOOM(n, int(q.limit-inUse))
		}
		if q.inUse.CompareAndSwap(inUse, inUse+int64(n)) {
			break
		}
	}
	block, err := q.upstream.Allocate(n)
	if err != nil {
		q.inUse.Add(-int64(n))
		return nil, err
	}
	q.numAlloc.Add(1)
	return block, nil
}

func (q *Quota[T]) Deallocate(block []T, n int) {
	q.upstream.Deallocate(block, n)
	q.inUse.Add(-int64(n))
	q.numFree.Add(1)
}

// InUse returns the element count currently charged against the budget.
func (q *Quota[T]) InUse() int {
	return int(q.inUse.Load())
}

func (q *Quota[T]) NumAlloc() int64 {
	return q.numAlloc.Load()
}

func (q *Quota[T]) NumFree() int64 {
	return q.numFree.Load()
}
