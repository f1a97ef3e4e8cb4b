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

// Package vla implements a variable-length array: a sequence with a fixed
// upper bound on its element count whose storage comes from a caller
// supplied allocator. Capacity accounting is exact: the capacity is
// always the count of the last successful allocation, never a guess
// beyond what was asked for, and a failed allocation leaves the array
// exactly as it was. Not safe for concurrent use.
package vla

import (
	"github.com/veckit/veckit/pkg/common/mem"
	"github.com/veckit/veckit/pkg/common/vcerr"
)

// Array is a bounded dynamic array of T. The zero value is not usable,
// construct with New or NewFromSlice.
//
// Invariants: length <= len(data) <= maxSize; elements at [0, length) are
// live, slots at [length, len(data)) hold zero values or stale storage
// the array never reads; data is nil exactly when capacity is zero.
type Array[T any] struct {
	alloc   mem.Allocator[T]
	data    []T
	length  int
	maxSize int
}

// New returns an empty array bounded at maxSize elements. No storage is
// allocated until the first reserve or append.
func New[T any](maxSize int, alloc mem.Allocator[T]) *Array[T] {
	if maxSize < 0 {
		panic(vcerr.NewInvalidInput("negative max size %d", maxSize))
	}
	return &Array[T]{alloc: alloc, maxSize: maxSize}
}

// NewFromSlice returns an array holding a copy of vals, with storage
// sized to len(vals).
func NewFromSlice[T any](maxSize int, alloc mem.Allocator[T], vals []T) (*Array[T], error) {
	a := New(maxSize, alloc)
	if len(vals) > maxSize {
		return nil, vcerr.NewCapacityExceeded(maxSize)
	}
	if a.Reserve(len(vals)) < len(vals) {
		return nil, vcerr.NewAllocatorRefused(len(vals))
	}
	copy(a.data, vals)
	a.length = len(vals)
	return a, nil
}

func (a *Array[T]) Length() int {
	return a.length
}

func (a *Array[T]) Capacity() int {
	return len(a.data)
}

// MaxSize returns the fixed upper bound on Length and Capacity.
func (a *Array[T]) MaxSize() int {
	return a.maxSize
}

// Allocator exposes the allocator backing this array, for diagnostics.
func (a *Array[T]) Allocator() mem.Allocator[T] {
	return a.alloc
}

// Reserve grows capacity to exactly min(n, MaxSize()) and returns the
// resulting capacity. It never raises and never shrinks: when the
// allocator refuses, the array is untouched and the unchanged capacity is
// returned, so callers can probe for achievable capacity without a
// failure path.
func (a *Array[T]) Reserve(n int) int {
	target := n
	if target > a.maxSize {
		target = a.maxSize
	}
	if target <= len(a.data) {
		return len(a.data)
	}
	block, err := a.alloc.Allocate(target)
	if err != nil || len(block) < target {
		return len(a.data)
	}
	a.replaceStorage(block[:target:target])
	return target
}

// ShrinkToFit reduces capacity to exactly Length, releasing storage
// entirely at length zero. Best-effort: if the smaller block cannot be
// allocated the array is left unchanged.
func (a *Array[T]) ShrinkToFit() {
	if a.length == len(a.data) {
		return
	}
	if a.length == 0 {
		a.alloc.Deallocate(a.data, len(a.data))
		a.data = nil
		return
	}
	block, err := a.alloc.Allocate(a.length)
	if err != nil || len(block) < a.length {
		return
	}
	a.replaceStorage(block[:a.length:a.length])
}

// replaceStorage moves the live elements into block, destroys them in the
// old block and returns it to the allocator with the exact count it was
// allocated with. Blocks may alias (a fixed arena hands out the same
// region for every request); the overlap is detected by base address and
// the destroy pass skipped, since the slots are still live in the new
// block.
func (a *Array[T]) replaceStorage(block []T) {
	old := a.data
	copy(block, old[:a.length])
	a.data = block
	if len(old) == 0 {
		return
	}
	if len(block) == 0 || &old[0] != &block[0] {
		var zero T
		for i := 0; i < a.length; i++ {
			old[i] = zero
		}
	}
	a.alloc.Deallocate(old, len(old))
}

// grow ensures room for delta more elements, doubling capacity (capped at
// MaxSize) to amortize repeated appends. Reserve is the single choke
// point, so a failed grow cannot disturb existing state.
func (a *Array[T]) grow(delta int) error {
	need := a.length + delta
	if need <= len(a.data) {
		return nil
	}
	if need > a.maxSize {
		return vcerr.NewCapacityExceeded(a.maxSize)
	}
	target := len(a.data) * 2
	if target < need {
		target = need
	}
	if target > a.maxSize {
		target = a.maxSize
	}
	if a.Reserve(target) >= need {
		return nil
	}
	// The amortized target may be refused while the minimal one still
	// fits, retry with the exact requirement before giving up.
	if a.Reserve(need) >= need {
		return nil
	}
	return vcerr.NewAllocatorRefused(need)
}

// Append adds v at the end, growing capacity on demand. On failure the
// error distinguishes the declared bound (ErrCapacityExceeded) from an
// allocator refusal (ErrAllocatorRefused), and the array is unchanged.
func (a *Array[T]) Append(v T) error {
	if err := a.grow(1); err != nil {
		return err
	}
	a.data[a.length] = v
	a.length++
	return nil
}

// AppendZero appends a zero-valued element.
func (a *Array[T]) AppendZero() error {
	var zero T
	return a.Append(zero)
}

// Pop destroys the last element and decrements Length. Capacity is never
// touched. Popping an empty array is a caller error.
func (a *Array[T]) Pop() {
	if a.length == 0 {
		panic(vcerr.NewInternalError("pop from an empty array"))
	}
	var zero T
	a.length--
	a.data[a.length] = zero
}

// Get returns the element at index i. i must be in [0, Length).
func (a *Array[T]) Get(i int) T {
	return a.data[:a.length][i]
}

// Set overwrites the element at index i. i must be in [0, Length).
func (a *Array[T]) Set(i int, v T) {
	a.data[:a.length][i] = v
}

// Data returns the live window of the array, nil when empty. The slice
// is invalidated by any operation that reallocates or changes Length.
func (a *Array[T]) Data() []T {
	if a.length == 0 {
		return nil
	}
	return a.data[:a.length:a.length]
}

// Range calls f for each live element in index order until f returns
// false. The array must not be mutated during the walk.
func (a *Array[T]) Range(f func(i int, v T) bool) {
	for i := 0; i < a.length; i++ {
		if !f(i, a.data[i]) {
			return
		}
	}
}

// Dup returns a deep copy of the array backed by the same allocator. The
// copy's capacity is its length; the source's exact capacity is not
// replicated.
func (a *Array[T]) Dup() (*Array[T], error) {
	w := New(a.maxSize, a.alloc)
	if a.length == 0 {
		return w, nil
	}
	if w.Reserve(a.length) < a.length {
		return nil, vcerr.NewAllocatorRefused(a.length)
	}
	copy(w.data, a.data[:a.length])
	w.length = a.length
	return w, nil
}

// CopyFrom replaces the receiver's contents with a deep copy of src,
// reusing the current block when it is large enough. On failure the
// receiver is unchanged.
func (a *Array[T]) CopyFrom(src *Array[T]) error {
	if a == src {
		return nil
	}
	if src.length > a.maxSize {
		return vcerr.NewCapacityExceeded(a.maxSize)
	}
	if a.Reserve(src.length) < src.length {
		return vcerr.NewAllocatorRefused(src.length)
	}
	var zero T
	for i := src.length; i < a.length; i++ {
		a.data[i] = zero
	}
	copy(a.data, src.data[:src.length])
	a.length = src.length
	return nil
}

// MoveFrom transfers src's storage, contents, bound and allocator to the
// receiver in constant time. The receiver's previous contents are freed;
// src is left empty with zero capacity and stays usable.
func (a *Array[T]) MoveFrom(src *Array[T]) {
	if a == src {
		return
	}
	a.Free()
	a.alloc = src.alloc
	a.maxSize = src.maxSize
	a.data = src.data
	a.length = src.length
	src.data = nil
	src.length = 0
}

// Free destroys all live elements and returns the storage to the
// allocator. The array stays usable and empty afterwards.
func (a *Array[T]) Free() {
	if a.data == nil {
		a.length = 0
		return
	}
	var zero T
	for i := 0; i < a.length; i++ {
		a.data[i] = zero
	}
	a.alloc.Deallocate(a.data, len(a.data))
	a.data = nil
	a.length = 0
}

// EqualFunc reports whether a and b hold the same number of elements and
// eq holds for every corresponding pair.
func (a *Array[T]) EqualFunc(b *Array[T], eq func(x, y T) bool) bool {
	if a.length != b.length {
		return false
	}
	for i := 0; i < a.length; i++ {
		if !eq(a.data[i], b.data[i]) {
			return false
		}
	}
	return true
}

// Equal reports element-wise equality under ==. Exact by construction:
// for float elements a single representable step of difference makes two
// arrays unequal.
func Equal[T comparable](a, b *Array[T]) bool {
	return a.EqualFunc(b, func(x, y T) bool { return x == y })
}
