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

package vcerr

import "fmt"

const (
	// 0 - 99 is OK, no alloc needed.
	Ok uint16 = 0

	// Group 1: internal errors
	ErrStart    uint16 = 20100
	ErrInternal uint16 = 20101
	ErrNYI      uint16 = 20102
	ErrOOM      uint16 = 20103

	// Group 2: invalid input
	ErrInvalidInput    uint16 = 20200
	ErrIndexOutOfRange uint16 = 20201

	// Group 3: container capacity
	ErrCapacityExceeded uint16 = 20300
	ErrAllocatorRefused uint16 = 20301

	ErrEnd uint16 = 65535
)

// Error is the only error type this module produces. The code makes
// failure families distinguishable without string matching.
type Error struct {
	code    uint16
	message string
}

func newError(code uint16, msg string, args ...interface{}) *Error {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &Error{code: code, message: msg}
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

// Is makes errors.Is match any two errors carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.code == e.code
}

// IsVcErrCode reports whether err is a veckit error with the given code.
func IsVcErrCode(err error, code uint16) bool {
	if err == nil {
		return code == Ok
	}
	e, ok := err.(*Error)
	return ok && e.code == code
}

func NewInternalError(msg string, args ...interface{}) *Error {
	return newError(ErrInternal, "internal error: "+msg, args...)
}

func NewNYI(msg string, args ...interface{}) *Error {
	return newError(ErrNYI, "not yet implemented: "+msg, args...)
}

// NewOOM reports an allocator that could not serve a request of n
// elements within its budget of limit elements.
func NewOOM(n int, limit int) *Error {
	return newError(ErrOOM, "out of memory: %d elements requested, budget is %d", n, limit)
}

func NewInvalidInput(msg string, args ...interface{}) *Error {
	return newError(ErrInvalidInput, "invalid input: "+msg, args...)
}

func NewIndexOutOfRange(idx int, length int) *Error {
	return newError(ErrIndexOutOfRange, "index %d out of range [0, %d)", idx, length)
}

// NewCapacityExceeded reports an operation blocked by the declared
// maximum size of a bounded container.
func NewCapacityExceeded(maxSize int) *Error {
	return newError(ErrCapacityExceeded, "capacity exceeded: container is bounded at %d elements", maxSize)
}

// NewAllocatorRefused reports an operation blocked by the allocator while
// still within the container's declared maximum size.
func NewAllocatorRefused(n int) *Error {
	return newError(ErrAllocatorRefused, "allocator refused a block of %d elements", n)
}
