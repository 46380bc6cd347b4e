// Package rangetree provides an immutable segment tree over a static
// partition of a [start,end) interval into ordered, contiguous sub-ranges,
// each carrying a payload. Lookups answer "which sub-range contains x" in
// logarithmic time.
//
// The tree is built once from a continuity-checked span list and never
// mutated. Querying a point outside the root interval is a caller-contract
// violation and panics; callers clamp first.
/*
# BSD License

# Copyright (c) the traject authors

All rights reserved.

Please refer to the license file for more information.
*/
package rangetree

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyInput indicates a build from an empty span list.
	ErrEmptyInput = errors.New("range tree needs at least one span")
	// ErrDiscontinuous indicates adjacent input spans do not share a boundary.
	ErrDiscontinuous = errors.New("range tree spans must be contiguous")
	// ErrInvalidSpan indicates a span with NaN bounds or negative extent.
	ErrInvalidSpan = errors.New("range tree span has invalid bounds")
)

// Spans may leave float gaps up to this size from accumulated rounding.
const boundaryEpsilon = 1e-9

// Interval is a half-open range [Start, End).
type Interval struct {
	Start, End float64
}

// Contains is a predicate: does the interval contain x?
// The interval end is considered inclusive, so the final span of a tree
// covers its own upper bound.
func (iv Interval) Contains(x float64) bool {
	return x >= iv.Start && x <= iv.End
}

// Length returns the extent of the interval.
func (iv Interval) Length() float64 {
	return iv.End - iv.Start
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%g,%g)", iv.Start, iv.End)
}

// Span is one leaf input: a sub-range and its payload.
type Span[T any] struct {
	Interval
	Payload T
}

type node[T any] struct {
	iv          Interval
	payload     T
	left, right *node[T]
}

func (n *node[T]) isLeaf() bool {
	return n.left == nil
}

// Tree is an immutable segment tree. The zero value is unusable; build
// trees with New or MustNew.
type Tree[T any] struct {
	root *node[T]
	size int
}

// New builds a balanced tree by recursive bisection of the span list.
// Adjacent spans must be contiguous: each span's start equals the previous
// span's end. Violations indicate a bug in the caller's range
// construction, not a runtime data condition, and fail the build.
func New[T any](spans []Span[T]) (*Tree[T], error) {
	if len(spans) == 0 {
		return nil, ErrEmptyInput
	}
	for i, sp := range spans {
		if math.IsNaN(sp.Start) || math.IsNaN(sp.End) || sp.End < sp.Start {
			return nil, fmt.Errorf("%w: span %d is %v", ErrInvalidSpan, i, sp.Interval)
		}
		if i > 0 && math.Abs(sp.Start-spans[i-1].End) > boundaryEpsilon {
			return nil, fmt.Errorf("%w: span %d starts at %g, previous ends at %g",
				ErrDiscontinuous, i, sp.Start, spans[i-1].End)
		}
	}
	return &Tree[T]{root: build(spans), size: len(spans)}, nil
}

// MustNew is like New but panics on invalid input.
func MustNew[T any](spans []Span[T]) *Tree[T] {
	t, err := New(spans)
	if err != nil {
		panic(err)
	}
	return t
}

func build[T any](spans []Span[T]) *node[T] {
	if len(spans) == 1 {
		return &node[T]{iv: spans[0].Interval, payload: spans[0].Payload}
	}
	mid := len(spans) / 2
	left := build(spans[:mid])
	right := build(spans[mid:])
	return &node[T]{
		iv:    Interval{Start: left.iv.Start, End: right.iv.End},
		left:  left,
		right: right,
	}
}

// Bounds returns the union interval covered by the tree, for clamping
// query arguments.
func (t *Tree[T]) Bounds() Interval {
	return t.root.iv
}

// Len returns the leaf (span) count.
func (t *Tree[T]) Len() int {
	return t.size
}

// Covering returns the payload of the sub-range containing x. Exactly one
// child contains any in-range x, by construction. Calling Covering with x
// outside Bounds() is a programming error and panics.
func (t *Tree[T]) Covering(x float64) T {
	if !t.root.iv.Contains(x) {
		panic(fmt.Sprintf("range tree query %g outside %v", x, t.root.iv))
	}
	n := t.root
	for !n.isLeaf() {
		if x < n.right.iv.Start {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.payload
}
