// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package rewrite applies edit plans to source buffers and persists the
// results.
package rewrite

import (
	"errors"
	"fmt"

	"github.com/petar-djukic/comment-doctor/pkg/types"
)

// ErrBadPlan is returned when a plan's offsets fall outside the buffer or
// are not strictly descending.
var ErrBadPlan = errors.New("invalid edit plan")

// Apply returns a new buffer with every insertion of plan applied to src.
// src is not modified. The plan must be ordered by strictly descending
// offset, each offset in [0, len(src)].
func Apply(src []byte, plan types.EditPlan) ([]byte, error) {
	size := len(src)
	prev := len(src) + 1
	for i, in := range plan.Insertions {
		if in.Offset < 0 || in.Offset > len(src) {
			return nil, fmt.Errorf("%w: insertion %d at offset %d outside [0, %d]", ErrBadPlan, i, in.Offset, len(src))
		}
		if in.Offset >= prev {
			return nil, fmt.Errorf("%w: insertion %d at offset %d does not descend from %d", ErrBadPlan, i, in.Offset, prev)
		}
		prev = in.Offset
		size += len(in.Text)
	}

	out := make([]byte, 0, size)
	last := 0
	for i := len(plan.Insertions) - 1; i >= 0; i-- {
		in := plan.Insertions[i]
		out = append(out, src[last:in.Offset]...)
		out = append(out, in.Text...)
		last = in.Offset
	}
	return append(out, src[last:]...), nil
}
