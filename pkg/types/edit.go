// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "fmt"

// Insertion inserts Text before the byte at Offset of the original buffer.
type Insertion struct {
	Offset int
	Text   string
}

func (i Insertion) String() string {
	return fmt.Sprintf("%d:%q", i.Offset, i.Text)
}

// EditPlan is a list of insertions ordered by descending offset. Every offset
// refers to the original, unmodified buffer, so applying the insertions in
// order never needs to account for the effect of earlier ones.
type EditPlan struct {
	Insertions []Insertion
}

// Len returns the number of insertions in the plan.
func (p EditPlan) Len() int {
	return len(p.Insertions)
}

// Empty reports whether the plan has no insertions.
func (p EditPlan) Empty() bool {
	return len(p.Insertions) == 0
}
