package reference

import (
	"fmt"
	"regexp"
	"time"
)

// Pattern matches a well-formed reference number, e.g. GT-2025-0001.
// The sequence is at least four digits and grows without bound.
var Pattern = regexp.MustCompile(`^GT-\d{4}-\d{4,}$`)

// Allocator produces human-readable, year-scoped quote reference numbers.
// It holds no state between calls; every allocation is recomputed from the
// full set of references the caller knows about. Uniqueness under concurrent
// allocation is closed by the repository's uniqueness constraint, not here.
type Allocator struct {
	now func() time.Time
}

// NewAllocator creates an allocator using the system clock.
func NewAllocator() *Allocator {
	return &Allocator{now: time.Now}
}

// NewAllocatorWithClock creates an allocator with an injected clock.
func NewAllocatorWithClock(now func() time.Time) *Allocator {
	return &Allocator{now: now}
}

// Allocate returns the first reference of the current year not present in
// used. The sequence is zero-padded to four digits and extends beyond four
// digits rather than wrapping once a year passes 9999 quotes.
func (a *Allocator) Allocate(used map[string]struct{}) string {
	year := a.now().Year()
	for seq := 1; ; seq++ {
		candidate := fmt.Sprintf("GT-%d-%04d", year, seq)
		if _, taken := used[candidate]; !taken {
			return candidate
		}
	}
}
