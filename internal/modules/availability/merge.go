package availability

import (
	"cmp"
	"slices"
)

// Merge unions existing and generated by (start, end). On a key collision the
// existing slot is kept, booked flag included. The result is sorted by start
// then end.
func Merge(existing, generated []Slot) []Slot {
	seen := make(map[SlotKey]struct{}, len(existing)+len(generated))
	out := make([]Slot, 0, len(existing)+len(generated))

	for _, src := range [][]Slot{existing, generated} {
		for _, s := range src {
			if _, ok := seen[s.Key()]; ok {
				continue
			}
			seen[s.Key()] = struct{}{}
			out = append(out, s)
		}
	}

	SortSlots(out)
	return out
}

// SortSlots orders slots ascending by start, ties by end.
func SortSlots(slots []Slot) {
	slices.SortFunc(slots, func(a, b Slot) int {
		if c := cmp.Compare(a.StartLocal, b.StartLocal); c != 0 {
			return c
		}
		return cmp.Compare(a.EndLocal, b.EndLocal)
	})
}
