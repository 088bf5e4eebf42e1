package availability

import (
	"iter"
	"slices"
	"time"
)

// Generate returns the contiguous slots of intervalMinutes between start and
// end ("HH:mm") on date ("YYYY-MM-DD"). A trailing remainder shorter than the
// interval is dropped. The sequence is lazy and can be ranged over repeatedly.
func Generate(date, start, end string, intervalMinutes int) (iter.Seq[Slot], error) {
	from, err := time.Parse("2006-01-02 15:04", date+" "+start)
	if err != nil {
		return nil, ErrInvalidRange
	}
	to, err := time.Parse("2006-01-02 15:04", date+" "+end)
	if err != nil {
		return nil, ErrInvalidRange
	}
	if !to.After(from) || intervalMinutes <= 0 {
		return nil, ErrInvalidRange
	}
	step := time.Duration(intervalMinutes) * time.Minute

	return func(yield func(Slot) bool) {
		for cursor := from; !cursor.Add(step).After(to); cursor = cursor.Add(step) {
			s := Slot{
				StartLocal: cursor.Format(LocalLayout),
				EndLocal:   cursor.Add(step).Format(LocalLayout),
			}
			if !yield(s) {
				return
			}
		}
	}, nil
}

// GenerateSlots is Generate collected into a slice.
func GenerateSlots(date, start, end string, intervalMinutes int) ([]Slot, error) {
	seq, err := Generate(date, start, end, intervalMinutes)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}
