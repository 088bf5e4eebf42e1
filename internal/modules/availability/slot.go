package availability

import (
	"time"
)

// LocalLayout is the wall-clock timestamp format used for slot boundaries.
// It carries no offset; the zone travels separately as an IANA id.
const LocalLayout = "2006-01-02T15:04:05"

const dateLayout = "2006-01-02"

// Slot is one bookable interval on a calendar day.
type Slot struct {
	StartLocal string `json:"startLocal"`
	EndLocal   string `json:"endLocal"`
	Booked     bool   `json:"booked"`
}

// SlotKey identifies a slot within a day.
type SlotKey struct {
	StartLocal string
	EndLocal   string
}

func (s Slot) Key() SlotKey { return SlotKey{StartLocal: s.StartLocal, EndLocal: s.EndLocal} }

// Date returns the calendar day the slot starts on.
func (s Slot) Date() string {
	if len(s.StartLocal) < len(dateLayout) {
		return ""
	}
	return s.StartLocal[:len(dateLayout)]
}

// Start resolves the wall-clock start in loc.
func (s Slot) Start(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(LocalLayout, s.StartLocal, loc)
}

// End resolves the wall-clock end in loc.
func (s Slot) End(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(LocalLayout, s.EndLocal, loc)
}

// DayAvailability is the ordered slot list of one mentor on one date.
type DayAvailability struct {
	MentorID int64  `json:"mentorId"`
	Date     string `json:"date"`
	Timezone string `json:"timezone"`
	Slots    []Slot `json:"slots"`
}

// MonthIndex lists the dates of a month that have at least one slot.
type MonthIndex struct {
	MentorID int64    `json:"mentorId"`
	Month    string   `json:"month"`
	Days     []string `json:"days"`
}
