package availability

// SaveDayRequest replaces every slot of Date. Booked flags sent by the
// caller are ignored.
type SaveDayRequest struct {
	Date     string `json:"date" binding:"required"`
	Timezone string `json:"timezone" binding:"required"`
	Slots    []Slot `json:"slots"`
}

type dayQuery struct {
	MentorID int64  `form:"mentorId"`
	Date     string `form:"date"`
	Month    string `form:"month"`
}
