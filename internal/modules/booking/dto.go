package booking

type CreateBookingRequest struct {
	MentorID    int64  `json:"mentorId"`
	StartLocal  string `json:"startLocal"`
	EndLocal    string `json:"endLocal"`
	Timezone    string `json:"timezone"`
	Notes       string `json:"notes"`
	MenteeEmail string `json:"menteeEmail" validate:"omitempty,email"`

	MenteeID int64 `json:"-"`
}

type AddToCartRequest = Selection
