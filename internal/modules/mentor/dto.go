package mentor

import (
	"mentorhub/internal/domain"
	"mentorhub/internal/pkg/utils"
)

// MentorView is the directory card of a published mentor.
type MentorView struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Headline        string   `json:"headline"`
	Bio             string   `json:"bio"`
	Country         string   `json:"country"`
	Timezone        string   `json:"timezone"`
	YearsExperience int      `json:"yearsExperience"`
	Specialties     []string `json:"specialties"`
	Languages       []string `json:"languages"`
	SessionKinds    []string `json:"sessionKinds"`
}

func toView(p domain.MentorProfile) MentorView {
	v := MentorView{
		ID:              p.UserID,
		Headline:        p.Headline,
		Bio:             p.Bio,
		Country:         p.Country,
		Timezone:        p.Timezone,
		YearsExperience: p.YearsExperience,
		Specialties:     utils.StringToList(p.Specialties),
		Languages:       utils.StringToList(p.Languages),
		SessionKinds:    utils.StringToList(p.SessionKinds),
	}
	if p.User != nil {
		v.Name = p.User.Name
	}
	return v
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}
