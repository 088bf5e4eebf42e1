package onboarding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"mentorhub/internal/domain"
	"mentorhub/internal/pkg/utils"
	"mentorhub/internal/pkg/validator"
)

type StepName string

const (
	StepMentorProfile    StepName = "mentor_profile"
	StepMentorExpertise  StepName = "mentor_expertise"
	StepMentorSessions   StepName = "mentor_sessions"
	StepMenteeGoals      StepName = "mentee_goals"
	StepMenteeBackground StepName = "mentee_background"
)

// OtherOption is the choice that unlocks the free-text sibling field.
const OtherOption = "otro"

var flows = map[domain.UserRole][]StepName{
	domain.RoleMentor: {StepMentorProfile, StepMentorExpertise, StepMentorSessions},
	domain.RoleMentee: {StepMenteeGoals, StepMenteeBackground},
}

// Flow returns the ordered steps for role, or nil if role has no wizard.
func Flow(role domain.UserRole) []StepName {
	return flows[role]
}

// Step is one validated page of the wizard. The set of implementations is
// closed to this package.
type Step interface {
	Name() StepName
	Validate() error
	sealed()
}

type MentorProfileStep struct {
	Headline        string `json:"headline" validate:"required,min=4,max=255"`
	Bio             string `json:"bio" validate:"required,min=20"`
	Country         string `json:"country" validate:"required"`
	Timezone        string `json:"timezone" validate:"timezone"`
	YearsExperience int    `json:"yearsExperience" validate:"gte=0,lte=60"`
}

type MentorExpertiseStep struct {
	Specialties    []string `json:"specialties" validate:"required,min=1,dive,required"`
	OtherSpecialty string   `json:"otherSpecialty"`
	Languages      []string `json:"languages" validate:"required,min=1,dive,required"`
	OtherLanguage  string   `json:"otherLanguage"`
}

type MentorSessionsStep struct {
	SessionKinds []string `json:"sessionKinds" validate:"required,min=1,dive,oneof=express profunda"`
}

type MenteeGoalsStep struct {
	Goals     []string `json:"goals" validate:"required,min=1,dive,required"`
	OtherGoal string   `json:"otherGoal"`
}

type MenteeBackgroundStep struct {
	Level      string   `json:"level" validate:"required,oneof=estudiante junior senior lider otro"`
	OtherLevel string   `json:"otherLevel"`
	Interests  []string `json:"interests" validate:"omitempty,dive,required"`
}

func (MentorProfileStep) Name() StepName    { return StepMentorProfile }
func (MentorExpertiseStep) Name() StepName  { return StepMentorExpertise }
func (MentorSessionsStep) Name() StepName   { return StepMentorSessions }
func (MenteeGoalsStep) Name() StepName      { return StepMenteeGoals }
func (MenteeBackgroundStep) Name() StepName { return StepMenteeBackground }

func (MentorProfileStep) sealed()    {}
func (MentorExpertiseStep) sealed()  {}
func (MentorSessionsStep) sealed()   {}
func (MenteeGoalsStep) sealed()      {}
func (MenteeBackgroundStep) sealed() {}

func (s MentorProfileStep) Validate() error { return check(s) }

func (s MentorExpertiseStep) Validate() error {
	if err := check(s); err != nil {
		return err
	}
	if err := otherField("OtherSpecialty", s.Specialties, s.OtherSpecialty); err != nil {
		return err
	}
	return otherField("OtherLanguage", s.Languages, s.OtherLanguage)
}

func (s MentorSessionsStep) Validate() error { return check(s) }

func (s MenteeGoalsStep) Validate() error {
	if err := check(s); err != nil {
		return err
	}
	return otherField("OtherGoal", s.Goals, s.OtherGoal)
}

func (s MenteeBackgroundStep) Validate() error {
	if err := check(s); err != nil {
		return err
	}
	return otherField("OtherLevel", []string{s.Level}, s.OtherLevel)
}

// StepError lists the invalid fields of a submitted step.
type StepError struct {
	Fields map[string]string
}

func (e *StepError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return "invalid fields: " + strings.Join(keys, ", ")
}

func (e *StepError) Unwrap() error { return ErrValidation }

func check(v any) error {
	if errs := validator.Validate(v); errs != nil {
		return &StepError{Fields: errs}
	}
	return nil
}

// otherField requires text exactly when options contains OtherOption.
func otherField(field string, options []string, text string) error {
	chosen := utils.ContainsFold(options, OtherOption)
	text = strings.TrimSpace(text)
	switch {
	case chosen && text == "":
		return &StepError{Fields: map[string]string{field: "required"}}
	case !chosen && text != "":
		return &StepError{Fields: map[string]string{field: "excluded"}}
	}
	return nil
}

// decodeStep parses raw into the struct registered for name. Unknown fields
// are rejected.
func decodeStep(name StepName, raw json.RawMessage) (Step, error) {
	var target Step
	switch name {
	case StepMentorProfile:
		target = &MentorProfileStep{}
	case StepMentorExpertise:
		target = &MentorExpertiseStep{}
	case StepMentorSessions:
		target = &MentorSessionsStep{}
	case StepMenteeGoals:
		target = &MenteeGoalsStep{}
	case StepMenteeBackground:
		target = &MenteeBackgroundStep{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStep, name)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return deref(target), nil
}

func deref(s Step) Step {
	switch v := s.(type) {
	case *MentorProfileStep:
		return *v
	case *MentorExpertiseStep:
		return *v
	case *MentorSessionsStep:
		return *v
	case *MenteeGoalsStep:
		return *v
	case *MenteeBackgroundStep:
		return *v
	}
	return s
}

// resolveOther swaps the "otro" option for the typed text.
func resolveOther(options []string, other string) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		if strings.EqualFold(strings.TrimSpace(o), OtherOption) {
			if other = strings.TrimSpace(other); other != "" {
				out = append(out, other)
			}
			continue
		}
		out = append(out, strings.TrimSpace(o))
	}
	return out
}
