package onboarding

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"mentorhub/internal/domain"
	"mentorhub/internal/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	states  StateRepository
	mentors MentorPublisher
	users   UserCompleter
	log     *zap.Logger
}

func NewService(states StateRepository, mentors MentorPublisher, users UserCompleter, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{states: states, mentors: mentors, users: users, log: log}
}

// State returns the user's wizard progress, starting a fresh one if needed.
func (s *Service) State(ctx context.Context, userID int64, role domain.UserRole) (*View, error) {
	st, payload, err := s.load(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	return view(st, payload), nil
}

// SubmitStep validates and stores one step. Steps already passed may be
// resubmitted; a step beyond the next pending one is rejected.
func (s *Service) SubmitStep(ctx context.Context, userID int64, role domain.UserRole, req SubmitStepRequest) (*View, error) {
	st, payload, err := s.load(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	flow := Flow(st.Role)

	idx := slices.Index(flow, req.Step)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q is not a %s step", ErrUnknownStep, req.Step, st.Role)
	}
	next := len(flow)
	if !st.Completed {
		next = slices.Index(flow, StepName(st.NextStep))
	}
	if idx > next {
		return nil, fmt.Errorf("%w: expected %s", ErrStepOutOfOrder, st.NextStep)
	}

	step, err := decodeStep(req.Step, req.Data)
	if err != nil {
		return nil, err
	}
	if err := step.Validate(); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(step)
	if err != nil {
		return nil, err
	}
	payload[req.Step] = raw

	finishing := false
	if idx == next {
		if idx+1 < len(flow) {
			st.NextStep = string(flow[idx+1])
		} else {
			st.NextStep = ""
			finishing = !st.Completed
			st.Completed = true
		}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	st.Payload = string(encoded)
	if err := s.states.Save(ctx, st); err != nil {
		return nil, err
	}
	s.log.Info("onboarding step saved", zap.Int64("user_id", userID), zap.String("step", string(req.Step)))

	if st.Completed && (finishing || st.Role == domain.RoleMentor) {
		if err := s.finish(ctx, st, payload); err != nil {
			return nil, err
		}
	}
	return view(st, payload), nil
}

// finish publishes the mentor profile and marks the account onboarded. It
// also runs when a completed mentor edits a step so the directory stays in sync.
func (s *Service) finish(ctx context.Context, st *domain.OnboardingState, payload map[StepName]json.RawMessage) error {
	if st.Role == domain.RoleMentor {
		profile, err := mentorProfile(st.UserID, payload)
		if err != nil {
			return err
		}
		if err := s.mentors.Upsert(ctx, profile); err != nil {
			return fmt.Errorf("publish mentor profile: %w", err)
		}
	}
	if err := s.users.MarkOnboardingCompleted(ctx, st.UserID); err != nil {
		return err
	}
	s.log.Info("onboarding completed", zap.Int64("user_id", st.UserID), zap.String("role", string(st.Role)))
	return nil
}

func (s *Service) load(ctx context.Context, userID int64, role domain.UserRole) (*domain.OnboardingState, map[StepName]json.RawMessage, error) {
	if len(Flow(role)) == 0 {
		return nil, nil, ErrRoleNotSupported
	}
	st, err := s.states.Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if st == nil {
		st = &domain.OnboardingState{UserID: userID, Role: role, NextStep: string(Flow(role)[0])}
	}
	payload := map[StepName]json.RawMessage{}
	if st.Payload != "" {
		if err := json.Unmarshal([]byte(st.Payload), &payload); err != nil {
			return nil, nil, fmt.Errorf("decode onboarding payload: %w", err)
		}
	}
	return st, payload, nil
}

func view(st *domain.OnboardingState, payload map[StepName]json.RawMessage) *View {
	return &View{
		Role:      string(st.Role),
		Steps:     Flow(st.Role),
		NextStep:  StepName(st.NextStep),
		Completed: st.Completed,
		Data:      payload,
	}
}

func mentorProfile(userID int64, payload map[StepName]json.RawMessage) (*domain.MentorProfile, error) {
	var (
		profile  MentorProfileStep
		expert   MentorExpertiseStep
		sessions MentorSessionsStep
	)
	for name, dst := range map[StepName]any{
		StepMentorProfile:   &profile,
		StepMentorExpertise: &expert,
		StepMentorSessions:  &sessions,
	} {
		if err := json.Unmarshal(payload[name], dst); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
	}

	return &domain.MentorProfile{
		UserID:          userID,
		Headline:        profile.Headline,
		Bio:             profile.Bio,
		Country:         profile.Country,
		Timezone:        profile.Timezone,
		YearsExperience: profile.YearsExperience,
		Specialties:     utils.ListToString(resolveOther(expert.Specialties, expert.OtherSpecialty)),
		Languages:       utils.ListToString(resolveOther(expert.Languages, expert.OtherLanguage)),
		SessionKinds:    utils.ListToString(sessions.SessionKinds),
		Published:       true,
	}, nil
}
