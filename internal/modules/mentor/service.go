package mentor

import (
	"context"
	"errors"

	"mentorhub/internal/domain"
	"mentorhub/internal/repository"
)

var ErrNotFound = errors.New("mentor not found")

type MentorRepository interface {
	GetPublished(ctx context.Context, userID int64) (*domain.MentorProfile, error)
	Search(ctx context.Context, f repository.MentorFilter) ([]domain.MentorProfile, int64, error)
}

type Service struct {
	mentors MentorRepository
}

func NewService(mentors MentorRepository) *Service {
	return &Service{mentors: mentors}
}

func (s *Service) Search(ctx context.Context, f repository.MentorFilter) ([]MentorView, int64, error) {
	rows, total, err := s.mentors.Search(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]MentorView, 0, len(rows))
	for _, p := range rows {
		out = append(out, toView(p))
	}
	return out, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*MentorView, error) {
	p, err := s.mentors.GetPublished(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	v := toView(*p)
	return &v, nil
}
