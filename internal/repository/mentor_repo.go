package repository

import (
	"context"
	"fmt"
	"strings"

	"mentorhub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MentorRepository struct {
	db *gorm.DB
}

func NewMentorRepository(db *gorm.DB) *MentorRepository {
	return &MentorRepository{db: db}
}

type MentorFilter struct {
	Query       string
	Specialty   string
	Language    string
	SessionKind string
	Limit       int
	Offset      int
}

func (r *MentorRepository) Upsert(ctx context.Context, p *domain.MentorProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"headline", "bio", "country", "timezone", "specialties", "languages",
			"session_kinds", "years_experience", "published", "updated_at",
		}),
	}).Create(p).Error
}

func (r *MentorRepository) GetByUserID(ctx context.Context, userID int64) (*domain.MentorProfile, error) {
	var p domain.MentorProfile
	if err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// GetPublished returns a published profile by mentor (user) id.
func (r *MentorRepository) GetPublished(ctx context.Context, userID int64) (*domain.MentorProfile, error) {
	var p domain.MentorProfile
	err := r.db.WithContext(ctx).Preload("User").
		Where("user_id = ? AND published = ?", userID, true).
		First(&p).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// Search lists published profiles matching f and the total match count.
// List columns hold JSON arrays, so tag filters match the quoted element.
func (r *MentorRepository) Search(ctx context.Context, f MentorFilter) ([]domain.MentorProfile, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.MentorProfile{}).
		Joins("JOIN users ON users.id = mentor_profiles.user_id").
		Where("mentor_profiles.published = ?", true)

	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(users.name) LIKE ? OR LOWER(mentor_profiles.headline) LIKE ? OR LOWER(mentor_profiles.bio) LIKE ?)", like, like, like)
	}
	if s := strings.TrimSpace(f.Specialty); s != "" {
		q = q.Where("LOWER(mentor_profiles.specialties) LIKE ?", jsonElementLike(s))
	}
	if s := strings.TrimSpace(f.Language); s != "" {
		q = q.Where("LOWER(mentor_profiles.languages) LIKE ?", jsonElementLike(s))
	}
	if s := strings.TrimSpace(f.SessionKind); s != "" {
		q = q.Where("LOWER(mentor_profiles.session_kinds) LIKE ?", jsonElementLike(s))
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count mentors: %w", err)
	}

	var out []domain.MentorProfile
	err := q.Preload("User").
		Order("mentor_profiles.years_experience DESC, mentor_profiles.id ASC").
		Limit(f.Limit).Offset(f.Offset).
		Find(&out).Error
	if err != nil {
		return nil, 0, fmt.Errorf("search mentors: %w", err)
	}
	return out, total, nil
}

func jsonElementLike(v string) string {
	return `%"` + strings.ToLower(v) + `"%`
}
