package main

import (
	"context"
	"log"
	"time"

	"mentorhub/internal/config"
	"mentorhub/internal/database"
	"mentorhub/internal/domain"
	"mentorhub/internal/modules/availability"
	"mentorhub/internal/pkg/utils"
	"mentorhub/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

type demoMentor struct {
	email       string
	name        string
	headline    string
	country     string
	timezone    string
	specialties []string
	languages   []string
	kinds       []string
	years       int
}

var mentors = []demoMentor{
	{"lucia@mentorhub.io", "Lucía Herrera", "Staff engineer en pagos", "CO", "America/Bogota",
		[]string{"Backend", "Pagos"}, []string{"es", "en"}, []string{"express", "profunda"}, 12},
	{"diego@mentorhub.io", "Diego Ramos", "Product manager de marketplaces", "MX", "America/Mexico_City",
		[]string{"Producto", "Growth"}, []string{"es"}, []string{"express"}, 8},
	{"ana@mentorhub.io", "Ana Souza", "Diseñadora de sistemas", "AR", "America/Argentina/Buenos_Aires",
		[]string{"Diseño", "UX"}, []string{"es", "pt"}, []string{"profunda"}, 6},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	db, err := database.Connect(cfg.DatabaseURL, nil)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	ctx := context.Background()
	if err := database.Migrate(ctx, db, cfg.DatabaseURL, nil); err != nil {
		log.Fatal("migrations failed:", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("mentor123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	profiles := repository.NewMentorRepository(db)
	slots := availability.NewService(repository.NewAvailabilityRepository(db), nil)

	for _, m := range mentors {
		user := domain.User{
			Email:               m.email,
			PasswordHash:        string(hash),
			Name:                m.name,
			Role:                domain.RoleMentor,
			OnboardingCompleted: true,
		}
		// Upsert by email so the seed can be re-run.
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "role", "onboarding_completed", "updated_at"}),
		}).Create(&user).Error; err != nil {
			log.Fatalf("user %s: %v", m.email, err)
		}
		if err := db.Where("email = ?", m.email).First(&user).Error; err != nil {
			log.Fatalf("user %s: %v", m.email, err)
		}

		if err := profiles.Upsert(ctx, &domain.MentorProfile{
			UserID:          user.ID,
			Headline:        m.headline,
			Bio:             m.headline + ". Sesiones prácticas con ejemplos reales.",
			Country:         m.country,
			Timezone:        m.timezone,
			Specialties:     utils.ListToString(m.specialties),
			Languages:       utils.ListToString(m.languages),
			SessionKinds:    utils.ListToString(m.kinds),
			YearsExperience: m.years,
			Published:       true,
		}); err != nil {
			log.Fatalf("profile %s: %v", m.email, err)
		}

		loc, err := time.LoadLocation(m.timezone)
		if err != nil {
			log.Fatalf("timezone %s: %v", m.timezone, err)
		}
		day := time.Now().In(loc)
		created := 0
		for i := 1; i <= 14; i++ {
			d := day.AddDate(0, 0, i)
			if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
				continue
			}
			date := d.Format("2006-01-02")

			existing, err := slots.Day(ctx, user.ID, date, true)
			if err != nil {
				log.Fatalf("availability %s %s: %v", m.email, date, err)
			}
			morning, err := availability.GenerateSlots(date, "09:00", "12:00", 30)
			if err != nil {
				log.Fatal(err)
			}
			merged := availability.Merge(existing.Slots, morning)
			if _, err := slots.SaveDay(ctx, user.ID, availability.SaveDayRequest{
				Date:     date,
				Timezone: m.timezone,
				Slots:    merged,
			}); err != nil {
				log.Fatalf("availability %s %s: %v", m.email, date, err)
			}
			created++
		}
		log.Printf("mentor %s (id=%d): %d days of availability", m.email, user.ID, created)
	}

	log.Println("Seed completed. Mentor password: mentor123")
}
