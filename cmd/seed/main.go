package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"hash/fnv"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/dom/tutoring-scheduler/internal/auth"
	"github.com/dom/tutoring-scheduler/internal/cache"
	"github.com/dom/tutoring-scheduler/internal/config"
	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/dom/tutoring-scheduler/internal/repository"
	"github.com/dom/tutoring-scheduler/internal/repository/postgres"
	"github.com/dom/tutoring-scheduler/internal/service"
	"github.com/google/uuid"
	"gorm.io/gorm/logger"
)

type person struct {
	seed      string
	firstName string
	lastName  string
	email     string
}

var tutors = []person{
	{"ada", "Ada", "Lovelace", "ada.lovelace@tutors.example"},
	{"alan", "Alan", "Turing", "alan.turing@tutors.example"},
	{"grace", "Grace", "Hopper", "grace.hopper@tutors.example"},
}

var students = []person{
	{"sam", "Sam", "Carter", "sam.carter@students.example"},
	{"jo", "Jo", "Nakamura", "jo.nakamura@students.example"},
	{"lee", "Lee", "Okafor", "lee.okafor@students.example"},
	{"ria", "Ria", "Mendes", "ria.mendes@students.example"},
}

// tutor seed, student seed, consultation seed, timing
var consultations = [][4]string{
	{"ada", "sam", "recursion", "future"},
	{"ada", "jo", "proofs", "past"},
	{"alan", "sam", "automata", "future"},
	{"alan", "lee", "complexity", "future"},
	{"grace", "ria", "compilers", "past"},
	{"grace", "jo", "debugging", "future"},
}

func main() {
	password := flag.String("password", "", "password for every seeded account (default $SEED_PASSWORD)")
	flag.Parse()

	if *password == "" {
		*password = os.Getenv("SEED_PASSWORD")
	}
	if len(*password) < 8 {
		fmt.Println("Error: a password of at least 8 characters is required (-password or SEED_PASSWORD)")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL, logger.Warn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	repos := postgres.NewRepositories(db)
	tutorCache := cache.NewRedis(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, nil)
	defer tutorCache.Close()
	services := service.NewServices(repos, tutorCache, cfg)

	ctx := context.Background()

	fmt.Println("Seeding tutors...")
	tutorIDs := make(map[string]uuid.UUID)
	for _, p := range tutors {
		id, err := upsert(ctx, repos, p, func() (uuid.UUID, error) {
			tutor, err := services.Auth.RegisterTutor(ctx, signUpInput(p, *password))
			if err != nil {
				return uuid.Nil, err
			}
			return tutor.ID, nil
		})
		if err != nil {
			log.Fatalf("failed to seed tutor %s: %v", p.email, err)
		}
		tutorIDs[p.seed] = id
		fmt.Printf("  %s %s (%s)\n", p.firstName, p.lastName, id)
	}

	fmt.Println("Seeding students...")
	studentIDs := make(map[string]uuid.UUID)
	for _, p := range students {
		id, err := upsert(ctx, repos, p, func() (uuid.UUID, error) {
			student, err := services.Auth.SignUp(ctx, signUpInput(p, *password))
			if err != nil {
				return uuid.Nil, err
			}
			return student.ID, nil
		})
		if err != nil {
			log.Fatalf("failed to seed student %s: %v", p.email, err)
		}
		studentIDs[p.seed] = id
		fmt.Printf("  %s %s (%s)\n", p.firstName, p.lastName, id)
	}

	fmt.Println("Seeding consultations...")
	var existing int64
	if err := db.Model(&domain.Consultation{}).Count(&existing).Error; err != nil {
		log.Fatalf("failed to count consultations: %v", err)
	}
	if existing > 0 {
		fmt.Printf("  Skipping, %d consultation(s) already exist.\n", existing)
		return
	}

	for _, c := range consultations {
		tutorID, studentID, seed, timing := tutorIDs[c[0]], studentIDs[c[1]], c[2], c[3]

		// Book as the student, the way the app would.
		asStudent := auth.WithPrincipal(ctx, domain.Principal{ID: studentID})
		consultation, err := services.Consultation.Create(asStudent, service.CreateConsultationInput{
			TutorID:   tutorID,
			StudentID: studentID,
			Reason:    "Help with " + seed,
			StartTime: seededTime(seed, timing == "past"),
		})
		if err != nil {
			log.Fatalf("failed to seed consultation %s: %v", seed, err)
		}

		if timing == "past" {
			if _, err := services.Consultation.UpdateStatus(asStudent, consultation.ID, domain.ConsultationStatusCompleted); err != nil {
				log.Fatalf("failed to complete consultation %s: %v", seed, err)
			}
		}
		fmt.Printf("  %s: %s\n", seed, consultation.StartTime.Format(time.RFC3339))
	}
}

func signUpInput(p person, password string) service.SignUpInput {
	return service.SignUpInput{
		Email:     p.email,
		Password:  password,
		FirstName: p.firstName,
		LastName:  p.lastName,
	}
}

// upsert creates the account through create, or returns the existing
// account's id when the email is already registered.
func upsert(ctx context.Context, repos *repository.Repositories, p person, create func() (uuid.UUID, error)) (uuid.UUID, error) {
	id, err := create()
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, domain.ErrEmailTaken) {
		return uuid.Nil, err
	}
	account, err := repos.Account.GetByEmail(ctx, p.email)
	if err != nil {
		return uuid.Nil, err
	}
	return account.ID, nil
}

// seededTime picks a stable slot on the hour, 1 to 365 days from now in the
// requested direction.
func seededTime(seed string, past bool) time.Time {
	h := fnv.New64a()
	h.Write([]byte(seed))
	r := rand.New(rand.NewPCG(h.Sum64(), 0))

	days := 1 + r.IntN(365)
	if past {
		days = -days
	}
	day := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, days)
	return day.Add(time.Duration(9+r.IntN(8)) * time.Hour)
}
