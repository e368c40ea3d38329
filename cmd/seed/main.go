// Command seed populates the portal store with demo data: the built-in
// sample accounts, optionally a YAML fixture of named accounts, and
// optionally generated bulk data.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"placement/internal/config"
	"placement/internal/models"
	"placement/internal/seed"
	"placement/internal/service"
	"placement/internal/store"

	"gopkg.in/yaml.v3"
)

type fixture struct {
	Companies []struct {
		Name        string `yaml:"name"`
		Email       string `yaml:"email"`
		Password    string `yaml:"password"`
		Phone       string `yaml:"phone"`
		Industry    string `yaml:"industry"`
		Description string `yaml:"description"`
	} `yaml:"companies"`
	Students []struct {
		Name       string   `yaml:"name"`
		Email      string   `yaml:"email"`
		Password   string   `yaml:"password"`
		Phone      string   `yaml:"phone"`
		Enrollment string   `yaml:"enrollment"`
		Course     string   `yaml:"course"`
		Year       string   `yaml:"year"`
		CGPA       string   `yaml:"cgpa"`
		Skills     []string `yaml:"skills"`
	} `yaml:"students"`
}

func main() {
	students := flag.Int("students", 0, "number of generated student accounts")
	companies := flag.Int("companies", 0, "number of generated company accounts")
	jobsPer := flag.Int("jobs-per-company", 2, "generated jobs per generated company")
	clean := flag.Bool("clean", false, "wipe all collections before seeding")
	fixturePath := flag.String("fixture", "", "YAML fixture of named accounts to register")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var st store.Store
	switch cfg.StoreBackend {
	case config.StoreBackendFile:
		st, err = store.NewFileStore(cfg.DataDir)
	case config.StoreBackendRedis:
		st, err = store.NewRedisStore(ctx, cfg.RedisURL)
	default:
		log.Fatalf("Seeding requires a durable store backend, got %q", cfg.StoreBackend)
	}
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer func() { _ = st.Close() }()

	deps := service.NewDeps(st)
	factory := seed.NewFactory(deps)

	if *clean || *students > 0 || *companies > 0 {
		if err := factory.Generate(ctx, st, seed.Options{
			NumStudents:    *students,
			NumCompanies:   *companies,
			JobsPerCompany: *jobsPer,
			ShouldClean:    *clean,
		}); err != nil {
			log.Fatalf("Bulk generation failed: %v", err)
		}
	}

	if err := seed.EnsureSampleData(ctx, st, deps); err != nil {
		log.Fatalf("Sample data seeding failed: %v", err)
	}

	if *fixturePath != "" {
		if err := applyFixture(ctx, deps, *fixturePath); err != nil {
			log.Fatalf("Fixture seeding failed: %v", err)
		}
	}

	log.Println("Seeding complete")
}

func applyFixture(ctx context.Context, deps *service.Deps, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}
	var fx fixture
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	auth := service.NewAuthService(deps)
	for _, c := range fx.Companies {
		_, err := auth.Register(ctx, service.RegisterInput{
			Name:     c.Name,
			Email:    c.Email,
			Password: c.Password,
			Role:     models.RoleCompany,
			Phone:    c.Phone,
			Company: &models.CompanyProfile{
				Industry:    c.Industry,
				Description: c.Description,
			},
		})
		if err != nil {
			if models.HasCode(err, models.CodeDuplicateEmail) {
				log.Printf("Skipping existing company %s", c.Email)
				continue
			}
			return err
		}
	}
	for _, s := range fx.Students {
		_, err := auth.Register(ctx, service.RegisterInput{
			Name:     s.Name,
			Email:    s.Email,
			Password: s.Password,
			Role:     models.RoleStudent,
			Phone:    s.Phone,
			Student: &models.StudentProfile{
				Enrollment: s.Enrollment,
				Course:     s.Course,
				Year:       s.Year,
				CGPA:       s.CGPA,
				Skills:     s.Skills,
			},
		})
		if err != nil {
			if models.HasCode(err, models.CodeDuplicateEmail) {
				log.Printf("Skipping existing student %s", s.Email)
				continue
			}
			return err
		}
	}

	// Registration sets the session as a side effect; fixtures should not
	// leave anyone logged in.
	return auth.Logout(ctx)
}
