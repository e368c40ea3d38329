// Package seed provides helpers to create demo and test data for the
// portal. Intended for development and testing only.
package seed

import (
	"context"
	"log"

	"placement/internal/models"
	"placement/internal/service"
	"placement/internal/store"
)

// Options configuration for the seeder
type Options struct {
	NumStudents    int
	NumCompanies   int
	JobsPerCompany int
	ShouldClean    bool
}

// EnsureSampleData writes the portal's built-in demo accounts and a sample
// job, but only for collections that are still absent. Safe to run on every
// startup.
func EnsureSampleData(ctx context.Context, st store.Store, deps *service.Deps) error {
	if _, ok, err := st.Get(ctx, store.KeyUsers); err != nil {
		return err
	} else if !ok {
		users := sampleUsers(deps)
		if err := store.SaveAll(ctx, st, store.KeyUsers, users); err != nil {
			return err
		}
		log.Printf("Seeded %d sample users", len(users))

		if _, ok, err := st.Get(ctx, store.KeyJobs); err != nil {
			return err
		} else if !ok {
			jobs := sampleJobs(deps, users)
			if err := store.SaveAll(ctx, st, store.KeyJobs, jobs); err != nil {
				return err
			}
			log.Printf("Seeded %d sample jobs", len(jobs))
		}
	}

	if _, ok, err := st.Get(ctx, store.KeyApplications); err != nil {
		return err
	} else if !ok {
		if err := store.SaveAll(ctx, st, store.KeyApplications, []models.Application{}); err != nil {
			return err
		}
	}
	return nil
}

func sampleUsers(deps *service.Deps) []models.User {
	now := deps.Clock.Now()
	return []models.User{
		{
			ID:        deps.IDs.NewID(),
			Name:      "Admin User",
			Email:     "admin@placement.com",
			Password:  "admin123",
			Role:      models.RoleAdmin,
			Phone:     "111-111-1111",
			IsActive:  true,
			CreatedAt: now,
		},
		{
			ID:       deps.IDs.NewID(),
			Name:     "Tech Solutions Inc.",
			Email:    "company@placement.com",
			Password: "company123",
			Role:     models.RoleCompany,
			Phone:    "222-222-2222",
			IsActive: true,
			Company: &models.CompanyProfile{
				Industry:    "Technology",
				Description: "Leading tech company",
			},
			CreatedAt: now,
		},
		{
			ID:       deps.IDs.NewID(),
			Name:     "John Student",
			Email:    "student@placement.com",
			Password: "student123",
			Role:     models.RoleStudent,
			Phone:    "333-333-3333",
			IsActive: true,
			Student: &models.StudentProfile{
				Enrollment: "2024CS001",
				Course:     "Computer Science",
				Year:       "Final",
				CGPA:       "8.5",
				Skills:     []string{"JavaScript", "React", "Node.js"},
			},
			CreatedAt: now,
		},
	}
}

func sampleJobs(deps *service.Deps, users []models.User) []models.Job {
	var company *models.User
	for i := range users {
		if users[i].Role == models.RoleCompany {
			company = &users[i]
			break
		}
	}
	if company == nil {
		return []models.Job{}
	}
	return []models.Job{
		{
			ID:           deps.IDs.NewID(),
			CompanyID:    company.ID,
			CompanyName:  company.Name,
			Title:        "Frontend Developer",
			Description:  "We are looking for a skilled Frontend Developer to join our team.",
			Requirements: []string{"React", "JavaScript", "HTML/CSS"},
			Location:     "Bangalore",
			Salary:       "8-12 LPA",
			Type:         models.JobTypeFullTime,
			Deadline:     "2026-12-31",
			CreatedAt:    deps.Clock.Now(),
		},
	}
}
