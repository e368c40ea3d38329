package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"placement/internal/models"
	"placement/internal/service"
	"placement/internal/store"

	"github.com/brianvoe/gofakeit/v6"
)

var jobTitles = []string{
	"Frontend Developer", "Backend Developer", "Data Analyst",
	"DevOps Engineer", "QA Engineer", "Product Analyst",
	"Machine Learning Intern", "Mobile Developer", "Site Reliability Engineer",
}

var courses = []string{
	"Computer Science", "Information Technology", "Electronics",
	"Mechanical Engineering", "Mathematics",
}

var skillPool = []string{
	"Go", "Python", "JavaScript", "React", "SQL", "Docker",
	"Kubernetes", "Linux", "AWS", "TypeScript",
}

var jobTypes = []models.JobType{
	models.JobTypeFullTime, models.JobTypePartTime,
	models.JobTypeInternship, models.JobTypeContract,
}

// Factory builds demo users, jobs, and applications through the access
// layer so every invariant (unique emails, snapshots, one application per
// job and student) holds for generated data too.
type Factory struct {
	auth *service.AuthService
	user *service.UserService
	jobs *service.JobService
	apps *service.ApplicationService
	rand *rand.Rand
}

// NewFactory creates a Factory over the given services.
func NewFactory(deps *service.Deps) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		auth: service.NewAuthService(deps),
		user: service.NewUserService(deps),
		jobs: service.NewJobService(deps),
		apps: service.NewApplicationService(deps),
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate populates the store with opts.NumCompanies companies,
// opts.NumStudents students with resumes on file, jobs for each company,
// and a scattering of applications.
func (f *Factory) Generate(ctx context.Context, st store.Store, opts Options) error {
	if opts.ShouldClean {
		for _, key := range []string{store.KeyUsers, store.KeyJobs, store.KeyApplications} {
			if err := st.Delete(ctx, key); err != nil {
				return err
			}
		}
		if err := store.ClearSession(ctx, st); err != nil {
			return err
		}
	}

	companies := make([]*models.User, 0, opts.NumCompanies)
	for i := 0; i < opts.NumCompanies; i++ {
		company, err := f.CreateCompany(ctx)
		if err != nil {
			return err
		}
		companies = append(companies, company)
	}

	perCompany := opts.JobsPerCompany
	if perCompany <= 0 {
		perCompany = 2
	}
	var jobs []*models.Job
	for _, company := range companies {
		for i := 0; i < perCompany; i++ {
			job, err := f.CreateJob(ctx, company)
			if err != nil {
				return err
			}
			jobs = append(jobs, job)
		}
	}

	for i := 0; i < opts.NumStudents; i++ {
		student, err := f.CreateStudent(ctx)
		if err != nil {
			return err
		}
		// Roughly half the students apply somewhere.
		if len(jobs) > 0 && f.rand.Intn(2) == 0 {
			job := jobs[f.rand.Intn(len(jobs))]
			if _, err := f.apps.Create(ctx, service.CreateApplicationInput{
				JobID:     job.ID,
				StudentID: student.ID,
			}); err != nil {
				return err
			}
		}
	}

	// Generation went through Register, which leaves the last account as
	// the session; demo data should start logged out.
	return f.auth.Logout(ctx)
}

// CreateCompany registers a company account with generated fields.
func (f *Factory) CreateCompany(ctx context.Context) (*models.User, error) {
	name := gofakeit.Company()
	return f.auth.Register(ctx, service.RegisterInput{
		Name:     name,
		Email:    fmt.Sprintf("%s-%s@example.com", slugify(name), gofakeit.LetterN(4)),
		Password: gofakeit.Password(true, true, true, false, false, 10),
		Role:     models.RoleCompany,
		Phone:    gofakeit.Phone(),
		Company: &models.CompanyProfile{
			Industry:    gofakeit.BuzzWord(),
			Description: gofakeit.Sentence(8),
		},
	})
}

// CreateStudent registers a student account with generated fields and a
// resume reference already on file, so the student can apply immediately.
func (f *Factory) CreateStudent(ctx context.Context) (*models.User, error) {
	name := gofakeit.Name()
	student, err := f.auth.Register(ctx, service.RegisterInput{
		Name:     name,
		Email:    fmt.Sprintf("%s-%s@student.example.com", slugify(name), gofakeit.LetterN(4)),
		Password: gofakeit.Password(true, true, true, false, false, 10),
		Role:     models.RoleStudent,
		Phone:    gofakeit.Phone(),
		Student: &models.StudentProfile{
			Enrollment: fmt.Sprintf("%d%s%03d", time.Now().Year(), "CS", f.rand.Intn(999)+1),
			Course:     courses[f.rand.Intn(len(courses))],
			Year:       fmt.Sprintf("%d", f.rand.Intn(4)+1),
			CGPA:       fmt.Sprintf("%.1f", 6.0+f.rand.Float64()*4.0),
			Skills:     pickSkills(f.rand),
		},
	})
	if err != nil {
		return nil, err
	}
	return f.user.SetResume(ctx, student.ID, &models.ResumeRef{
		URL:  fmt.Sprintf("/uploads/resumes/%s.pdf", gofakeit.UUID()),
		Name: slugify(name) + "-resume.pdf",
		Size: int64(f.rand.Intn(400_000) + 50_000),
	})
}

// CreateJob posts a generated job under the given company.
func (f *Factory) CreateJob(ctx context.Context, company *models.User) (*models.Job, error) {
	deadline := time.Now().AddDate(0, 0, f.rand.Intn(90)+14)
	return f.jobs.Create(ctx, service.CreateJobInput{
		CompanyID:    company.ID,
		Title:        jobTitles[f.rand.Intn(len(jobTitles))],
		Description:  gofakeit.Paragraph(1, 3, 8, " "),
		Requirements: pickSkills(f.rand),
		Location:     gofakeit.City(),
		Salary:       fmt.Sprintf("%d-%d LPA", f.rand.Intn(8)+4, f.rand.Intn(10)+12),
		Type:         jobTypes[f.rand.Intn(len(jobTypes))],
		Deadline:     deadline.Format("2006-01-02"),
	})
}

func pickSkills(r *rand.Rand) []string {
	n := r.Intn(3) + 2
	picked := make([]string, 0, n)
	seen := map[string]bool{}
	for len(picked) < n {
		skill := skillPool[r.Intn(len(skillPool))]
		if !seen[skill] {
			seen[skill] = true
			picked = append(picked, skill)
		}
	}
	return picked
}

func slugify(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
