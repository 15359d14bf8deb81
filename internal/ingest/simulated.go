package ingest

import (
	"context"
	"fmt"
	"time"

	"jobradar/internal/domain/job"
)

var (
	simCompanies = []string{"Google", "Amazon", "Microsoft", "Apple", "Meta", "Netflix", "Stripe", "Figma", "Notion", "GitLab"}
	simLocations = []string{"San Francisco, CA", "New York, NY", "Seattle, WA", "Austin, TX", "Denver, CO", "Remote"}
	simTitles    = []string{
		"Senior Machine Learning Engineer",
		"Data Engineer",
		"ML Platform Engineer",
		"Python Backend Engineer",
		"Full Stack ML Engineer",
		"Analytics Engineer",
		"Data Scientist",
		"ML Operations Engineer",
	}
	simSkills       = []string{"Python", "SQL", "AWS", "Spark", "Kubernetes", "TensorFlow", "PyTorch", "Airflow"}
	simExperience   = []string{job.ExperienceEntry, job.ExperienceMid, job.ExperienceSenior}
	simRemote       = []string{job.RemoteFully, job.RemoteHybrid, job.RemoteOnSite}
	simCompanyTypes = []string{job.CompanyStartup, job.CompanyScaleUp, job.CompanyEnterprise}
)

const simulatedJobs = 30

// SimulatedSource generates a fixed, realistic batch of listings.
type SimulatedSource struct {
	now func() time.Time
}

func NewSimulatedSource() *SimulatedSource {
	return &SimulatedSource{now: time.Now}
}

func (s *SimulatedSource) Name() string { return SourceSimulated }

func (s *SimulatedSource) Fetch(ctx context.Context) ([]job.RawJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	out := make([]job.RawJob, 0, simulatedJobs)
	for i := 0; i < simulatedJobs; i++ {
		company := simCompanies[i%len(simCompanies)]
		salaryMin := float64(120000 + i*5000)
		salaryMax := float64(180000 + i*5000)
		posted := now.AddDate(0, 0, -(i % 30))

		skills := make([]string, len(simSkills)-i%len(simSkills))
		copy(skills, simSkills[i%len(simSkills):])

		out = append(out, job.RawJob{
			ExternalID:      fmt.Sprintf("%s_%d", SourceSimulated, i),
			Title:           simTitles[i%len(simTitles)],
			Company:         company,
			Location:        simLocations[i%len(simLocations)],
			JobURL:          fmt.Sprintf("https://jobs.example.com/listings/%d", i),
			Description:     fmt.Sprintf("Join %s to build cutting-edge ML solutions. We're looking for experienced professionals.", company),
			SalaryMin:       &salaryMin,
			SalaryMax:       &salaryMax,
			SalaryCurrency:  job.DefaultCurrency,
			JobType:         "full-time",
			ExperienceLevel: simExperience[i%len(simExperience)],
			RemoteType:      simRemote[i%len(simRemote)],
			Skills:          skills,
			CompanyType:     simCompanyTypes[i%len(simCompanyTypes)],
			Source:          SourceSimulated,
			PostedAt:        &posted,
		})
	}
	return out, nil
}
