package scoring

import (
	"testing"

	"jobradar/internal/domain/job"

	"github.com/stretchr/testify/assert"
)

func baseJob() job.Record {
	return job.Record{
		Title:           "Data Engineer",
		Company:         "Stripe",
		Location:        "San Francisco, CA",
		ExperienceLevel: job.ExperienceMid,
		RemoteType:      job.RemoteHybrid,
		Skills:          []string{"python", "sql", "aws"},
		SalaryMax:       salaryPtr(150000),
	}
}

func TestMatch_PerfectOverlap(t *testing.T) {
	p := job.UserPreference{
		ExperienceLevel:  job.ExperienceMid,
		Skills:           []string{"Python", "SQL", "AWS"},
		SalaryMin:        100000,
		Location:         "san francisco",
		RemotePreference: job.RemoteAny,
	}
	assert.InDelta(t, 1.0, Match(baseJob(), p), 1e-9)
}

func TestMatch_Components(t *testing.T) {
	tests := []struct {
		name string
		mod  func(r *job.Record, p *job.UserPreference)
		want float64
	}{
		{
			name: "experience mismatch",
			mod:  func(r *job.Record, p *job.UserPreference) { p.ExperienceLevel = job.ExperienceSenior },
			want: 1 - 0.25 + 0.6*0.25,
		},
		{
			name: "half skill overlap",
			mod:  func(r *job.Record, p *job.UserPreference) { p.Skills = []string{"python", "go"} },
			// intersection 1, union 4
			want: 1 - 0.30 + 0.25*0.30,
		},
		{
			name: "user has no skills",
			mod:  func(r *job.Record, p *job.UserPreference) { p.Skills = nil },
			want: 1 - 0.30 + 0.5*0.30,
		},
		{
			name: "job has no skills",
			mod:  func(r *job.Record, p *job.UserPreference) { r.Skills = nil },
			want: 1 - 0.30 + 0.5*0.30,
		},
		{
			name: "salary below expectation",
			mod:  func(r *job.Record, p *job.UserPreference) { p.SalaryMin = 200000 },
			want: 1 - 0.20 + 0.75*0.20,
		},
		{
			name: "unlisted salary scored at 150000",
			mod: func(r *job.Record, p *job.UserPreference) {
				r.SalaryMax = nil
				p.SalaryMin = 300000
			},
			want: 1 - 0.20 + 0.5*0.20,
		},
		{
			name: "location mismatch",
			mod:  func(r *job.Record, p *job.UserPreference) { p.Location = "Berlin" },
			want: 1 - 0.15 + 0.3*0.15,
		},
		{
			name: "empty location matches",
			mod:  func(r *job.Record, p *job.UserPreference) { p.Location = "" },
			want: 1,
		},
		{
			name: "remote preference substring",
			mod:  func(r *job.Record, p *job.UserPreference) { p.RemotePreference = "hybrid" },
			want: 1,
		},
		{
			name: "remote preference mismatch",
			mod:  func(r *job.Record, p *job.UserPreference) { p.RemotePreference = job.RemoteFully },
			want: 1 - 0.10 + 0.3*0.10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := baseJob()
			p := job.UserPreference{
				ExperienceLevel:  job.ExperienceMid,
				Skills:           []string{"python", "sql", "aws"},
				SalaryMin:        100000,
				Location:         "San Francisco",
				RemotePreference: job.RemoteAny,
			}
			tt.mod(&r, &p)
			assert.InDelta(t, tt.want, Match(r, p), 1e-9)
		})
	}
}

func TestMatch_Bounds(t *testing.T) {
	r := baseJob()
	r.SalaryMax = salaryPtr(0)
	p := job.UserPreference{
		ExperienceLevel:  "entry",
		Skills:           []string{"cobol"},
		SalaryMin:        500000,
		Location:         "Tokyo",
		RemotePreference: job.RemoteFully,
	}
	got := Match(r, p)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 1.0)
	assert.InDelta(t, 0.6*0.25+0+0+0.3*0.15+0.3*0.10, got, 1e-9)
}

func TestMatch_ZeroSalaryMinAlwaysSatisfied(t *testing.T) {
	r := baseJob()
	r.SalaryMax = salaryPtr(10)
	p := job.DefaultPreference()
	p.SalaryMin = 0
	assert.InDelta(t, 1.0, salaryComponent(r, p), 1e-9)
}
