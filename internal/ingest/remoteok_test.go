package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobradar/internal/domain/job"
	"jobradar/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const remoteOKFixture = `[
	{"legal": "API terms of service"},
	{
		"id": "1001",
		"position": "Senior Go Engineer",
		"company": "Acme",
		"description": "We use Go, Docker and Kubernetes on AWS.",
		"url": "https://remoteok.com/remote-jobs/1001",
		"salary_min": 120000,
		"salary_max": 160000,
		"tags": ["golang", "postgresql"],
		"date": "2026-05-01T10:00:00+00:00"
	},
	{
		"id": 1002,
		"job_title": "Python Developer",
		"company_name": "Beta",
		"job_description": "Python and SQL",
		"url": "https://remoteok.com/remote-jobs/1002",
		"salary": "$90,000 - $70,000"
	},
	{"id": "1003", "position": ""}
]`

func TestRemoteOKSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(remoteOKFixture))
	}))
	defer srv.Close()

	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	s := NewRemoteOKSource(srv.URL+"/api", time.Second, logger.NewTestLogger(t))
	s.now = func() time.Time { return now }

	jobs, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	a := jobs[0]
	assert.Equal(t, "remoteok_1001", a.ExternalID)
	assert.Equal(t, "Senior Go Engineer", a.Title)
	assert.Equal(t, "Acme", a.Company)
	assert.Equal(t, "Remote", a.Location)
	assert.Equal(t, job.RemoteFully, a.RemoteType)
	assert.Equal(t, job.ExperienceMid, a.ExperienceLevel)
	assert.Equal(t, 120000.0, *a.SalaryMin)
	assert.Equal(t, 160000.0, *a.SalaryMax)
	assert.Equal(t, []string{"aws", "docker", "go", "kubernetes", "postgresql"}, a.Skills)
	assert.Equal(t, time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC), *a.PostedAt)

	b := jobs[1]
	assert.Equal(t, "remoteok_1002", b.ExternalID)
	assert.Equal(t, "Beta", b.Company)
	assert.Equal(t, 70000.0, *b.SalaryMin)
	assert.Equal(t, 90000.0, *b.SalaryMax)
	assert.Equal(t, []string{"python", "sql"}, b.Skills)
	assert.Equal(t, now, *b.PostedAt)
}

func TestRemoteOKSource_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewRemoteOKSource(srv.URL, time.Second, nil).Fetch(context.Background())
	assert.Error(t, err)
}

func TestRemoteOKSource_CapsItems(t *testing.T) {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < 150; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"id": "x", "position": "Engineer"}`)
	}
	b.WriteString("]")

	jobs, err := NewRemoteOKSource("", 0, nil).parse([]byte(b.String()))
	require.NoError(t, err)
	assert.Len(t, jobs, 100)
}

func TestParseSalaryText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantMin *float64
		wantMax *float64
	}{
		{name: "empty", text: ""},
		{name: "single amount is max", text: "$95,000", wantMax: ptr(95000)},
		{name: "range", text: "$80,000 - $120,000", wantMin: ptr(80000), wantMax: ptr(120000)},
		{name: "reversed range", text: "150000 to 110000", wantMin: ptr(110000), wantMax: ptr(150000)},
		{name: "thousands suffix", text: "$80k-$120K", wantMin: ptr(80000), wantMax: ptr(120000)},
		{name: "no digits", text: "competitive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := ParseSalaryText(tt.text)
			assert.Equal(t, tt.wantMin, lo)
			assert.Equal(t, tt.wantMax, hi)
		})
	}
}

func ptr(v float64) *float64 { return &v }
