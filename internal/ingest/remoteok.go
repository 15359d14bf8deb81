package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"jobradar/internal/domain/job"
	"jobradar/internal/logger"

	"github.com/gocolly/colly/v2"
)

const (
	defaultRemoteOKURL  = "https://remoteok.com/api"
	remoteOKMaxItems    = 100
	maxDescriptionRunes = 2000
	userAgent           = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

var salaryAmount = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([kK])?`)

// RemoteOKSource reads the public RemoteOK JSON feed.
type RemoteOKSource struct {
	url     string
	timeout time.Duration
	log     logger.Logger
	now     func() time.Time
}

func NewRemoteOKSource(url string, timeout time.Duration, log logger.Logger) *RemoteOKSource {
	url = strings.TrimSpace(url)
	if url == "" {
		url = defaultRemoteOKURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteOKSource{url: url, timeout: timeout, log: logger.OrNop(log), now: time.Now}
}

func (s *RemoteOKSource) Name() string { return SourceRemoteOK }

type remoteOKItem struct {
	ID             json.RawMessage `json:"id"`
	Position       string          `json:"position"`
	JobTitle       string          `json:"job_title"`
	Company        string          `json:"company"`
	CompanyName    string          `json:"company_name"`
	Description    string          `json:"description"`
	JobDescription string          `json:"job_description"`
	URL            string          `json:"url"`
	Salary         string          `json:"salary"`
	SalaryMin      float64         `json:"salary_min"`
	SalaryMax      float64         `json:"salary_max"`
	Tags           []string        `json:"tags"`
	Date           string          `json:"date"`
}

func (s *RemoteOKSource) Fetch(ctx context.Context) ([]job.RawJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := colly.NewCollector(colly.UserAgent(userAgent))
	c.SetRequestTimeout(s.timeout)

	var body []byte
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		r.Headers.Set("Accept", "application/json")
	})
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		reqErr = fmt.Errorf("remoteok request status=%d: %w", status, err)
	})

	if err := c.Visit(s.url); err != nil {
		return nil, fmt.Errorf("remoteok visit: %w", err)
	}
	c.Wait()

	if reqErr != nil {
		return nil, reqErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, errors.New("remoteok: empty response")
	}

	return s.parse(body)
}

func (s *RemoteOKSource) parse(body []byte) ([]job.RawJob, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("remoteok decode: %w", err)
	}
	if len(items) > remoteOKMaxItems {
		items = items[:remoteOKMaxItems]
	}

	now := s.now().UTC()
	out := make([]job.RawJob, 0, len(items))
	skipped := 0
	for _, raw := range items {
		var it remoteOKItem
		if err := json.Unmarshal(raw, &it); err != nil {
			skipped++
			continue
		}
		title := strings.TrimSpace(pickNonEmpty(it.JobTitle, it.Position))
		if title == "" {
			// legal notice header and malformed entries
			skipped++
			continue
		}
		out = append(out, s.toRawJob(it, title, now))
	}

	if skipped > 0 {
		s.log.Debug("remoteok entries skipped", map[string]interface{}{"skipped": skipped})
	}
	return out, nil
}

func (s *RemoteOKSource) toRawJob(it remoteOKItem, title string, now time.Time) job.RawJob {
	desc := pickNonEmpty(it.JobDescription, it.Description)
	salaryMin, salaryMax := remoteOKSalary(it)

	posted := now
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(it.Date)); err == nil {
		posted = t.UTC()
	}

	id := strings.Trim(strings.TrimSpace(string(it.ID)), `"`)
	externalID := ""
	if id != "" && id != "null" {
		externalID = SourceRemoteOK + "_" + id
	}

	skills := ExtractSkills(desc + " " + strings.Join(it.Tags, " "))

	return job.RawJob{
		ExternalID:      externalID,
		Title:           title,
		Company:         pickNonEmpty(it.CompanyName, it.Company),
		Location:        "Remote",
		JobURL:          strings.TrimSpace(it.URL),
		Description:     truncateRunes(desc, maxDescriptionRunes),
		SalaryMin:       salaryMin,
		SalaryMax:       salaryMax,
		SalaryCurrency:  job.DefaultCurrency,
		JobType:         "full-time",
		ExperienceLevel: job.ExperienceMid,
		RemoteType:      job.RemoteFully,
		Skills:          skills,
		Source:          SourceRemoteOK,
		PostedAt:        &posted,
	}
}

// remoteOKSalary prefers the structured fields and falls back to amounts
// found in the free-text salary.
func remoteOKSalary(it remoteOKItem) (*float64, *float64) {
	if it.SalaryMin > 0 || it.SalaryMax > 0 {
		return positiveOrNil(it.SalaryMin), positiveOrNil(it.SalaryMax)
	}
	return ParseSalaryText(it.Salary)
}

// ParseSalaryText reads amounts such as "$80k - $120k" or "90,000". One amount
// is taken as the maximum.
func ParseSalaryText(text string) (*float64, *float64) {
	text = strings.ReplaceAll(strings.ReplaceAll(text, ",", ""), "$", "")
	matches := salaryAmount.FindAllStringSubmatch(text, -1)

	amounts := make([]float64, 0, 2)
	for _, m := range matches {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || v <= 0 {
			continue
		}
		if m[2] != "" {
			v *= 1000
		}
		amounts = append(amounts, v)
		if len(amounts) == 2 {
			break
		}
	}

	switch len(amounts) {
	case 0:
		return nil, nil
	case 1:
		return nil, &amounts[0]
	}
	lo, hi := amounts[0], amounts[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	return &lo, &hi
}

func positiveOrNil(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return &v
}

func pickNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
