package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Key(t *testing.T) {
	withID := Record{ExternalID: " remoteok_42 ", Source: "remoteok"}
	assert.Equal(t, "remoteok_42", withID.Key())

	a := Record{Source: "simulated", Title: "Go Dev", Company: "Acme", Location: "Remote"}
	b := Record{Source: "simulated", Title: "GO DEV", Company: "acme", Location: "remote"}
	c := Record{Source: "simulated", Title: "Rust Dev", Company: "Acme", Location: "Remote"}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
	assert.Regexp(t, `^simulated_[0-9a-f]{16}$`, a.Key())
}

func TestRecord_RawCopiesSkills(t *testing.T) {
	r := Record{Title: "x", Skills: []string{"go"}}
	raw := r.Raw()
	raw.Skills[0] = "rust"
	assert.Equal(t, "go", r.Skills[0])
	assert.Equal(t, "x", raw.Title)
}

func TestUserPreference_WithDefaults(t *testing.T) {
	p := UserPreference{SalaryMin: 90000}.WithDefaults()
	assert.Equal(t, ExperienceMid, p.ExperienceLevel)
	assert.Equal(t, RemoteAny, p.RemotePreference)
	assert.NotNil(t, p.Skills)
	assert.Equal(t, 90000.0, p.SalaryMin)

	d := DefaultPreference()
	assert.Equal(t, float64(FallbackSalaryMin), d.SalaryMin)
}
