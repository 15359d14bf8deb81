package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkills(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: []string{}},
		{
			name: "symbols and punctuation",
			text: "Go, Python and Node.js. Experience with CI/CD and C++.",
			want: []string{"c++", "ci/cd", "go", "node.js", "python"},
		},
		{
			name: "no substring hits",
			text: "Google is going to use JavaScript on GitHub with PostgreSQL, reactive streams",
			want: []string{"github", "javascript", "postgresql"},
		},
		{
			name: "case insensitive and deduplicated",
			text: "AWS aws Aws / Kubernetes",
			want: []string{"aws", "kubernetes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSkills(tt.text))
		})
	}
}
