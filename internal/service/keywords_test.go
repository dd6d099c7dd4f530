package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTechnicalTerms(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "word boundaries",
			text: "Strong javascript skills, some react.",
			want: []string{"javascript", "react"},
		},
		{
			name: "java does not match javascript",
			text: "We use javascript exclusively.",
			want: []string{"javascript"},
		},
		{
			name: "case insensitive",
			text: "Experience with PostgreSQL and Docker on AWS.",
			want: []string{"postgresql", "aws", "docker"},
		},
		{
			name: "punctuated terms",
			text: "Maintains the ci/cd pipeline and node.js services.",
			want: []string{"node.js", "ci/cd"},
		},
		{
			name: "no keywords",
			text: "Enthusiastic team player with great attitude.",
			want: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractTechnicalTerms(tc.text))
		})
	}
}

func TestMergeUniqueStrings(t *testing.T) {
	merged := mergeUniqueStrings(
		[]string{"Go", "Docker", " ", "Redis"},
		[]string{"go", "Kubernetes"},
		10,
	)
	assert.Equal(t, []string{"Go", "Docker", "Redis", "Kubernetes"}, merged)
}

func TestMergeUniqueStringsHonorsLimit(t *testing.T) {
	merged := mergeUniqueStrings(
		[]string{"a", "b", "c"},
		[]string{"d", "e"},
		4,
	)
	assert.Equal(t, []string{"a", "b", "c", "d"}, merged)
}
