package service

import (
	"regexp"
	"strings"
	"sync"
)

// techKeywords is the lexicon scanned for the local skill-gap heuristic.
// Ordering matters only for output stability.
var techKeywords = []string{
	"python", "java", "javascript", "typescript", "go", "golang", "c", "c++", "c#", "rust",
	"react", "angular", "vue", "next.js", "node.js", "express", "fastapi", "django", "flask", "spring",
	"html", "css", "tailwind", "bootstrap", "redux",
	"sql", "mysql", "postgresql", "mongodb", "redis", "elasticsearch", "dynamodb", "oracle",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible", "jenkins", "github actions",
	"ci/cd", "git", "linux", "bash", "microservices", "rest", "graphql", "grpc", "websocket",
	"system design", "distributed systems", "scalability", "performance", "caching", "security", "oauth", "jwt",
	"machine learning", "deep learning", "nlp", "data science", "pandas", "numpy", "pytorch", "tensorflow",
	"spark", "hadoop", "airflow", "etl", "tableau", "power bi", "unit testing", "integration testing",
}

var (
	keywordPatterns     map[string]*regexp.Regexp
	keywordPatternsOnce sync.Once
)

func compileKeywordPatterns() {
	keywordPatterns = make(map[string]*regexp.Regexp, len(techKeywords))
	for _, kw := range techKeywords {
		keywordPatterns[kw] = regexp.MustCompile(`(?i)(^|\W)` + regexp.QuoteMeta(kw) + `($|\W)`)
	}
}

// extractTechnicalTerms returns lexicon entries present in the text, matched
// on word boundaries so "java" does not match "javascript".
func extractTechnicalTerms(text string) []string {
	keywordPatternsOnce.Do(compileKeywordPatterns)

	found := []string{}
	seen := map[string]bool{}
	for _, kw := range techKeywords {
		key := normalizeTerm(kw)
		if seen[key] {
			continue
		}
		if keywordPatterns[kw].MatchString(text) {
			seen[key] = true
			found = append(found, kw)
		}
	}
	return found
}

func normalizeTerm(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// mergeUniqueStrings concatenates primary and fallback lists, dropping
// duplicates case-insensitively and capping the result.
func mergeUniqueStrings(primary, fallback []string, limit int) []string {
	merged := []string{}
	seen := map[string]bool{}
	for _, source := range [][]string{primary, fallback} {
		for _, item := range source {
			cleaned := strings.TrimSpace(item)
			if cleaned == "" {
				continue
			}
			key := normalizeTerm(cleaned)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, cleaned)
			if len(merged) >= limit {
				return merged
			}
		}
	}
	return merged
}
