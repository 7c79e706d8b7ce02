package store

import (
	"strconv"
	"strings"
)

// maxCandidateLimit caps limit values on candidate queries regardless of caller input.
const maxCandidateLimit = 1000

// formatEmbedding converts a float32 slice to the pgvector string format "[0.1,0.2,...]".
func formatEmbedding(embedding []float32) string {
	var b strings.Builder
	b.Grow(len(embedding)*8 + 2)
	b.WriteByte('[')

	for i, v := range embedding {
		if i > 0 {
			b.WriteByte(',')
		}

		b.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
	}

	b.WriteByte(']')

	return b.String()
}

// likeEscaper neutralizes LIKE/ILIKE metacharacters in user-supplied query
// text. Patterns are always passed as bind parameters; this only keeps a
// literal "%" or "_" in a query from acting as a wildcard.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps user text in a substring ILIKE pattern.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}

	if limit > maxCandidateLimit {
		return maxCandidateLimit
	}

	return limit
}
