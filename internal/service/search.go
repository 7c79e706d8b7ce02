package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/matjarly/matjar/internal/arabic"
	"github.com/matjarly/matjar/internal/models"
)

// candidatePoolSize caps each candidate branch before fusion. On a very
// large catalog the top fused result could in principle sit outside both
// pools; that is an accepted approximation bounding query cost, not a bug.
const candidatePoolSize = 100

const defaultSearchLimit = 50

// Rank fusion weights.
const (
	weightSemantic   = 0.4
	weightKeyword    = 0.3
	weightPopularity = 0.3

	// Renormalized weights for keyword-only fallback mode.
	fallbackWeightKeyword    = 0.5
	fallbackWeightPopularity = 0.5
)

// Keyword scoring weights: whole-query match per field, then partial credit
// per matching token so multi-word queries do not require a full-phrase hit.
const (
	nameMatchWeight = 1.0
	descMatchWeight = 0.5
	metaMatchWeight = 0.8

	nameTokenWeight = 0.5
	descTokenWeight = 0.2
	metaTokenWeight = 0.3
)

// minTokenRunes excludes short function words from per-token scoring.
// Tokens of 2 runes or fewer are noise in both Arabic and English.
const minTokenRunes = 3

// SearchCandidateStore defines the candidate queries SearchService depends on.
type SearchCandidateStore interface {
	SemanticCandidates(ctx context.Context, embedding []float32, maxPrice *float64, limit int) ([]models.ScoredProduct, error)
	KeywordCandidates(ctx context.Context, rawQuery, normalizedQuery string, maxPrice *float64, limit int) ([]models.Product, error)
}

// SearchService plans a hybrid query: a semantic branch over the query
// embedding and a lexical branch over raw plus dialect-normalized text,
// fused with behavioral popularity into one ranked list.
type SearchService struct {
	store           SearchCandidateStore
	embedder        Embedder
	keywordFallback bool
	log             *logrus.Logger
}

// NewSearchService creates a SearchService. When keywordFallback is true, an
// embedding outage degrades search to keyword-only ranking with renormalized
// weights instead of failing the call.
func NewSearchService(store SearchCandidateStore, embedder Embedder, keywordFallback bool, log *logrus.Logger) *SearchService {
	return &SearchService{store: store, embedder: embedder, keywordFallback: keywordFallback, log: log}
}

// Search answers one search request with a ranked, paginated result list.
// Embedding failure returns models.ErrSearchUnavailable (wrapped) unless
// fallback mode is on.
func (s *SearchService) Search(ctx context.Context, req models.SearchRequest) ([]models.RankedProduct, error) {
	rawQuery := strings.TrimSpace(req.Query)
	if rawQuery == "" {
		return nil, models.ErrEmptyQuery
	}

	normalizedQuery := arabic.Normalize(rawQuery)

	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	var (
		semantic    []models.ScoredProduct
		keyword     []models.Product
		embedFailed bool
	)

	// The keyword branch has no dependency on the query vector, so it runs
	// while the embedding call is in flight.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		keyword, err = s.store.KeywordCandidates(gctx, rawQuery, normalizedQuery, req.MaxPrice, candidatePoolSize)
		if err != nil {
			return fmt.Errorf("keyword candidates: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		// The raw query is embedded; normalization only serves lexical matching.
		vector, err := s.embedder.Generate(gctx, rawQuery)
		if err != nil {
			if s.keywordFallback {
				s.log.WithError(err).Warn("query embedding failed, falling back to keyword-only ranking")
				embedFailed = true

				return nil
			}

			return fmt.Errorf("%w: %v", models.ErrSearchUnavailable, err)
		}

		semantic, err = s.store.SemanticCandidates(gctx, vector, req.MaxPrice, candidatePoolSize)
		if err != nil {
			return fmt.Errorf("semantic candidates: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := s.fuse(semantic, keyword, rawQuery, normalizedQuery, embedFailed)

	return paginate(ranked, offset, limit), nil
}

// fuse unions the two candidate sets and computes the final rank for each
// product. A product missing from one branch contributes 0 for that term
// rather than being excluded.
func (s *SearchService) fuse(
	semantic []models.ScoredProduct,
	keyword []models.Product,
	rawQuery, normalizedQuery string,
	keywordOnly bool,
) []models.RankedProduct {
	union := make(map[int64]*models.RankedProduct, len(semantic)+len(keyword))

	for _, sc := range semantic {
		union[sc.ID] = &models.RankedProduct{Product: sc.Product, SemanticScore: sc.Score}
	}

	tokens := queryTokens(rawQuery)

	for i := range keyword {
		p := &keyword[i]
		score := keywordScore(p, rawQuery, normalizedQuery, tokens)

		if entry, ok := union[p.ID]; ok {
			entry.KeywordScore = score
		} else {
			union[p.ID] = &models.RankedProduct{Product: *p, KeywordScore: score}
		}
	}

	wSemantic, wKeyword, wPopularity := weightSemantic, weightKeyword, weightPopularity
	if keywordOnly {
		wSemantic, wKeyword, wPopularity = 0, fallbackWeightKeyword, fallbackWeightPopularity
	}

	ranked := make([]models.RankedProduct, 0, len(union))

	for _, entry := range union {
		entry.PopularityScore = popularityScore(entry.ClickCount, entry.ConversionRate)
		entry.FinalRank = wSemantic*entry.SemanticScore +
			wKeyword*entry.KeywordScore +
			wPopularity*entry.PopularityScore

		ranked = append(ranked, *entry)
	}

	// Ties break on product id so pagination over a fixed snapshot is stable.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].FinalRank != ranked[j].FinalRank {
			return ranked[i].FinalRank > ranked[j].FinalRank
		}

		return ranked[i].ID < ranked[j].ID
	})

	return ranked
}

// keywordScore computes the lexical score for one candidate. Both sides of
// every comparison pass through the same normalization (lowercase, then the
// dialect table), so literal and dialect-normalized matches score alike.
func keywordScore(p *models.Product, rawQuery, normalizedQuery string, tokens []string) float64 {
	name := normalizeCorpus(p.Name)
	description := normalizeCorpus(p.Description)
	metadata := normalizeCorpus(p.Metadata.Text())

	raw := strings.ToLower(rawQuery)
	norm := strings.ToLower(normalizedQuery)

	var score float64

	if containsEither(name, raw, norm) {
		score += nameMatchWeight
	}

	if containsEither(description, raw, norm) {
		score += descMatchWeight
	}

	if containsEither(metadata, raw, norm) {
		score += metaMatchWeight
	}

	for _, token := range tokens {
		if strings.Contains(name, token) {
			score += nameTokenWeight
		}

		if strings.Contains(description, token) {
			score += descTokenWeight
		}

		if strings.Contains(metadata, token) {
			score += metaTokenWeight
		}
	}

	return score
}

// popularityScore saturates in (0,1): a few clicks move it quickly, but it
// approaches 1 asymptotically instead of growing without bound.
func popularityScore(clickCount int64, conversionRate float64) float64 {
	return 1 - 1/(1+0.1*float64(clickCount)+0.9*conversionRate)
}

// queryTokens splits the raw query into normalized per-word tokens, dropping
// tokens shorter than minTokenRunes.
func queryTokens(rawQuery string) []string {
	fields := strings.Fields(rawQuery)
	tokens := make([]string, 0, len(fields))

	for _, f := range fields {
		if utf8.RuneCountInString(f) < minTokenRunes {
			continue
		}

		tokens = append(tokens, normalizeCorpus(f))
	}

	return tokens
}

// normalizeCorpus applies the shared lexical canonicalization to corpus text.
func normalizeCorpus(s string) string {
	return arabic.Normalize(strings.ToLower(s))
}

func containsEither(haystack, a, b string) bool {
	return strings.Contains(haystack, a) || strings.Contains(haystack, b)
}

func paginate(ranked []models.RankedProduct, offset, limit int) []models.RankedProduct {
	if offset >= len(ranked) {
		return []models.RankedProduct{}
	}

	end := offset + limit
	if end > len(ranked) {
		end = len(ranked)
	}

	return ranked[offset:end]
}
