package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pulse-cx/insight/internal/domain/reviews"
	"github.com/pulse-cx/insight/internal/domain/topics"
)

const (
	topKeywords = 5
	kmeansIters = 25
	kmeansSeed  = 42
)

// ErrNoDocuments means no review produced usable tokens after preprocessing.
var ErrNoDocuments = errors.New("no valid documents after preprocessing")

// Assigner implements topics.Assigner: tokenize, embed, k-means cluster, and
// extract per-topic keywords by token frequency.
type Assigner struct {
	Embedder Embedder
}

func NewAssigner(e Embedder) *Assigner { return &Assigner{Embedder: e} }

func (a *Assigner) Assign(ctx context.Context, revs []reviews.Review) (*topics.Result, error) {
	out := make([]reviews.Review, len(revs))
	copy(out, revs)

	// preprocess; reviews with no tokens stay unclustered
	var (
		docs      []string
		docTokens [][]string
		docIdx    []int // index into out
	)
	for i := range out {
		out[i].Topic = reviews.TopicUnclustered
		toks := Tokenize(out[i].Text)
		if len(toks) == 0 {
			continue
		}
		docs = append(docs, strings.Join(toks, " "))
		docTokens = append(docTokens, toks)
		docIdx = append(docIdx, i)
	}
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	vectors, err := a.Embedder.Embed(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("embed documents: %w", err)
	}
	for _, v := range vectors {
		Normalize(v)
	}

	k := clusterCount(len(docs))
	labels := KMeans(vectors, k, kmeansIters, kmeansSeed)

	// assign topic ids and tally tokens per topic
	counts := map[int]int{}
	tokenFreq := map[int]map[string]int{}
	for d, label := range labels {
		out[docIdx[d]].Topic = label
		counts[label]++
		if tokenFreq[label] == nil {
			tokenFreq[label] = map[string]int{}
		}
		for _, tok := range docTokens[d] {
			tokenFreq[label][tok]++
		}
	}

	result := &topics.Result{Reviews: out, DocCount: len(docs)}
	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		result.Topics = append(result.Topics, topics.Topic{
			ID:          id,
			Keywords:    topTokens(tokenFreq[id], topKeywords),
			MemberCount: counts[id],
		})
	}
	return result, nil
}

// clusterCount mirrors the heuristic used when the cluster count is not
// fixed up front: one topic per ~10 documents, between 3 and 10.
func clusterCount(docs int) int {
	k := docs / 10
	if k < 3 {
		k = 3
	}
	if k > 10 {
		k = 10
	}
	if k > docs {
		k = docs
	}
	return k
}

// topTokens returns the k most frequent tokens, ties broken alphabetically
// so keyword lists are stable across runs.
func topTokens(freq map[string]int, k int) []string {
	type tf struct {
		tok string
		n   int
	}
	all := make([]tf, 0, len(freq))
	for tok, n := range freq {
		all = append(all, tf{tok, n})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].n != all[j].n {
			return all[i].n > all[j].n
		}
		return all[i].tok < all[j].tok
	})
	if len(all) > k {
		all = all[:k]
	}
	out := make([]string, len(all))
	for i, t := range all {
		out[i] = t.tok
	}
	return out
}
