package pipeline

import (
	"sort"
	"strings"
)

// Title-similarity threshold for merging two candidates that share a club.
const jaccardThreshold = 0.5

// stopWords are dropped from titles before similarity comparison.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"has": true, "have": true, "his": true, "her": true, "in": true,
	"is": true, "it": true, "its": true, "of": true, "on": true,
	"over": true, "the": true, "their": true, "to": true, "was": true,
	"were": true, "with": true,
}

// Deduplicate merges candidates that refer to the same real-world topic.
// Two candidates match when their normalized title token sets overlap with
// Jaccard similarity >= 0.5 and they share at least one club, or when their
// normalized titles are identical. Matching is applied transitively via
// union-find, so the resulting grouping does not depend on input order;
// display order follows the first-seen order of each group's earliest member.
func Deduplicate(candidates []Candidate) []Candidate {
	n := len(candidates)
	if n < 2 {
		return candidates
	}

	tokens := make([]map[string]bool, n)
	normTitles := make([]string, n)
	for i := range candidates {
		tokens[i], normTitles[i] = normalizeTitle(candidates[i].Title)
	}

	uf := newUnionFind(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if normTitles[i] != "" && normTitles[i] == normTitles[j] {
				uf.union(i, j)
				continue
			}
			if sharesClub(&candidates[i], &candidates[j]) &&
				jaccard(tokens[i], tokens[j]) >= jaccardThreshold {
				uf.union(i, j)
			}
		}
	}

	// Collect group members in first-seen order. Candidates arrive in seq
	// order, so index order is seq order.
	groups := make(map[int][]int)
	var roots []int
	for i := 0; i < n; i++ {
		root := uf.find(i)
		if _, seen := groups[root]; !seen {
			roots = append(roots, root)
		}
		groups[root] = append(groups[root], i)
	}

	merged := make([]Candidate, 0, len(roots))
	for _, root := range roots {
		members := groups[root]
		out := candidates[members[0]]
		for _, idx := range members[1:] {
			out = merge(out, candidates[idx])
		}
		merged = append(merged, out)
	}

	// Roots were collected in order of their earliest member, but a later
	// union can re-root a group; sort by surviving seq to be safe.
	sort.Slice(merged, func(i, j int) bool { return merged[i].seq < merged[j].seq })
	return merged
}

// merge absorbs b into a. a is always the earlier-seen candidate.
func merge(a, b Candidate) Candidate {
	if len(b.Title) > len(a.Title) {
		a.Title = b.Title
	}
	if b.Mentions > a.Mentions {
		a.Mentions = b.Mentions
	}
	if b.Rank != 0 && (a.Rank == 0 || b.Rank < a.Rank) {
		a.Rank = b.Rank
	}
	a.NewsCount += b.NewsCount
	if b.FirstSeenAt.Before(a.FirstSeenAt) {
		a.FirstSeenAt = b.FirstSeenAt
	}
	a.Clubs = mergeClubs(a.Clubs, b.Clubs)
	// Strictly-greater keeps the first-encountered kind on equal specificity.
	if b.Controversy > a.Controversy {
		a.Controversy = b.Controversy
	}
	if b.Origin != a.Origin {
		a.Origin = OriginMerged
	}
	if b.seq < a.seq {
		a.seq = b.seq
	}
	return a
}

// normalizeTitle lower-cases, strips punctuation, and drops stop-words.
// It returns the token set and the canonical joined form.
func normalizeTitle(title string) (map[string]bool, string) {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	set := make(map[string]bool)
	var kept []string
	for _, tok := range strings.Fields(b.String()) {
		if stopWords[tok] {
			continue
		}
		if !set[tok] {
			set[tok] = true
			kept = append(kept, tok)
		}
	}
	sort.Strings(kept)
	return set, strings.Join(kept, " ")
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	var inter int
	for tok := range a {
		if b[tok] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// unionFind is a plain disjoint-set with path compression and union by size.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), size: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

func (uf *unionFind) find(i int) int {
	for uf.parent[i] != i {
		uf.parent[i] = uf.parent[uf.parent[i]]
		i = uf.parent[i]
	}
	return i
}

func (uf *unionFind) union(i, j int) {
	ri, rj := uf.find(i), uf.find(j)
	if ri == rj {
		return
	}
	if uf.size[ri] < uf.size[rj] {
		ri, rj = rj, ri
	}
	uf.parent[rj] = ri
	uf.size[ri] += uf.size[rj]
}
