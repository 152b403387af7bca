// Package assistant provides the reply generators behind the chat window.
//
// No retrieval or model backend exists. Placeholder returns a fixed answer
// with one fixed reference; Catalog picks references from a known list by
// fuzzy-matching their titles against the question.
package assistant

import (
	"context"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/zhubert/scholar/internal/conversation"
	"github.com/zhubert/scholar/internal/logger"
)

// Default placeholder answer.
const DefaultContent = "Here is a concise answer with references."

// DefaultReference is attached to every placeholder answer.
var DefaultReference = conversation.Reference{
	Title:  "Example Paper on Topic",
	Author: "Doe et al.",
	Year:   2023,
	URL:    "https://example.com",
}

// Placeholder always answers with the same content and reference.
type Placeholder struct {
	Content   string
	Reference conversation.Reference
}

// NewPlaceholder returns a Placeholder using the defaults.
func NewPlaceholder() *Placeholder {
	return &Placeholder{Content: DefaultContent, Reference: DefaultReference}
}

// Submit implements conversation.Responder.
func (p *Placeholder) Submit(ctx context.Context, q conversation.Question) (conversation.Answer, error) {
	if err := ctx.Err(); err != nil {
		return conversation.Answer{}, err
	}
	content := p.Content
	if content == "" {
		content = DefaultContent
	}
	ref := p.Reference
	if ref == (conversation.Reference{}) {
		ref = DefaultReference
	}
	return conversation.Answer{
		Content:    content,
		References: []conversation.Reference{ref},
	}, nil
}

// Catalog answers with the references whose titles best match the question.
// When nothing matches it falls back to its Placeholder, so every answer
// carries at least one reference.
type Catalog struct {
	Fallback *Placeholder
	// Limit caps the number of references per answer.
	Limit int

	refs   []conversation.Reference
	titles []string
}

// NewCatalog builds a catalog from refs, dropping duplicate URLs.
func NewCatalog(refs []conversation.Reference, fallback *Placeholder) *Catalog {
	if fallback == nil {
		fallback = NewPlaceholder()
	}
	c := &Catalog{Fallback: fallback, Limit: 3}
	seen := make(map[string]bool)
	for _, r := range refs {
		key := r.URL
		if key == "" {
			key = r.Title
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		c.refs = append(c.refs, r)
		c.titles = append(c.titles, strings.ToLower(r.Title))
	}
	return c
}

// CatalogFromConversations collects every reference cited in convs.
func CatalogFromConversations(convs []conversation.Conversation, fallback *Placeholder) *Catalog {
	var refs []conversation.Reference
	for _, c := range convs {
		for _, m := range c.Messages {
			refs = append(refs, m.References...)
		}
	}
	return NewCatalog(refs, fallback)
}

// Len returns the number of distinct references in the catalog.
func (c *Catalog) Len() int {
	return len(c.refs)
}

// Submit implements conversation.Responder.
func (c *Catalog) Submit(ctx context.Context, q conversation.Question) (conversation.Answer, error) {
	answer, err := c.Fallback.Submit(ctx, q)
	if err != nil {
		return answer, err
	}

	matched := c.match(q.Text)
	if len(matched) == 0 {
		return answer, nil
	}
	logger.ComponentLogger("assistant").Debug("catalog matched", "question", q.Text, "references", len(matched))
	answer.References = matched
	return answer, nil
}

// match scores every significant word of text against the catalog titles and
// returns the best references, highest combined score first.
func (c *Catalog) match(text string) []conversation.Reference {
	scores := make(map[int]int)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?\"'()[]")
		if len(word) < 4 {
			continue
		}
		for _, m := range fuzzy.Find(word, c.titles) {
			if strings.Contains(m.Str, word) {
				scores[m.Index] += exactBonus + m.Score
				continue
			}
			// Only count near-contiguous matches; fuzzy alone is too permissive
			// for single words against long titles.
			if span(m.MatchedIndexes) > len(word)+2 {
				continue
			}
			scores[m.Index] += m.Score + 1
		}
	}
	if len(scores) == 0 {
		return nil
	}

	idx := make([]int, 0, len(scores))
	for i := range scores {
		idx = append(idx, i)
	}
	slices.SortFunc(idx, func(a, b int) int {
		if scores[a] != scores[b] {
			return scores[b] - scores[a]
		}
		return a - b
	})
	if c.Limit > 0 && len(idx) > c.Limit {
		idx = idx[:c.Limit]
	}

	out := make([]conversation.Reference, len(idx))
	for i, j := range idx {
		out[i] = c.refs[j]
	}
	return out
}

const exactBonus = 100

func span(indexes []int) int {
	if len(indexes) == 0 {
		return 0
	}
	return indexes[len(indexes)-1] - indexes[0] + 1
}
