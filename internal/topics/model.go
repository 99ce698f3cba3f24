// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package topics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/james-bowman/nlp"
	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/cinelex/internal/logging"
	"github.com/tomtom215/cinelex/internal/metrics"
)

var (
	// ErrNoDocuments is returned by Fit for an empty corpus.
	ErrNoDocuments = errors.New("no documents")
	// ErrEmptyVocabulary is returned when every document is empty after
	// stop-word removal.
	ErrEmptyVocabulary = errors.New("empty vocabulary")
	// ErrTopicRange is returned for a topic index outside the model.
	ErrTopicRange = errors.New("topic out of range")
)

// Config controls the LDA fit.
type Config struct {
	Topics               int      `koanf:"topics" validate:"gt=0"`
	Iterations           int      `koanf:"iterations" validate:"gt=0"`
	TransformationPasses int      `koanf:"transformation_passes" validate:"gt=0"`
	Workers              int      `koanf:"workers" validate:"gte=0"`
	StopWords            []string `koanf:"stop_words"`
}

// DefaultConfig returns ten topics with short fits.
func DefaultConfig() Config {
	return Config{
		Topics:               10,
		Iterations:           50,
		TransformationPasses: 25,
	}
}

// WordWeight is a vocabulary word with its topic weight.
type WordWeight struct {
	Word   string  `json:"word"`
	Weight float64 `json:"weight"`
}

// DocWeight is a document index with its topic weight.
type DocWeight struct {
	Doc    int     `json:"doc"`
	Weight float64 `json:"weight"`
}

// WordCount is a word with the number of topics ranking it.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Model is a fitted topic model.
type Model struct {
	// topics x documents
	docsOverTopics mat.Matrix
	// topics x vocabulary
	topicsOverWords mat.Matrix
	vocab           []string
}

// Fit vectorises docs and fits an LDA model with cfg.Topics topics.
func Fit(ctx context.Context, docs []string, cfg Config) (*Model, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	if cfg.Topics <= 0 {
		return nil, fmt.Errorf("topics must be positive, got %d", cfg.Topics)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer metrics.RecordStage("topics_fit", start)

	vectoriser := nlp.NewCountVectoriser(cfg.StopWords...)
	vectoriser.Fit(docs...)
	if len(vectoriser.Vocabulary) == 0 {
		return nil, ErrEmptyVocabulary
	}

	lda := nlp.NewLatentDirichletAllocation(cfg.Topics)
	if cfg.Iterations > 0 {
		lda.Iterations = cfg.Iterations
	}
	if cfg.TransformationPasses > 0 {
		lda.TransformationPasses = cfg.TransformationPasses
	}
	if cfg.Workers > 0 {
		lda.Processes = cfg.Workers
	}

	pipeline := nlp.NewPipeline(vectoriser, lda)
	docsOverTopics, err := pipeline.FitTransform(docs...)
	if err != nil {
		return nil, fmt.Errorf("fit lda: %w", err)
	}

	vocab := make([]string, len(vectoriser.Vocabulary))
	for word, i := range vectoriser.Vocabulary {
		vocab[i] = word
	}

	logging.Ctx(ctx).Debug().
		Int("documents", len(docs)).
		Int("vocabulary", len(vocab)).
		Int("topics", cfg.Topics).
		Dur("elapsed", time.Since(start)).
		Msg("fitted topic model")

	return &Model{
		docsOverTopics:  docsOverTopics,
		topicsOverWords: lda.Components(),
		vocab:           vocab,
	}, nil
}

// Topics returns the number of topics.
func (m *Model) Topics() int {
	r, _ := m.topicsOverWords.Dims()
	return r
}

// Documents returns the number of fitted documents.
func (m *Model) Documents() int {
	_, c := m.docsOverTopics.Dims()
	return c
}

// Vocabulary returns the fitted vocabulary in column order.
func (m *Model) Vocabulary() []string { return m.vocab }

// TopWords returns the n heaviest words of topic, heaviest first.
func (m *Model) TopWords(topic, n int) ([]WordWeight, error) {
	if err := m.checkTopic(topic); err != nil {
		return nil, err
	}
	words := make([]WordWeight, len(m.vocab))
	for w := range m.vocab {
		words[w] = WordWeight{Word: m.vocab[w], Weight: m.topicsOverWords.At(topic, w)}
	}
	sort.SliceStable(words, func(i, j int) bool { return words[i].Weight > words[j].Weight })
	return words[:clamp(n, len(words))], nil
}

// TopDocuments returns the n documents with the largest weight on topic.
func (m *Model) TopDocuments(topic, n int) ([]DocWeight, error) {
	if err := m.checkTopic(topic); err != nil {
		return nil, err
	}
	docs := make([]DocWeight, m.Documents())
	for d := range docs {
		docs[d] = DocWeight{Doc: d, Weight: m.docsOverTopics.At(topic, d)}
	}
	sort.SliceStable(docs, func(i, j int) bool { return docs[i].Weight > docs[j].Weight })
	return docs[:clamp(n, len(docs))], nil
}

// DominantTopic returns the topic with the largest weight for doc.
func (m *Model) DominantTopic(doc int) (int, error) {
	if doc < 0 || doc >= m.Documents() {
		return 0, fmt.Errorf("document %d out of range [0, %d)", doc, m.Documents())
	}
	best := 0
	for t := 1; t < m.Topics(); t++ {
		if m.docsOverTopics.At(t, doc) > m.docsOverTopics.At(best, doc) {
			best = t
		}
	}
	return best, nil
}

// TopWordsAcrossTopics counts, for every word, how many topics rank it among
// their n heaviest words, and returns the n words with the highest counts.
// Equal counts are ordered alphabetically.
func (m *Model) TopWordsAcrossTopics(n int) ([]WordCount, error) {
	counts := make(map[string]int)
	for t := 0; t < m.Topics(); t++ {
		top, err := m.TopWords(t, n)
		if err != nil {
			return nil, err
		}
		for _, w := range top {
			counts[w.Word]++
		}
	}

	out := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		out = append(out, WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	return out[:clamp(n, len(out))], nil
}

// Describe renders one line per topic with its n top words.
func (m *Model) Describe(n int) []string {
	lines := make([]string, m.Topics())
	for t := range lines {
		top, _ := m.TopWords(t, n)
		words := make([]string, len(top))
		for i, w := range top {
			words[i] = w.Word
		}
		lines[t] = fmt.Sprintf("topic %d: %s", t, strings.Join(words, " "))
	}
	return lines
}

func (m *Model) checkTopic(topic int) error {
	if topic < 0 || topic >= m.Topics() {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrTopicRange, topic, m.Topics())
	}
	return nil
}

func clamp(n, limit int) int {
	return max(0, min(n, limit))
}
