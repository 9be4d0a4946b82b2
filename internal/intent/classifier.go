package intent

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/botforge-ai/response-engine/internal/model"
	"github.com/botforge-ai/response-engine/pkg/logger"
)

// Classifier resolves an utterance to the nearest catalog example.
// It is constructed once at process start with all catalog vectors
// precomputed; classification is then one embedding call plus a scan.
// Classify never returns an error: any internal failure degrades to
// the fallback classification so a turn is never lost to the model.
type Classifier struct {
	embedder Embedder
	labels   []string
	vectors  [][]float32
	logger   *logger.Logger
}

// NewClassifier embeds the catalog once and returns a ready classifier.
func NewClassifier(ctx context.Context, embedder Embedder, catalog []Example, log *logger.Logger) (*Classifier, error) {
	if len(catalog) == 0 {
		return nil, fmt.Errorf("intent catalog is empty")
	}

	texts := make([]string, len(catalog))
	labels := make([]string, len(catalog))
	for i, ex := range catalog {
		texts[i] = ex.Text
		labels[i] = ex.Label
	}

	vectors, err := embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed intent catalog: %w", err)
	}
	if len(vectors) != len(catalog) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d examples", len(vectors), len(catalog))
	}
	for i := range vectors {
		normalize(vectors[i])
	}

	return &Classifier{
		embedder: embedder,
		labels:   labels,
		vectors:  vectors,
		logger:   log,
	}, nil
}

// Classify maps an utterance to an intent label and confidence.
// Empty or whitespace-only input short-circuits without touching the
// embedder. Embedding failures degrade to {fallback, 0}.
func (c *Classifier) Classify(ctx context.Context, utterance string) model.Classification {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return model.FallbackClassification()
	}

	embedded, err := c.embedder.Embed(ctx, []string{utterance})
	if err != nil || len(embedded) == 0 {
		c.logger.Warn("embedding failed, classifying as fallback", zap.Error(err))
		return model.FallbackClassification()
	}
	query := embedded[0]
	normalize(query)

	// First-encountered maximum wins; the catalog order is stable.
	bestIdx := -1
	bestScore := math.Inf(-1)
	for i, vec := range c.vectors {
		if score := dot(query, vec); score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return model.FallbackClassification()
	}

	return model.Classification{
		Intent:     c.labels[bestIdx],
		Confidence: clamp01(bestScore),
		Entities:   []model.Entity{},
	}
}

// dot computes the dot product; with normalized vectors this is the
// cosine similarity. Length mismatches score as unrelated.
func dot(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
