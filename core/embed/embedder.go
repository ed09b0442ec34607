// Package embed provides the query embedding functions used by retrieval.
// The embedder is the only collaborator the workflow needs for turning a
// question into a vector; it is injected, never constructed globally.
package embed

import (
	"errors"
	"fmt"

	"github.com/knights-analytics/hugot"
	"github.com/siherrmann/newsgraph/helper"
)

// EmbedFunc is a function that generates an embedding for a text
type EmbedFunc func(text string) ([]float32, error)

// defaultModelName is the local sentence transformer used when no hosted
// embedder is configured. It produces 384-dimensional embeddings.
const defaultModelName = "sentence-transformers/all-MiniLM-L6-v2"

// DefaultEmbedder returns an embedder running all-MiniLM-L6-v2 locally
// through hugot. The model is downloaded on first use.
func DefaultEmbedder() (EmbedFunc, error) {
	modelPath, err := helper.PrepareModel(defaultModelName)
	if err != nil {
		return nil, helper.NewError("prepare embedding model", err)
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, helper.NewError("create hugot session", err)
	}

	pipeline, err := hugot.NewPipeline(session, hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "question-embedder",
	})
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, helper.NewError("create embedding pipeline", fmt.Errorf("%w (cleanup error: %v)", err, destroyErr))
		}
		return nil, helper.NewError("create embedding pipeline", err)
	}

	return func(text string) ([]float32, error) {
		result, err := pipeline.RunPipeline([]string{text})
		if err != nil {
			return nil, helper.NewError("run embedding pipeline", err)
		}
		if len(result.Embeddings) == 0 {
			return nil, helper.NewError("run embedding pipeline", errors.New("no embedding returned"))
		}
		return result.Embeddings[0], nil
	}, nil
}
