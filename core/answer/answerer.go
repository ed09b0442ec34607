// Package answer implements answer synthesis: retrieved context bundles
// are stuffed into the model's input context together with the question,
// and the model's completion is returned verbatim.
package answer

import (
	"context"
	"fmt"

	"github.com/siherrmann/newsgraph/helper"
	"github.com/siherrmann/newsgraph/model"
	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// Answerer synthesizes an answer from a question and its context bundles
// using a stuff-documents chain over the injected language model.
type Answerer struct {
	llm llms.Model
}

// NewAnswerer creates an answerer over the given language model
func NewAnswerer(llm llms.Model) *Answerer {
	return &Answerer{llm: llm}
}

// NewOpenAIAnswerer creates an answerer backed by an OpenAI chat model.
// The API key is read from the OPENAI_API_KEY environment variable.
func NewOpenAIAnswerer(modelName string) (*Answerer, error) {
	llm, err := openai.New(openai.WithModel(modelName))
	if err != nil {
		return nil, helper.NewError("create openai llm", err)
	}
	return NewAnswerer(llm), nil
}

// Answer stuffs the bundles and the question into the model's context and
// returns the generated answer verbatim. Zero bundles are not an error;
// the chain is invoked with an empty document list.
func (a *Answerer) Answer(ctx context.Context, question string, bundles []*model.ContextBundle) (string, error) {
	docs := make([]schema.Document, 0, len(bundles))
	for _, bundle := range bundles {
		docs = append(docs, schema.Document{
			PageContent: bundle.Text,
			Metadata: map[string]any{
				"chunk_id":  bundle.Metadata.ChunkID,
				"companies": bundle.Metadata.Companies,
				"urls":      bundle.Metadata.URLs,
				"graph":     bundle.Metadata.Graph,
			},
			Score: float32(bundle.Score),
		})
	}

	qaChain := chains.LoadStuffQA(a.llm)

	result, err := chains.Call(ctx, qaChain, map[string]any{
		"input_documents": docs,
		"question":        question,
	})
	if err != nil {
		return "", helper.NewError("call qa chain", err)
	}

	text, ok := result["text"].(string)
	if !ok {
		return "", helper.NewError("read chain output", fmt.Errorf("chain returned no text output"))
	}

	return text, nil
}
