package embed

import (
	"context"
	"errors"
	"math"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// NewOpenAIEmbedder creates an embedder backed by the OpenAI embeddings API.
// The API key is read from the OPENAI_API_KEY environment variable.
// Pass text-embedding-3-small (1536 dimensions) or text-embedding-3-large
// (3072 dimensions) as model.
func NewOpenAIEmbedder(model string) (EmbedFunc, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}

	client := openai.NewClient(key)

	return func(text string) ([]float32, error) {
		if len(text) == 0 {
			return nil, errors.New("cannot embed empty text")
		}

		resp, err := client.CreateEmbeddings(context.Background(), openai.EmbeddingRequest{
			Model: openai.EmbeddingModel(model),
			Input: []string{text},
		})
		if err != nil {
			return nil, err
		}

		if len(resp.Data) == 0 {
			return nil, errors.New("no embedding data returned from API")
		}

		v := resp.Data[0].Embedding

		// L2 normalize (important for cosine similarity)
		l2normalize(v)

		return v, nil
	}, nil
}

// l2normalize normalizes a vector to unit length
func l2normalize(v []float32) {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range v {
		v[i] *= inv
	}
}
