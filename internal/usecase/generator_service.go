package usecase

import (
	"context"
	"encoding/json"
	"log"

	"github.com/querygen/backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

// refineBucketCap is the hard per-bucket limit enforced on self-check output.
const refineBucketCap = 2

// GeneratorConfig holds the knobs for the generation pipeline.
type GeneratorConfig struct {
	Temperature    float32
	MaxTokens      int
	PerBucketLimit int
	Concurrency    int
	SelfCheck      bool
}

// GeneratorService turns product records into search queries by prompting
// a chat model and interpreting its untrusted output.
type GeneratorService struct {
	chat   domain.ChatClient
	config GeneratorConfig
}

// NewGeneratorService creates a generator service with dependencies
func NewGeneratorService(chat domain.ChatClient, config GeneratorConfig) *GeneratorService {
	if config.PerBucketLimit < 1 {
		config.PerBucketLimit = 2
	}
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	if config.MaxTokens < 1 {
		config.MaxTokens = 400
	}
	return &GeneratorService{
		chat:   chat,
		config: config,
	}
}

// GenerateForProduct runs the prompt/completion/interpretation cycle for
// one product. A failure of the mandatory first model call propagates to
// the caller; the batch layer is responsible for isolating it per product.
// The optional self-check pass never fails: any problem there falls back
// to the first-pass result.
func (s *GeneratorService) GenerateForProduct(ctx context.Context, product *domain.Product) ([]domain.GeneratedQuery, error) {
	system := systemPrompt()
	user := userPrompt(product, s.config.PerBucketLimit)

	completion, err := s.chat.Complete(ctx, system, user, domain.SamplingParams{
		Temperature:      s.config.Temperature,
		MaxTokens:        s.config.MaxTokens,
		TopP:             0.9,
		FrequencyPenalty: 0.3,
		PresencePenalty:  0.2,
	})
	if err != nil {
		log.Printf("[Generator] Chat completion failed for product_id=%s: %v", product.ID, err)
		return nil, err
	}

	content := completion.FirstContent()
	if content == "" {
		log.Printf("[Generator] Empty completion for product_id=%s", product.ID)
		return []domain.GeneratedQuery{}, nil
	}

	firstPass := parseQueries(content)

	if !s.config.SelfCheck {
		return firstPass, nil
	}
	return s.refineQueries(ctx, product, system, firstPass), nil
}

// refineQueries runs the best-effort self-check pass: the first-pass
// queries are serialized back to JSON and the model audits them against
// the checklist. The refined set replaces the first pass only when it
// yields at least one accepted query; any failure along the way falls
// back to the first pass so refinement never reduces availability.
func (s *GeneratorService) refineQueries(ctx context.Context, product *domain.Product, system string, firstPass []domain.GeneratedQuery) []domain.GeneratedQuery {
	payload, err := json.Marshal(struct {
		Queries []domain.GeneratedQuery `json:"queries"`
	}{Queries: firstPass})
	if err != nil {
		log.Printf("[Generator] Self-check serialization failed for product_id=%s: %v", product.ID, err)
		return firstPass
	}

	temperature := s.config.Temperature
	if temperature > 0.7 {
		temperature = 0.7
	}

	completion, err := s.chat.Complete(ctx, system, refinePrompt(product, string(payload)), domain.SamplingParams{
		Temperature:      temperature,
		MaxTokens:        s.config.MaxTokens,
		TopP:             0.9,
		FrequencyPenalty: 0.2,
		PresencePenalty:  0.1,
	})
	if err != nil {
		log.Printf("[Generator] Self-check call failed for product_id=%s, using first-pass output: %v", product.ID, err)
		return firstPass
	}

	content := completion.FirstContent()
	if content == "" {
		log.Printf("[Generator] Empty self-check completion for product_id=%s, using first-pass output", product.ID)
		return firstPass
	}

	refined := capBuckets(parseQueries(content), refineBucketCap)
	if len(refined) == 0 {
		return firstPass
	}
	return refined
}

// GenerateBatch fans GenerateForProduct out across products under the
// configured concurrency bound. The returned slice always has one entry
// per input product, in input order, regardless of completion order or
// per-product failures.
func (s *GeneratorService) GenerateBatch(ctx context.Context, products []domain.Product) []domain.ProductQueries {
	if len(products) == 0 {
		return []domain.ProductQueries{}
	}

	results := make([]domain.ProductQueries, len(products))

	if s.config.Concurrency <= 1 {
		for i := range products {
			results[i] = s.generateOne(ctx, &products[i])
		}
		return results
	}

	g := new(errgroup.Group)
	g.SetLimit(s.config.Concurrency)
	for i := range products {
		i := i
		g.Go(func() error {
			results[i] = s.generateOne(ctx, &products[i])
			return nil
		})
	}
	// Workers never return errors; per-product failures are folded into results.
	_ = g.Wait()

	return results
}

// generateOne is the per-product isolation boundary: a hard failure of
// the mandatory first model call is logged and converted into an empty
// query list so one bad product never aborts its siblings.
func (s *GeneratorService) generateOne(ctx context.Context, product *domain.Product) domain.ProductQueries {
	queries, err := s.GenerateForProduct(ctx, product)
	if err != nil {
		log.Printf("[Generator] Failed to generate queries for product_id=%s: %v", product.ID, err)
		queries = nil
	}
	if queries == nil {
		queries = []domain.GeneratedQuery{}
	}
	return domain.ProductQueries{ProductID: product.ID, Queries: queries}
}
