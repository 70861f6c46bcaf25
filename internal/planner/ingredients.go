package planner

import (
	"context"
	"encoding/json"
	"math/rand"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mealcoach/backend/internal/llm"
)

// IngredientGenerator asks the model for a short ingredient list for one
// dish. One attempt only: the post-processor treats any failure here as
// best-effort and simply omits ingredients for that item.
type IngredientGenerator struct {
	client llm.ChatClient
	logger *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewIngredientGenerator builds a generator. seed fixes the subset shuffle
// for tests; pass a time-based seed in production wiring.
func NewIngredientGenerator(client llm.ChatClient, logger *zap.Logger, seed int64) *IngredientGenerator {
	return &IngredientGenerator{
		client: client,
		logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

type rawIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// GenerateIngredients returns 5 to 8 ingredients for the dish, shuffled and
// subset-selected for variety. Fewer than five usable entries counts as a
// failed generation.
func (g *IngredientGenerator) GenerateIngredients(ctx context.Context, dishName string) ([]Ingredient, error) {
	res, err := g.client.Complete(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{
				Role:    "system",
				Content: "오직 JSON 한 개(한 줄). 코드블록/설명 금지. 배열만 출력.\n각 항목은 {\"name\": string, \"amount\": string} 키만 포함.",
			},
			{
				Role:    "user",
				Content: "요리 이름: " + dishName + "\n이 요리를 만들 때 필요한 핵심 재료 5~8개를 간결하게 제시. 브랜드/광고/링크 금지.",
			},
		},
		Temperature:      0.7,
		TopP:             0.9,
		PresencePenalty:  0.2,
		FrequencyPenalty: 0.2,
		MaxTokens:        256,
		Schema:           ingredientSchema(),
	})
	if err != nil {
		return nil, err
	}

	jsonText, ok := ExtractJSON(res.Text)
	if !ok {
		return nil, &ValidationError{Reason: "ingredient response is not JSON"}
	}
	var raw []rawIngredient
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		return nil, &ValidationError{Reason: "ingredient response is not a JSON array"}
	}

	cleaned := make([]Ingredient, 0, len(raw))
	for _, it := range raw {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			continue
		}
		cleaned = append(cleaned, Ingredient{Name: name, Amount: strings.TrimSpace(it.Amount)})
	}
	if len(cleaned) < 5 {
		return nil, &ValidationError{Reason: "fewer than five usable ingredients"}
	}

	g.mu.Lock()
	g.rng.Shuffle(len(cleaned), func(i, j int) {
		cleaned[i], cleaned[j] = cleaned[j], cleaned[i]
	})
	upper := len(cleaned)
	if upper > 8 {
		upper = 8
	}
	k := 5 + g.rng.Intn(upper-5+1)
	g.mu.Unlock()

	return cleaned[:k], nil
}
