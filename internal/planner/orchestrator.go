package planner

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mealcoach/backend/internal/llm"
)

const (
	maxTokenCeiling     = 4096
	truncationTokenBump = 256
)

// ExhaustionError is returned when every prompt variant and attempt was
// consumed without a structurally valid plan. It is the only generation-path
// error visible outside the pipeline.
type ExhaustionError struct {
	FinishReason string
	RawPath      string
	MaxTokens    int
}

func (e *ExhaustionError) Error() string {
	return fmt.Sprintf("meal plan generation exhausted all attempts (finish_reason=%s)", e.FinishReason)
}

// attemptParams are the sampling parameters for one attempt, computed from
// the attempt index alone. Temperature and both penalties rise slightly per
// retry to push the model away from repeating a failed output.
type attemptParams struct {
	Temperature      float64
	TopP             float64
	PresencePenalty  float64
	FrequencyPenalty float64
}

func paramsForAttempt(i int) attemptParams {
	return attemptParams{
		Temperature:      math.Min(0.7+0.1*float64(i), 1.0),
		TopP:             0.9,
		PresencePenalty:  0.3 + 0.05*float64(i),
		FrequencyPenalty: 0.2 + 0.05*float64(i),
	}
}

// Orchestrator drives prompt variants through the model until one yields a
// plan that passes the hard item-count gate, or the attempt budget runs out.
type Orchestrator struct {
	client   llm.ChatClient
	logger   *zap.Logger
	debugDir string
}

// NewOrchestrator wires the retry driver. debugDir receives the last raw
// model response whenever a request exhausts its budget.
func NewOrchestrator(client llm.ChatClient, logger *zap.Logger, debugDir string) *Orchestrator {
	return &Orchestrator{client: client, logger: logger, debugDir: debugDir}
}

// Generate runs the full attempt loop for one request. Variants are tried in
// order and the first success wins; later variants are never consulted after
// a success. Retries are strictly sequential.
func (o *Orchestrator) Generate(ctx context.Context, req *MealPlanRequest) (*CanonicalMealPlan, error) {
	var (
		lastText   string
		lastFinish string
		lastMax    int
	)

	for vi, variant := range BuildPromptVariants(req) {
		plan, text, finish, effectiveMax := o.runVariant(ctx, vi, variant)
		if text != "" {
			lastText = text
		}
		if finish != "" {
			lastFinish = finish
		}
		if effectiveMax > 0 {
			lastMax = effectiveMax
		}
		if plan != nil {
			return plan, nil
		}
	}

	exhausted := &ExhaustionError{FinishReason: lastFinish, MaxTokens: lastMax}
	if lastText != "" {
		exhausted.RawPath = o.dumpRawResponse(lastText)
	}
	o.logger.Error("meal plan generation exhausted",
		zap.String("finish_reason", lastFinish),
		zap.String("raw_path", exhausted.RawPath))
	return nil, exhausted
}

// runVariant walks the attempt budget of a single prompt variant. The token
// budget escalates in place: a length finish reason grows it by half, a
// truncation-heuristic hit bumps it by a fixed increment, both capped.
func (o *Orchestrator) runVariant(ctx context.Context, index int, variant PromptVariant) (*CanonicalMealPlan, string, string, int) {
	var lastText, lastFinish string
	maxTokens := variant.MaxTokens

	for i := 0; i < variant.Attempts; i++ {
		params := paramsForAttempt(i)
		res, err := o.client.Complete(ctx, llm.ChatRequest{
			Messages:         variant.Messages,
			Temperature:      params.Temperature,
			TopP:             params.TopP,
			PresencePenalty:  params.PresencePenalty,
			FrequencyPenalty: params.FrequencyPenalty,
			MaxTokens:        maxTokens,
			Schema:           variant.Schema,
		})
		if err != nil {
			o.logger.Warn("chat completion failed",
				zap.Int("variant", index), zap.Int("attempt", i), zap.Error(err))
			continue
		}
		if res.Text != "" {
			lastText = res.Text
		}
		if res.FinishReason != "" {
			lastFinish = res.FinishReason
		}

		if res.FinishReason == llm.FinishLength {
			maxTokens = min(maxTokens*3/2, maxTokenCeiling)
			continue
		}
		if res.Text == "" || LikelyTruncated(res.Text) {
			maxTokens = min(maxTokens+truncationTokenBump, maxTokenCeiling)
			continue
		}

		jsonText, ok := ExtractJSON(res.Text)
		if !ok {
			o.logger.Debug("response not repairable to JSON",
				zap.Int("variant", index), zap.Int("attempt", i))
			continue
		}
		plan, err := Normalize(jsonText)
		if err != nil {
			o.logger.Debug("response failed normalization",
				zap.Int("variant", index), zap.Int("attempt", i), zap.Error(err))
			continue
		}
		if !plan.Complete() {
			o.logger.Debug("plan rejected by item-count gate",
				zap.Int("variant", index), zap.Int("attempt", i))
			continue
		}
		// The title heuristic is advisory: on the final attempt a plan with
		// weak titles is accepted rather than discarded.
		if !titlesWellFormed(plan) && i+1 < variant.Attempts {
			continue
		}
		return plan, lastText, lastFinish, maxTokens
	}
	return nil, lastText, lastFinish, maxTokens
}

var mainDishRe = regexp.MustCompile(`덮밥|구이|볶음|전골|찌개|국수|비빔|조림|스튜|샐러드|토스트|죽|주먹밥`)

// TitleHasMainAndSide checks the advisory title format: a main-dish keyword
// plus a delimiter that joins at least one side dish.
func TitleHasMainAndSide(title string) bool {
	if !mainDishRe.MatchString(title) {
		return false
	}
	return strings.Contains(title, "와 ") || strings.Contains(title, ",")
}

func titlesWellFormed(plan *CanonicalMealPlan) bool {
	for _, c := range plan.containers() {
		if !TitleHasMainAndSide(c.Title) {
			return false
		}
	}
	return true
}

// dumpRawResponse writes the last raw model text to a timestamped file for
// postmortem inspection. Failures only cost the artifact, not the request.
func (o *Orchestrator) dumpRawResponse(text string) string {
	dir := o.debugDir
	if dir == "" {
		dir = "out"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		o.logger.Warn("failed to create debug dir", zap.Error(err))
		return ""
	}
	path := filepath.Join(dir, fmt.Sprintf("raw_response_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		o.logger.Warn("failed to write raw response artifact", zap.Error(err))
		return ""
	}
	return path
}
