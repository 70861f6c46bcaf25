package planner

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mealcoach/backend/internal/llm"
)

// PromptVariant is one entry of the ordered prompt list the orchestrator
// walks: a message set, its structured-output schema, and the attempt/token
// budget for that variant.
type PromptVariant struct {
	Messages  []llm.Message
	Schema    *llm.JSONSchema
	Attempts  int
	MaxTokens int
}

const devPrompt = `[출력 스키마]
오직 아래 구조만 출력(최상위 키 3개: breakfast, lunch, dinner):
{
  "breakfast": { "title": string, "subtitle": string, "items": [ { "name": string, "macros": { "protein_g": number, "carb_g": number, "fat_g": number }, "prep_time_min": integer } ] },
  "lunch":     { "title": string, "subtitle": string, "items": [ ... ] },
  "dinner":    { "title": string, "subtitle": string, "items": [ ... ] }
}

[출력 규칙]
- 각 끼니(items) 배열 길이는 정확히 5.
- 조화 규칙: 한 끼니는 한 가지 식문화/메뉴 컨셉으로 통일(예: 한식+한식). 메인 1개(탄수/단백 중심), 보조 반찬 2~3개, 음료/후식 0~1개로 구성. 무관한 조합 금지.
- title은 12자 이내 핵심 문구, subtitle은 30자 이내 한 문장 요약.
- 각 항목 키는 name, macros(protein_g/carb_g/fat_g), prep_time_min만 허용. 모든 수치는 숫자.
- JSON 1개를 한 줄(minified)로만 출력.

[타이틀·서브타이틀 규칙]
- title: '메인(주재료+조리법) + 대표 사이드 1~2개'를 드러내는 자연스러운 한국어. 예) "닭가슴살 구이와 시금치나물, 미소된장국"
- subtitle: 맛·식감·조리 포인트 한 문장(30자 이내)`

func systemPrompt(seed int64) string {
	conceptHint := fmt.Sprintf(`[무작위 테마 시드]: %d
- 아침 콘셉트 후보: 우유+토스트/주먹밥+국/죽+반찬/요거트+과일
- 점심 콘셉트 후보: 덮밥/비빔/국수/찌개 정식
- 저녁 콘셉트 후보: 구이 정식/전골/조림/볶음/비빔
- 세 끼 메인 단백질 로테이션(가금/어류/소/돼지/계란/유제품/콩류 중 중복 최소화)
- 끼니별 칼로리·단백질 목표 ±15%% 허용`, seed)

	return `너는 개인 맞춤형 음식 추천 코치이자 영양사다.
STRICT JSON RESPONSE:
- 오직 JSON 1개(한 줄, minified)만 출력. 코드블록/주석/설명 금지.
- RFC 8259 유효 JSON(모든 키 쌍따옴표, 마지막 쉼표 금지, 타입 정확).
도메인 규칙:
- 한국 사용자 기준. 알레르기/선호/식사 정도/운동 빈도 반영.
- 같은 끼니 내 유사 메뉴 중복 금지. 의학적 진단 금지.
` + conceptHint
}

var mealItemSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"name": map[string]any{"type": "string"},
		"macros": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"protein_g": map[string]any{"type": "number"},
				"carb_g":    map[string]any{"type": "number"},
				"fat_g":     map[string]any{"type": "number"},
			},
			"required": []string{"protein_g", "carb_g", "fat_g"},
		},
		"prep_time_min": map[string]any{"type": "integer"},
	},
	"required": []string{"name", "macros", "prep_time_min"},
}

var mealContainerSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"title":    map[string]any{"type": "string", "maxLength": 24},
		"subtitle": map[string]any{"type": "string", "maxLength": 64},
		"items": map[string]any{
			"type":     "array",
			"minItems": ItemsPerMeal,
			"maxItems": ItemsPerMeal,
			"items":    mealItemSchema,
		},
	},
	"required": []string{"title", "subtitle", "items"},
}

func mealsSchema() *llm.JSONSchema {
	return &llm.JSONSchema{
		Name:   "MealsAll",
		Strict: true,
		Schema: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"breakfast": mealContainerSchema,
				"lunch":     mealContainerSchema,
				"dinner":    mealContainerSchema,
			},
			"required": []string{"breakfast", "lunch", "dinner"},
		},
	}
}

func ingredientSchema() *llm.JSONSchema {
	return &llm.JSONSchema{
		Name:   "IngredientList",
		Strict: true,
		Schema: map[string]any{
			"type":     "array",
			"minItems": 5,
			"maxItems": 8,
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"name":   map[string]any{"type": "string"},
					"amount": map[string]any{"type": "string"},
				},
				"required": []string{"name"},
			},
		},
	}
}

// BuildPromptVariants returns the ordered prompt list for one generation
// request: a verbose primary prompt and a compact fallback. The concept seed
// varies per request so repeated generations don't converge on one theme.
func BuildPromptVariants(req *MealPlanRequest) []PromptVariant {
	payload, err := json.Marshal(req)
	if err != nil {
		payload = []byte("{}")
	}
	seed := time.Now().UnixMilli() % 100000
	system := systemPrompt(seed) + "\n" + devPrompt

	primaryUserMsg := "오직 JSON 한 개(한 줄, minified)만 출력. 코드블록/주석/설명 금지.\n" +
		"최상위 키는 breakfast, lunch, dinner 3개 모두 포함. 각 끼니는 {title, subtitle, items[5]} 구조.\n" +
		"각 끼니의 items는 한 가지 컨셉으로 조화롭게 구성(메인 1, 보조 2~3, 음료/후식 0~1). 무관/중복 메뉴 금지.\n" +
		"각 항목 키는 name, macros, prep_time_min만. macros는 {\"protein_g\":number,\"carb_g\":number,\"fat_g\":number}.\n\n" +
		"[사용자]\n" + string(payload)

	compactUserMsg := "오직 JSON 한 개(한 줄). 최상위 키는 breakfast, lunch, dinner 3개 모두 포함. 각 끼니는 {title, subtitle, items[5]} 구조.\n" +
		"한 끼니 내 조화 규칙 준수(메인/보조/음료·후식). 코드블록/설명 금지.\n" +
		string(payload)

	return []PromptVariant{
		{
			Messages: []llm.Message{
				{Role: "system", Content: system},
				{Role: "user", Content: primaryUserMsg},
			},
			Schema:    mealsSchema(),
			Attempts:  3,
			MaxTokens: 3072,
		},
		{
			Messages: []llm.Message{
				{Role: "system", Content: system},
				{Role: "user", Content: compactUserMsg},
			},
			Schema:    mealsSchema(),
			Attempts:  3,
			MaxTokens: 2560,
		},
	}
}
