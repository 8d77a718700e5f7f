package ingredient

import (
	"regexp"
	"strings"

	"recipe-slot/internal/pkg/common"
)

// categoryPatterns 分類關鍵字編譯後的整詞比對正則，依 categoryRules 順序建立
var categoryPatterns = buildCategoryPatterns()

func buildCategoryPatterns() []struct {
	name    string
	pattern *regexp.Regexp
} {
	patterns := make([]struct {
		name    string
		pattern *regexp.Regexp
	}, 0, len(categoryRules))
	for _, rule := range categoryRules {
		quoted := make([]string, len(rule.keywords))
		for i, kw := range rule.keywords {
			quoted[i] = regexp.QuoteMeta(kw)
		}
		patterns = append(patterns, struct {
			name    string
			pattern *regexp.Regexp
		}{rule.name, regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)})
	}
	return patterns
}

// Categorize 將食材歸入購物清單分區。整詞比對，依序檢查，
// 避免 "grapeseed oil" 因含 "grape" 被誤判為生鮮區。無命中時歸入 pantry。
func Categorize(name string) string {
	lower := strings.ToLower(name)
	for _, cp := range categoryPatterns {
		if cp.pattern.MatchString(lower) {
			return cp.name
		}
	}
	return "pantry"
}

// DetectAllergens 檢測食材文字中出現的過敏原。
// 過敏原名稱本身一律是關鍵字，標準名稱再經同義詞表展開。
// 回傳順序依 allergens 輸入順序，去重。
func DetectAllergens(text string, allergens []string) []string {
	lower := strings.ToLower(text)
	var found []string
	seen := make(map[string]bool)
	for _, allergen := range allergens {
		key := strings.ToLower(strings.TrimSpace(allergen))
		if key == "" || seen[key] {
			continue
		}
		keywords := append([]string{key}, allergenSynonyms[key]...)
		if containsAny(lower, keywords) {
			found = append(found, key)
			seen[key] = true
		}
	}
	return found
}

// ContainsAllergen 檢查單一食材是否含指定過敏原
func ContainsAllergen(text string, allergen string) bool {
	return len(DetectAllergens(text, []string{allergen})) > 0
}

// CheckDietaryCompliance 檢查食材清單是否符合指定飲食法，
// 回傳不符合的飲食法清單。未知飲食法視為符合。
func CheckDietaryCompliance(ingredients []common.Ingredient, diets []string) []string {
	var mismatches []string
	for _, diet := range diets {
		key := strings.ToLower(strings.TrimSpace(diet))
		disqualifiers, ok := dietDisqualifiers[key]
		if !ok {
			continue
		}
		for _, ing := range ingredients {
			if containsAny(ing.Name+" "+ing.OriginalString, disqualifiers) {
				mismatches = append(mismatches, key)
				break
			}
		}
	}
	return mismatches
}

// RecipeAllergens 檢測整份食譜食材中出現的標準過敏原
func RecipeAllergens(ingredients []common.Ingredient) []string {
	var found []string
	seen := make(map[string]bool)
	for _, allergen := range StandardAllergens {
		if seen[allergen] {
			continue
		}
		for _, ing := range ingredients {
			if ContainsAllergen(ing.Name+" "+ing.OriginalString, allergen) {
				found = append(found, allergen)
				seen[allergen] = true
				break
			}
		}
	}
	return found
}
