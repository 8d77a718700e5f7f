package recipe

import (
	"sort"
	"strings"

	"recipe-slot/internal/core/ingredient"
	"recipe-slot/internal/pkg/common"
)

// RankedRecipe 附上安全標註的食譜
type RankedRecipe struct {
	common.Recipe
	MatchCount       int              `json:"matchCount,omitempty"` // 以食材搜尋時命中的食材數
	MatchedAllergens []string         `json:"matchedAllergens,omitempty"`
	DietMismatches   []string         `json:"dietMismatches,omitempty"`
	PriorityScore    int              `json:"priorityScore"`
	Warnings         []common.Warning `json:"warnings,omitempty"`
}

// MatchGroup 以食材搜尋的結果分組，命中多的在前
type MatchGroup struct {
	MatchCount int            `json:"matchCount"`
	IsFallback bool           `json:"isFallback"` // true 表示無食譜命中全部食材時的退而求其次組
	Recipes    []RankedRecipe `json:"recipes"`
}

// fallbackGroupSize 退而求其次組的食譜上限
const fallbackGroupSize = 5

// Annotate 依使用者偏好標註食譜：比對過敏原、檢查飲食法、
// 計算優先分數並產生警告。無過敏原 +1000、符合飲食法 +100，
// 確保安全食譜永遠排在含過敏原者之前。
func Annotate(r *common.Recipe, prefs common.Preferences) RankedRecipe {
	ranked := RankedRecipe{Recipe: *r}

	concerns := append(append([]string{}, prefs.Allergies...), prefs.Intolerances...)
	ranked.MatchedAllergens = matchAllergens(r.Ingredients, concerns)
	ranked.DietMismatches = ingredient.CheckDietaryCompliance(r.Ingredients, prefs.Diets)

	if len(ranked.MatchedAllergens) == 0 {
		ranked.PriorityScore += 1000
	}
	if len(ranked.DietMismatches) == 0 {
		ranked.PriorityScore += 100
	}

	if len(ranked.MatchedAllergens) > 0 {
		ranked.Warnings = append(ranked.Warnings, common.Warning{
			Type:      "allergy",
			Level:     "critical",
			Message:   "⚠️ CAUTION: Contains " + capitalizeJoin(ranked.MatchedAllergens),
			Allergens: ranked.MatchedAllergens,
		})
	}
	if len(ranked.DietMismatches) > 0 {
		ranked.Warnings = append(ranked.Warnings, common.Warning{
			Type:       "dietary",
			Level:      "warning",
			Message:    "⚠️ CAUTION: Not " + capitalizeJoin(ranked.DietMismatches),
			Mismatches: ranked.DietMismatches,
		})
	}

	return ranked
}

// ApplyFilters 套用硬性過濾：烹調時間上限、辣度上限，
// 以及嚴格過敏原過濾。過敏原過濾只在安全子集非空時取代結果，
// 避免把清單過濾到一筆不剩。
func ApplyFilters(recipes []RankedRecipe, prefs common.Preferences) []RankedRecipe {
	filtered := recipes

	if prefs.MaxReadyTime > 0 && prefs.MaxReadyTime < common.MaxReadyTimeUnlimited {
		kept := make([]RankedRecipe, 0, len(filtered))
		for _, r := range filtered {
			if r.ReadyInMinutes <= prefs.MaxReadyTime {
				kept = append(kept, r)
			}
		}
		filtered = kept
	}

	if prefs.MaxSpiciness != common.SpicinessAny {
		kept := make([]RankedRecipe, 0, len(filtered))
		for _, r := range filtered {
			if r.Spiciness <= prefs.MaxSpiciness {
				kept = append(kept, r)
			}
		}
		filtered = kept
	}

	if len(prefs.Allergies) > 0 || len(prefs.Intolerances) > 0 {
		safe := make([]RankedRecipe, 0, len(filtered))
		for _, r := range filtered {
			if len(r.MatchedAllergens) == 0 {
				safe = append(safe, r)
			}
		}
		if len(safe) > 0 {
			filtered = safe
		}
	}

	return filtered
}

// CountMatches 計算食譜命中幾個搜尋食材：搜尋詞是任一食材
// 名稱的子字串即算命中，不分大小寫，每個搜尋詞至多計一次
func CountMatches(ingredients []common.Ingredient, requested []string) int {
	count := 0
	for _, term := range requested {
		want := strings.ToLower(strings.TrimSpace(term))
		if want == "" {
			continue
		}
		for _, ing := range ingredients {
			if strings.Contains(strings.ToLower(ing.Name), want) {
				count++
				break
			}
		}
	}
	return count
}

// SortByPriority 依優先分數由高至低穩定排序，
// 同分者保持供應商回傳的原始順序
func SortByPriority(recipes []RankedRecipe) {
	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].PriorityScore > recipes[j].PriorityScore
	})
}

// Cascade 依命中食材數分組，由全數命中逐級放寬。
// 各組包含命中數達門檻的所有食譜（組間重疊），組內安全者在前。
// 無任何食譜命中全部食材時附上退而求其次組：
// 至多五筆命中至少一項的食譜，以 IsFallback 標記。
func Cascade(recipes []RankedRecipe, requested int) []MatchGroup {
	if requested <= 0 || len(recipes) == 0 {
		return nil
	}

	groups := []MatchGroup{}
	for want := requested; want >= 1; want-- {
		group := MatchGroup{MatchCount: want}
		for _, r := range recipes {
			if r.MatchCount >= want {
				group.Recipes = append(group.Recipes, r)
			}
		}
		if len(group.Recipes) == 0 {
			continue
		}
		SortByPriority(group.Recipes)
		groups = append(groups, group)
	}

	// 無人命中全部食材：補退而求其次組
	if len(groups) == 0 || groups[0].MatchCount < requested {
		fallback := MatchGroup{IsFallback: true}
		for _, r := range recipes {
			if r.MatchCount >= 1 {
				fallback.Recipes = append(fallback.Recipes, r)
				if len(fallback.Recipes) == fallbackGroupSize {
					break
				}
			}
		}
		if len(fallback.Recipes) > 0 {
			SortByPriority(fallback.Recipes)
			groups = append(groups, fallback)
		}
	}

	return groups
}

// matchAllergens 逐一食材比對使用者在意的過敏原，彙整去重
func matchAllergens(ingredients []common.Ingredient, concerns []string) []string {
	var matched []string
	seen := make(map[string]bool)
	for _, concern := range concerns {
		key := strings.ToLower(strings.TrimSpace(concern))
		if key == "" || seen[key] {
			continue
		}
		for _, ing := range ingredients {
			if ingredient.ContainsAllergen(ing.Name+" "+ing.OriginalString, key) {
				matched = append(matched, key)
				seen[key] = true
				break
			}
		}
	}
	return matched
}

func capitalizeJoin(words []string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = common.Capitalize(w)
	}
	return strings.Join(out, ", ")
}
