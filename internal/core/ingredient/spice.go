package ingredient

import (
	"strings"

	"recipe-slot/internal/pkg/common"
)

// EstimateSpiciness 估算食譜辣度（0–5）。
// 取所有食材中最辣者的等級，不做累加：一道菜的辣度由最辣的食材決定。
func EstimateSpiciness(ingredients []common.Ingredient) int {
	level := 0
	for _, ing := range ingredients {
		text := strings.ToLower(ing.Name + " " + ing.OriginalString)
		for tier := len(spiceTiers) - 1; tier >= 0; tier-- {
			if tier+1 <= level {
				break
			}
			if containsAny(text, spiceTiers[tier]) {
				level = tier + 1
				break
			}
		}
	}
	return level
}
