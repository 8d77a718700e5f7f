package ingredient

import (
	"math"
	"strings"
)

// AbbreviateUnit 將完整單位名稱轉為慣用縮寫，無對應時原樣回傳
func AbbreviateUnit(unit string) string {
	if abbr, ok := unitAbbreviations[unit]; ok {
		return abbr
	}
	if abbr, ok := unitAbbreviations[strings.ToLower(unit)]; ok {
		return abbr
	}
	return unit
}

// SmartUnit 依食材名稱推斷購物用的數量與單位。
// 已有具體單位者只做縮寫轉換；無單位（或 piece/item 類）時
// 依食材類別順序表推斷，順序不可調動。
func SmartUnit(name string, amount float64, rawUnit string) (float64, string) {
	if !passthroughUnits[strings.ToLower(strings.TrimSpace(rawUnit))] {
		return amount, AbbreviateUnit(rawUnit)
	}

	lower := strings.ToLower(name)

	switch {
	case containsAny(lower, headVegetables):
		return amount, pluralize(amount, "head", "heads")
	case containsAny(lower, bunchGreens):
		return amount, pluralize(amount, "bunch", "bunches")
	case containsAny(lower, meats):
		// oz、fl oz、tsp 的複數形與單數相同
		if amount >= 1 {
			return amount, pluralize(amount, "lb", "lbs")
		}
		return amount, "oz"
	case containsAny(lower, fishes):
		return amount, pluralize(amount, "fillet", "fillets")
	case containsAny(lower, dairyLiquids):
		return amount, pluralize(amount, "carton", "cartons")
	case containsAny(lower, eggWords):
		return math.Ceil(amount / 12), "dozen"
	case containsAny(lower, bakedGoods):
		return amount, pluralize(amount, "loaf", "loaves")
	case containsAny(lower, liquids):
		if amount >= 8 {
			return amount, pluralize(amount, "cup", "cups")
		}
		return amount, "fl oz"
	case containsAny(lower, cannedGoods):
		return amount, pluralize(amount, "can", "cans")
	case containsAny(lower, spices):
		if amount > 0.25 {
			return amount, "tsp"
		}
		return amount, pluralize(amount, "pinch", "pinches")
	case containsAny(lower, riceGrains):
		if amount >= 2 {
			return amount, pluralize(amount, "cup", "cups")
		}
		return amount, "oz"
	case containsAny(lower, pastas):
		if amount >= 1 {
			return amount, pluralize(amount, "lb", "lbs")
		}
		return amount, "oz"
	case containsAny(lower, flourBaking):
		if amount >= 1 {
			return amount, pluralize(amount, "cup", "cups")
		}
		return amount, "oz"
	case containsAny(lower, oatsCereals):
		if amount >= 2 {
			return amount, pluralize(amount, "cup", "cups")
		}
		return amount, pluralize(amount, "package", "packages")
	case containsAny(lower, wholeItems):
		return amount, "whole"
	}

	// 無類別命中：整數個數，或換算為盎司
	if amount >= 1 {
		rounded := math.Round(amount)
		return rounded, pluralize(rounded, "item", "items")
	}
	return math.Round(amount * 16), "oz"
}

// pluralize 依最終數量選擇單複數形
func pluralize(amount float64, singular, plural string) string {
	if amount > 1 {
		return plural
	}
	return singular
}
