package ingredient

import "strings"

// keywordRule 關鍵字規則：命中清單中任一關鍵字即套用
type keywordRule struct {
	name     string
	keywords []string
}

// containsAny 檢查文字是否包含任一關鍵字（不分大小寫，子字串比對）
func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// firstMatch 依序比對規則，回傳第一個命中的規則名稱
func firstMatch(text string, rules []keywordRule) (string, bool) {
	for _, rule := range rules {
		if containsAny(text, rule.keywords) {
			return rule.name, true
		}
	}
	return "", false
}

// unitAbbreviations 單位縮寫對照表
var unitAbbreviations = map[string]string{
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"fluid ounce": "fl oz",
	"pound":       "lb",
	"pounds":      "lbs",
	"ounce":       "oz",
	"ounces":      "oz",
	"gram":        "g",
	"grams":       "g",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"c":           "cup",
	"c.":          "cup",
	"t":           "tsp",
	"T":           "tbsp",
	"pt":          "pint",
	"qt":          "quart",
	"gal":         "gallon",
	"cups":        "cup",
	"pints":       "pint",
	"quarts":      "quart",
	"gallons":     "gallon",
}

// passthroughUnits 視為「無單位」的原始單位，需進入智慧單位推斷
var passthroughUnits = map[string]bool{
	"":       true,
	"piece":  true,
	"pieces": true,
	"item":   true,
	"items":  true,
}

// fractionWords 分數字詞對照表（子字串比對）
var fractionWords = []struct {
	word  string
	value float64
}{
	{"half", 0.5},
	{"quarter", 0.25},
	{"third", 0.333},
	{"eighth", 0.125},
}

// 食材類別關鍵字順序表。順序即優先序：先命中者先套用。
var (
	headVegetables = []string{"lettuce", "cabbage", "broccoli", "cauliflower", "bok choy", "iceberg"}
	bunchGreens    = []string{"spinach", "kale", "chard", "arugula", "basil", "cilantro", "parsley", "dill", "mint", "scallions", "green onions", "asparagus"}
	meats          = []string{"chicken", "beef", "pork", "lamb", "turkey", "duck", "steak", "ground beef", "ground turkey", "bacon", "ham", "sausage"}
	fishes         = []string{"salmon", "tuna", "cod", "tilapia", "mahi mahi", "halibut", "trout", "bass", "fish fillet"}
	dairyLiquids   = []string{"milk", "heavy cream", "half and half", "buttermilk"}
	eggWords       = []string{"egg", "eggs"}
	bakedGoods     = []string{"bread", "baguette", "rolls", "bagels", "croissants"}
	liquids        = []string{"broth", "stock", "wine", "vinegar", "oil", "sauce", "juice", "water"}
	cannedGoods    = []string{"canned", "can of", "diced tomatoes", "tomato sauce", "tomato paste", "beans", "corn", "peas"}
	spices         = []string{"salt", "pepper", "paprika", "cumin", "oregano", "thyme", "rosemary", "sage", "cinnamon", "nutmeg", "cardamom", "turmeric", "curry powder", "chili powder", "garlic powder", "onion powder"}
	riceGrains     = []string{"rice", "quinoa", "barley", "couscous", "bulgur", "millet"}
	pastas         = []string{"pasta", "noodles", "spaghetti", "penne", "linguine", "fettuccine", "macaroni"}
	flourBaking    = []string{"flour", "sugar", "brown sugar", "powdered sugar", "baking powder", "baking soda", "cornstarch"}
	oatsCereals    = []string{"oats", "oatmeal", "cereal", "granola"}
	wholeItems     = []string{"onion", "garlic", "lemon", "lime", "orange", "apple", "banana", "potato", "sweet potato", "bell pepper", "jalapeño", "tomato", "avocado", "cucumber"}
)

// categoryRules 購物清單分類關鍵字順序表
var categoryRules = []keywordRule{
	{"produce", []string{"apple", "banana", "orange", "lemon", "lime", "berry", "berries", "grape", "melon", "tomato", "potato", "onion", "garlic", "carrot", "celery", "pepper", "lettuce", "spinach", "kale", "broccoli", "cauliflower", "cucumber", "zucchini", "mushroom", "avocado", "herb", "cilantro", "parsley", "basil", "ginger"}},
	{"dairy", []string{"milk", "cheese", "butter", "cream", "yogurt", "egg", "sour cream", "cottage cheese", "mozzarella", "cheddar", "parmesan", "ricotta"}},
	{"meat", []string{"chicken", "beef", "pork", "turkey", "lamb", "fish", "salmon", "tuna", "shrimp", "bacon", "sausage", "ham", "ground"}},
	{"pantry", []string{"flour", "sugar", "rice", "pasta", "bread", "oil", "vinegar", "sauce", "spice", "salt", "pepper", "beans", "lentils", "quinoa", "oats", "cereal", "nuts", "honey", "syrup", "vanilla", "baking"}},
	{"frozen", []string{"frozen", "ice cream", "popsicle"}},
	{"beverages", []string{"juice", "soda", "water", "coffee", "tea", "wine", "beer"}},
}

// allergenSynonyms 過敏原同義詞表：標準過敏原名稱 → 命中關鍵字。
// 過敏原名稱本身一律參與比對，此表只列額外同義詞。
var allergenSynonyms = map[string][]string{
	"dairy":     {"milk", "cheese", "butter", "cream", "yogurt", "ricotta", "mozzarella", "cheddar", "parmesan"},
	"nuts":      {"almond", "walnut", "pecan", "cashew", "pistachio", "hazelnut", "peanut"},
	"gluten":    {"wheat", "flour", "bread", "pasta", "barley", "rye"},
	"eggs":      {"egg", "mayo", "mayonnaise"},
	"fish":      {"salmon", "tuna", "cod", "tilapia", "bass", "trout", "fish"},
	"shellfish": {"shrimp", "crab", "lobster", "scallop", "clam", "oyster"},
	"soy":       {"soy", "tofu", "soy sauce", "miso", "edamame"},
	"peanuts":   {"peanut", "groundnut"},
}

// StandardAllergens 匯入食譜時逐一檢測的標準過敏原集合
var StandardAllergens = []string{"dairy", "nuts", "gluten", "eggs", "shellfish", "fish", "soy"}

// dietDisqualifiers 飲食法禁忌關鍵字表：命中任一即不符合該飲食法
var dietDisqualifiers = map[string][]string{
	"vegetarian":  {"chicken", "beef", "pork", "fish", "meat", "bacon", "ham"},
	"vegan":       {"meat", "chicken", "beef", "pork", "fish", "dairy", "milk", "cheese", "butter", "egg", "honey"},
	"gluten-free": {"wheat", "flour", "bread", "pasta", "gluten"},
	"dairy-free":  {"milk", "cheese", "butter", "cream", "dairy"},
	"keto":        {"rice", "pasta", "bread", "potato", "sugar", "flour"},
	"paleo":       {"grain", "dairy", "legume", "bean", "processed"},
}

// spiceTiers 辣度關鍵字分級表，索引 0 對應辣度 1
var spiceTiers = [][]string{
	{"black pepper", "white pepper", "paprika", "ginger", "turmeric"},
	{"cumin", "mustard", "mild chili", "bell pepper"},
	{"jalapeño", "chipotle", "chili powder", "curry", "red pepper flakes"},
	{"serrano", "cayenne", "hot sauce", "sriracha", "tabasco"},
	{"habanero", "ghost pepper", "carolina reaper", "scotch bonnet", "thai chili"},
}
