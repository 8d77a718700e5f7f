package ingredient

import (
	"regexp"
	"strconv"
	"strings"
)

var mixedNumberPattern = regexp.MustCompile(`(\d+)\s+(\d+)/(\d+)`)

// ParseQuantity 解析數量字串為非負浮點數。
// 支援純數字、分數（"1/2"）、帶分數（"1 1/2"）與分數字詞（"half"）。
// 空字串與無法解析的輸入回傳 1，負值夾為 0，解析永不失敗。
func ParseQuantity(raw string) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 1
	}

	// 純數字
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if v < 0 {
			return 0
		}
		return v
	}

	// 帶分數："1 1/2"
	if m := mixedNumberPattern.FindStringSubmatch(trimmed); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		num, _ := strconv.ParseFloat(m[2], 64)
		den, _ := strconv.ParseFloat(m[3], 64)
		if den != 0 {
			return whole + num/den
		}
	}

	// 簡單分數："1/2"
	if idx := strings.Index(trimmed, "/"); idx > 0 {
		num, errN := strconv.ParseFloat(strings.TrimSpace(trimmed[:idx]), 64)
		den, errD := strconv.ParseFloat(strings.TrimSpace(trimmed[idx+1:]), 64)
		if errN == nil && errD == nil && den != 0 {
			if v := num / den; v >= 0 {
				return v
			}
			return 0
		}
	}

	// 分數字詞："half"、"quarter" 等，子字串比對
	lower := strings.ToLower(trimmed)
	for _, fw := range fractionWords {
		if strings.Contains(lower, fw.word) {
			return fw.value
		}
	}

	return 1
}
