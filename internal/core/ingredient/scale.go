package ingredient

import "math"

// ScaleAmount 依目標份數等比縮放食材數量，並按數值大小分級取整：
// 極小值保留兩位小數、小於 1 保留一位、小於 10 取到最近的 1/4、其餘取整數。
// 份數相同或無效時原樣回傳。
func ScaleAmount(amount float64, originalServings, targetServings int) float64 {
	if originalServings <= 0 || targetServings <= 0 || originalServings == targetServings {
		return amount
	}

	scaled := amount * float64(targetServings) / float64(originalServings)

	switch {
	case scaled < 0.1:
		return math.Round(scaled*100) / 100
	case scaled < 1:
		return math.Round(scaled*10) / 10
	case scaled < 10:
		return math.Round(scaled*4) / 4
	default:
		return math.Round(scaled)
	}
}
