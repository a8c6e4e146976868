package utils

import (
	"strconv"
)

// StringToInt converts string to int, returns fallback if error
func StringToInt(s string, fallback int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return i
}

// ClampPage 将页码收敛到 >= 1
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClampLimit 将每页条数收敛到 [1, 100]
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > 100 {
		return 100
	}
	return limit
}
