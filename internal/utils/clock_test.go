package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKeyUsesFixedOffset(t *testing.T) {
	// UTC 2024-01-01 20:00 在东八区已经是 1 月 2 日凌晨
	utc := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-02", DateKey(utc))

	// 同一瞬间换个时区表示，日期键不变
	ny, err := time.LoadLocation("America/New_York")
	if err == nil {
		assert.Equal(t, "2024-01-02", DateKey(utc.In(ny)))
	}

	utcMorning := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-01", DateKey(utcMorning))
}

func TestDateKeyBoundary(t *testing.T) {
	// 东八区午夜前后各一秒
	before := time.Date(2024, 5, 31, 15, 59, 59, 0, time.UTC)
	after := time.Date(2024, 5, 31, 16, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-31", DateKey(before))
	assert.Equal(t, "2024-06-01", DateKey(after))
}
