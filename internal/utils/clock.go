package utils

import (
	"time"
)

// 全站日浏览量按东八区日期聚合，与服务器本地时区无关
var cst = time.FixedZone("UTC+8", 8*60*60)

// DateKey 返回 t 在东八区的 YYYY-MM-DD 日期键
func DateKey(t time.Time) string {
	return t.In(cst).Format("2006-01-02")
}

// TodayKey 返回当前东八区日期键
func TodayKey() string {
	return DateKey(time.Now())
}
