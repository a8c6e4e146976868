package utils

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP 按代理头优先级提取提交方 IP：
// X-Forwarded-For 第一跳 → X-Real-IP → 连接层 RemoteAddr。
// 返回值已去除端口并归一化 IPv4-mapped IPv6。
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if ip := NormalizeIP(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if ip := NormalizeIP(xri); ip != "" {
			return ip
		}
	}
	return NormalizeIP(r.RemoteAddr)
}

// NormalizeIP strips a port suffix if present and rewrites
// IPv4-mapped IPv6 (::ffff:1.2.3.4) to plain IPv4. Input that is not
// an IP at all yields "".
func NormalizeIP(addr string) string {
	if addr == "" {
		return ""
	}
	host := addr
	if h, _, err := net.SplitHostPort(addr); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	ip := net.ParseIP(host)
	if ip == nil {
		return ""
	}
	if v4 := ip.To4(); v4 != nil {
		return v4.String()
	}
	return ip.String()
}

// UserAgent 返回请求的 User-Agent，截断到数据库列宽
func UserAgent(r *http.Request) string {
	ua := r.UserAgent()
	if len(ua) > 512 {
		return ua[:512]
	}
	return ua
}
