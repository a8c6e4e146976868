package utils

import (
	"crypto/md5"
	"encoding/hex"
)

// HashInput 返回输入的 md5 摘要，用于日志脱敏：
// 故障日志只记录摘要，避免把邮箱、IP 等个人数据写进日志。
func HashInput(input string) string {
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}
