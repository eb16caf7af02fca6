package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// APIKeyPrefix 便于在日志与配置中一眼识别 ThingHerder 的密钥
const APIKeyPrefix = "th_"

// GenerateURLToken 生成 URL-safe 的随机 token，长度约为 4/3*n 字符
// n 为原始随机字节数，推荐 24 或 32
func GenerateURLToken(n int) (string, error) {
	if n <= 0 {
		n = 24
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	// 使用 RawURLEncoding，避免出现 '=' 填充与 '+' '/' 字符
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GenerateAPIKey 生成 agent 的永久密钥（注册时发放一次，之后不再返回）
func GenerateAPIKey() (string, error) {
	tok, err := GenerateURLToken(32)
	if err != nil {
		return "", err
	}
	return APIKeyPrefix + tok, nil
}
