package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"thingherder/pkg/models"
)

// SessionTokenTTL 会话令牌有效期（浏览器端使用，api_key 本身永不过期）
const SessionTokenTTL = 24 * time.Hour

// JWTService 会话令牌服务
type JWTService struct {
	secretKey []byte
}

// NewJWTService 创建会话令牌服务
func NewJWTService(secretKey string) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
	}
}

// GenerateSessionToken 为指定 agent 签发短期会话令牌
func (j *JWTService) GenerateSessionToken(agentID, name string) (string, int64, error) {
	now := time.Now()
	expiry := now.Add(SessionTokenTTL)

	claims := &models.TokenClaims{
		AgentID: agentID,
		Name:    name,
		Exp:     expiry.Unix(),
		Iat:     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate session token: %w", err)
	}

	return tokenString, expiry.Unix(), nil
}

// ValidateToken 验证会话令牌
func (j *JWTService) ValidateToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	// 检查是否过期
	if time.Now().Unix() > claims.Exp {
		return nil, fmt.Errorf("token expired")
	}

	return claims, nil
}
