package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the session token claims. Session tokens let the
// browser UI avoid holding the long-lived api_key.
type TokenClaims struct {
	AgentID string `json:"agent_id"`
	Name    string `json:"name"`
	Exp     int64  `json:"exp"`
	Iat     int64  `json:"iat"`
}

// GetExpirationTime implements jwt.Claims interface
func (c *TokenClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.Exp, 0)), nil
}

// GetIssuedAt implements jwt.Claims interface
func (c *TokenClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.Iat, 0)), nil
}

// GetNotBefore implements jwt.Claims interface
func (c *TokenClaims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

// GetIssuer implements jwt.Claims interface
func (c *TokenClaims) GetIssuer() (string, error) {
	return "", nil
}

// GetSubject implements jwt.Claims interface
func (c *TokenClaims) GetSubject() (string, error) {
	return c.AgentID, nil
}

// GetAudience implements jwt.Claims interface
func (c *TokenClaims) GetAudience() (jwt.ClaimStrings, error) {
	return nil, nil
}

// SessionRequest represents the payload for exchanging an api_key for a
// short-lived session token
type SessionRequest struct {
	APIKey string `json:"api_key"`
}

// SessionResponse carries the issued session token
type SessionResponse struct {
	Agent       Agent  `json:"agent"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
