package devserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/milkchain/milkchain/internal/accounts"
)

var b64 = base64.RawURLEncoding

// signToken creates a compact HS256 bearer token for an account.
func signToken(account accounts.Account, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := map[string]any{
		"sub":  account.ID,
		"role": account.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	header := map[string]string{"alg": "HS256", "typ": "JWT"}
	h, err := json.Marshal(header)
	if err != nil {
		return "", err
	}
	c, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	unsigned := b64.EncodeToString(h) + "." + b64.EncodeToString(c)
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(unsigned))
	return unsigned + "." + b64.EncodeToString(mac.Sum(nil)), nil
}

// parseToken verifies the signature and expiry and returns the account id.
func parseToken(token string, secret []byte) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", errors.New("invalid token format")
	}
	unsigned := parts[0] + "." + parts[1]
	sigBytes, err := b64.DecodeString(parts[2])
	if err != nil {
		return "", errors.New("invalid signature encoding")
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(unsigned))
	if !hmac.Equal(sigBytes, mac.Sum(nil)) {
		return "", errors.New("signature mismatch")
	}
	payload, err := b64.DecodeString(parts[1])
	if err != nil {
		return "", errors.New("invalid payload encoding")
	}
	var claims struct {
		Sub string `json:"sub"`
		Exp int64  `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", errors.New("invalid claims json")
	}
	if claims.Exp != 0 && time.Now().Unix() > claims.Exp {
		return "", errors.New("token expired")
	}
	if claims.Sub == "" {
		return "", errors.New("missing subject")
	}
	return claims.Sub, nil
}
