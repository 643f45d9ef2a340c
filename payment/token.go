package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid covers expired, malformed, and foreign-secret tokens.
var ErrTokenInvalid = errors.New("payment: invalid session token")

const tokenTTL = 24 * time.Hour

// TokenIssuer mints and verifies the opaque session tokens that correlate
// a payment session with a case id. Tokens are HS256-signed so the
// confirmation hook cannot be pointed at someone else's case.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	t.now = now
	return t
}

// Mint issues a signed token binding a payment session to a case.
func (t *TokenIssuer) Mint(caseID, sessionID string) (string, error) {
	if caseID == "" {
		return "", fmt.Errorf("payment: mint: missing case id")
	}
	if sessionID == "" {
		return "", fmt.Errorf("payment: mint: missing session id")
	}

	now := t.now()
	claims := jwt.MapClaims{
		"case_id":    caseID,
		"session_id": sessionID,
		"iat":        now.Unix(),
		"exp":        now.Add(tokenTTL).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("payment: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the bound case and
// session ids.
func (t *TokenIssuer) Verify(tokenString string) (caseID, sessionID string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", ErrTokenInvalid
	}
	caseID, ok = claims["case_id"].(string)
	if !ok || caseID == "" {
		return "", "", fmt.Errorf("%w: missing case_id claim", ErrTokenInvalid)
	}
	sessionID, ok = claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", "", fmt.Errorf("%w: missing session_id claim", ErrTokenInvalid)
	}
	return caseID, sessionID, nil
}
