package jwt

import (
	"crypto/rsa"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const AdminRole = "admin"

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// 讀取私鑰
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	keyBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read private key")
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(keyBytes)
	if err != nil {
		return nil, errors.Wrap(err, "parse private key")
	}

	return key, nil
}

// 讀取公鑰
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	keyBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read public key")
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM(keyBytes)
	if err != nil {
		return nil, errors.Wrap(err, "parse public key")
	}

	return key, nil
}

type Issuer struct {
	key    *rsa.PrivateKey
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(key *rsa.PrivateKey, issuer string, ttl time.Duration) *Issuer {
	return &Issuer{key: key, issuer: issuer, ttl: ttl, now: time.Now}
}

// 生成JWT Token
func (i *Issuer) GenerateToken(subject, role string) (string, error) {
	now := i.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tokenString, err := token.SignedString(i.key)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return tokenString, nil
}

type Verifier struct {
	key    *rsa.PublicKey
	issuer string
}

func NewVerifier(key *rsa.PublicKey, issuer string) *Verifier {
	return &Verifier{key: key, issuer: issuer}
}

// 驗證JWT Token並回傳Claims
func (v *Verifier) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		options = append(options, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.key, nil
	}, options...)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
