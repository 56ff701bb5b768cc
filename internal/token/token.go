// Package token issues and verifies signed access tokens and generates opaque
// refresh tokens. Access tokens are RS256 JWTs verifiable with the public key
// alone; refresh tokens carry no claims at all.
package token

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"orderhub/internal/crypto"
	"orderhub/internal/errs"
)

const defaultScope = "USER"

// Claims is the access-token claim set.
type Claims struct {
	Roles []string `json:"roles"`
	Scope string   `json:"scope"`
	jwt.RegisteredClaims
}

// Issuer signs access tokens with a process-wide RSA private key.
type Issuer struct {
	priv      *rsa.PrivateKey
	issuer    string
	accessTTL time.Duration
	now       func() time.Time
}

// NewIssuer constructs an Issuer. issuer is embedded in the "iss" claim.
func NewIssuer(priv *rsa.PrivateKey, issuer string, accessTTL time.Duration) *Issuer {
	return &Issuer{priv: priv, issuer: issuer, accessTTL: accessTTL, now: time.Now}
}

// AccessToken returns a signed JWT for the given subject and role names plus
// its expiry. Pure function of (userID, roles, now); no side effects.
func (i *Issuer) AccessToken(userID uuid.UUID, roles []string) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.accessTTL)
	claims := Claims{
		Roles: roles,
		Scope: defaultScope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := tok.SignedString(i.priv)
	return signed, exp, err
}

// RefreshToken returns a cryptographically random opaque string (256 bits of
// entropy). It encodes nothing and cannot be derived from user, time or sequence.
func (i *Issuer) RefreshToken() (string, error) {
	b, err := crypto.RandBytes(32)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// PublicKey exposes the verification half of the signing key.
func (i *Issuer) PublicKey() *rsa.PublicKey { return &i.priv.PublicKey }

// Verifier validates access tokens using only the public key.
type Verifier struct {
	pub    *rsa.PublicKey
	issuer string
}

// NewVerifier constructs a Verifier bound to the expected issuer.
func NewVerifier(pub *rsa.PublicKey, issuer string) *Verifier {
	return &Verifier{pub: pub, issuer: issuer}
}

// Verify parses and validates a signed access token and returns its claims.
// Any parse, signature, issuer or expiry failure maps to ErrUnauthorized.
func (v *Verifier) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) { return v.pub, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrUnauthorized, err)
	}
	return claims, nil
}

// Subject returns the user id carried in the "sub" claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.FromString(c.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject", errs.ErrUnauthorized)
	}
	return id, nil
}

// ParsePrivateKeyPEM decodes an RSA private key from PEM (PKCS#1 or PKCS#8).
func ParsePrivateKeyPEM(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("token: no PEM block found")
	}
	if k, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return k, nil
	}
	k, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("token: parse private key: %w", err)
	}
	rk, ok := k.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("token: private key is not RSA")
	}
	return rk, nil
}

// LoadPrivateKey reads and parses an RSA private key PEM file.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("token: read key file: %w", err)
	}
	return ParsePrivateKeyPEM(data)
}
