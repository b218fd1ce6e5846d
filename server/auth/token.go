// Package auth creates and reads seat tokens that bind a bearer to one player of one table.
package auth

import (
	"fmt"
	"io"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/jacobpatterson1549/selene-azul/game"
)

const issuer = "selene-azul"

type (
	// Tokenizer creates and reads seat tokens.
	Tokenizer struct {
		method jwt.SigningMethod
		key    []byte
		TokenizerConfig
	}

	// TokenizerConfig contains fields which describe a Tokenizer.
	TokenizerConfig struct {
		// KeyReader is used to generate the signing key.
		KeyReader io.Reader
		// TimeFunc supplies the current time in seconds since the unix epoch.
		TimeFunc func() int64
		// ValidSec is the length of time the token is valid from the issuing time, in seconds.
		ValidSec int64
	}

	// Seat identifies a player at a table.
	Seat struct {
		TableID game.ID
		Index   int
	}

	seatClaims struct {
		Seat                 int `json:"seat"`
		jwt.RegisteredClaims     // table id stored in Subject ("sub") field
	}
)

// NewTokenizer creates a Tokenizer that signs tokens with a random key read from the KeyReader.
func (cfg TokenizerConfig) NewTokenizer() (*Tokenizer, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating tokenizer: validation: %w", err)
	}
	key := make([]byte, 64)
	if _, err := io.ReadFull(cfg.KeyReader, key); err != nil {
		return nil, fmt.Errorf("generating tokenizer key: %w", err)
	}
	t := Tokenizer{
		method:          jwt.SigningMethodHS256,
		key:             key,
		TokenizerConfig: cfg,
	}
	return &t, nil
}

// Create signs a token for the seat.
func (t Tokenizer) Create(s Seat) (string, error) {
	if len(s.TableID) == 0 || s.Index < 0 {
		return "", fmt.Errorf("invalid seat: %+v", s)
	}
	now := t.TimeFunc()
	claims := seatClaims{
		Seat: s.Index,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   string(s.TableID),
			NotBefore: jwt.NewNumericDate(time.Unix(now, 0)),
			ExpiresAt: jwt.NewNumericDate(time.Unix(now+t.ValidSec, 0)),
		},
	}
	token := jwt.NewWithClaims(t.method, claims)
	return token.SignedString(t.key)
}

// Read extracts the seat from the token string, checking its signature and lifetime.
func (t Tokenizer) Read(tokenString string) (*Seat, error) {
	var claims seatClaims
	p := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, err := p.ParseWithClaims(tokenString, &claims, t.keyFunc); err != nil {
		return nil, fmt.Errorf("parsing seat token: %w", err)
	}
	now := time.Unix(t.TimeFunc(), 0)
	switch {
	case !claims.VerifyIssuer(issuer, true):
		return nil, fmt.Errorf("seat token has wrong issuer")
	case !claims.VerifyNotBefore(now, true):
		return nil, fmt.Errorf("seat token not valid yet")
	case !claims.VerifyExpiresAt(now, true):
		return nil, fmt.Errorf("seat token expired")
	case len(claims.Subject) == 0, claims.Seat < 0:
		return nil, fmt.Errorf("seat token missing seat")
	}
	s := Seat{
		TableID: game.ID(claims.Subject),
		Index:   claims.Seat,
	}
	return &s, nil
}

// keyFunc ensures the key type (method) of the token is correct before returning the key.
func (t Tokenizer) keyFunc(token *jwt.Token) (any, error) {
	if token.Method != t.method {
		return nil, fmt.Errorf("incorrect authorization signing method")
	}
	return t.key, nil
}

func (cfg TokenizerConfig) validate() error {
	switch {
	case cfg.KeyReader == nil:
		return fmt.Errorf("key reader required")
	case cfg.TimeFunc == nil:
		return fmt.Errorf("time func required")
	case cfg.ValidSec <= 0:
		return fmt.Errorf("positive valid seconds required")
	}
	return nil
}
