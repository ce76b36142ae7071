// Package token emite y verifica tokens HS256 con secreto simétrico compartido.
//
// El payload es mínimo: {"id": <subjectId>} más iat/exp. El token prueba
// autenticidad e integridad, no confidencialidad (el payload es legible).
package token

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrEmptySecret indica que se intentó crear un issuer sin secreto.
	ErrEmptySecret = errors.New("token: signing secret is empty")
	// ErrInvalidToken cubre firma inválida, token mal formado, expirado o
	// con algoritmo distinto a HMAC.
	ErrInvalidToken = errors.New("token: invalid token")
	// ErrMissingSubject indica que el payload no trae el claim "id".
	ErrMissingSubject = errors.New("token: missing id claim")
)

// Issuer firma y verifica tokens con un secreto compartido.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer crea un issuer. ttl <= 0 emite tokens sin expiración.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

// Sign emite un token firmado para el subject dado.
// Función pura del secreto + input: no tiene efectos secundarios.
func (i *Issuer) Sign(subjectID string) (string, error) {
	now := time.Now().UTC()
	claims := jwtv5.MapClaims{
		"id":  subjectID,
		"iat": now.Unix(),
	}
	if i.ttl > 0 {
		claims["exp"] = now.Add(i.ttl).Unix()
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return tk.SignedString(i.secret)
}

// Verify valida firma y algoritmo, y devuelve el subject ID del claim "id".
// Un token firmado con otro algoritmo (incluido "none") se rechaza siempre.
func (i *Issuer) Verify(raw string) (string, error) {
	tk, err := jwtv5.Parse(raw, func(t *jwtv5.Token) (any, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !tk.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := tk.Claims.(jwtv5.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	id, _ := claims["id"].(string)
	if id == "" {
		return "", ErrMissingSubject
	}
	return id, nil
}
