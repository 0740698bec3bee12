package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal is the caller identity derived once per request from the session
// cookie. A session carries either the admin flag or a teacher identity,
// never both; the zero value is anonymous.
type Principal struct {
	Admin       bool
	TeacherID   int64
	TeacherName string
}

func (p Principal) IsAdmin() bool {
	return p.Admin
}

func (p Principal) IsTeacher() bool {
	return p.TeacherID != 0
}

func (p Principal) IsAnonymous() bool {
	return !p.Admin && p.TeacherID == 0
}

// SessionService signs and verifies the session cookie blob. Sessions carry
// no expiry: they stay valid until the client discards the cookie or the
// signing secret changes.
type SessionService struct {
	Secret []byte
	Issuer string
}

func (s SessionService) IssueAdmin() (string, error) {
	claims := jwt.MapClaims{
		"iss": s.Issuer,
		"jti": uuid.NewString(),
		"typ": "session",
		"adm": true,
		"iat": time.Now().UTC().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

func (s SessionService) IssueTeacher(teacherID int64, name string) (string, error) {
	claims := jwt.MapClaims{
		"iss":   s.Issuer,
		"jti":   uuid.NewString(),
		"typ":   "session",
		"tid":   teacherID,
		"tname": name,
		"iat":   time.Now().UTC().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// Parse returns the principal encoded in the blob, or an anonymous principal
// with an error when the blob is missing, malformed, or signed with a
// different secret.
func (s SessionService) Parse(blob string) (Principal, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(blob, claims, func(token *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	}, jwt.WithIssuer(s.Issuer), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return Principal{}, ErrUnauthorized("Authentication failed")
	}
	if claims["typ"] != "session" {
		return Principal{}, ErrUnauthorized("Authentication failed")
	}
	if adm, ok := claims["adm"].(bool); ok && adm {
		return Principal{Admin: true}, nil
	}
	if tid, ok := claims["tid"].(float64); ok && tid > 0 {
		name, _ := claims["tname"].(string)
		return Principal{TeacherID: int64(tid), TeacherName: name}, nil
	}
	return Principal{}, ErrUnauthorized("Authentication failed")
}
