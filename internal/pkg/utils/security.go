package utils

import (
	"medisync-service/internal/pkg/exceptions"

	"github.com/golang-jwt/jwt/v4"
)

// TokenClaims is the subset of JWT claims the service relies on. Token
// issuance lives in the external auth service; this side only verifies.
type TokenClaims struct {
	UserID     int64
	Role       string
	PatientID  int64
	DoctorID   int64
	HospitalID int64
}

// ParseJWT verifies an HS256 bearer token and extracts the identity claims.
func ParseJWT(tokenString, secret string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, exceptions.ErrTokenInvalidOrExpired(nil)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}

	parsed := &TokenClaims{
		UserID:     claimInt64(claims, "user_id"),
		Role:       claimString(claims, "role"),
		PatientID:  claimInt64(claims, "patient_id"),
		DoctorID:   claimInt64(claims, "doctor_id"),
		HospitalID: claimInt64(claims, "hospital_id"),
	}
	if parsed.UserID == 0 || parsed.Role == "" {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return parsed, nil
}

func claimInt64(claims jwt.MapClaims, key string) int64 {
	if v, ok := claims[key].(float64); ok {
		return int64(v)
	}
	return 0
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
