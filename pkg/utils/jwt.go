package utils

import (
	"time"

	"blog_crud_jwt/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the caller identity embedded in the token.
// The admin flag is deliberately absent: it is re-read from the store on
// every admin-gated request so revoking admin takes effect immediately.
type Claims struct {
	UserID       string `json:"id"`
	Firstname    string `json:"firstname"`
	Lastname     string `json:"lastname"`
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs an identity token for the given user.
func GenerateToken(userID, firstname, lastname, username, profileImage string) (string, error) {
	now := time.Now()
	expire := now.Add(time.Duration(config.GlobalConfig.JWT.Expire) * time.Hour)

	claims := Claims{
		UserID:       userID,
		Firstname:    firstname,
		Lastname:     lastname,
		Username:     username,
		ProfileImage: profileImage,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expire),
			Issuer:    "blog-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.GlobalConfig.JWT.Secret))
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(config.GlobalConfig.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}
