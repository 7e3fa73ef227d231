package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	userModel "flight-booking/models/user"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/now"
)

// tokenTTL is how long an access token stays valid.
const tokenTTL = 24 * time.Hour

func jwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}
	return []byte(secret), nil
}

// GenerateToken issues an HS256 access token for the given account.
func GenerateToken(u *userModel.User) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"uuid":  u.Uuid,
		"email": u.Email,
		"role":  u.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyToken parses and validates an access token.
func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	secret, err := jwtSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ExtractUUIDFromContext returns the account uuid attached by the auth
// middleware.
func ExtractUUIDFromContext(c *fiber.Ctx) (string, error) {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims missing from context")
	}
	uid, ok := claims["uuid"].(string)
	if !ok || uid == "" {
		return "", errors.New("uuid not found in token")
	}
	return uid, nil
}

// BearerToken extracts a bearer token from the Authorization header, falling
// back to the access cookie.
func BearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", errors.New("invalid authorization header format")
		}
		return parts[1], nil
	}

	if token := c.Cookies("access"); token != "" {
		return token, nil
	}
	return "", errors.New("authorization token missing")
}

// DayWindow returns the [start, end] bounds of the calendar day the given
// date falls on, used to window flight departures for a search date.
func DayWindow(date time.Time) (time.Time, time.Time) {
	n := now.With(date)
	return n.BeginningOfDay(), n.EndOfDay()
}

// FormatAmount renders a minor-unit amount for emails, e.g. 34999 USD ->
// "349.99 USD".
func FormatAmount(amountCents int64, currency string) string {
	return fmt.Sprintf("%d.%02d %s", amountCents/100, amountCents%100, strings.ToUpper(currency))
}
