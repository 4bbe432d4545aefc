package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"rightsquest/backend/config"
)

// TokenMaxAge is the session lifetime in seconds. The cookie Max-Age and
// the token expiry are always the same value.
const TokenMaxAge = 3600

// GenerateJWTToken signs a session token carrying the user id and age.
// The token itself is the session; there is no server-side session table.
func GenerateJWTToken(userID uint, age int, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"age": age,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(TokenMaxAge * time.Second).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// SetTokenCookie delivers the session token as an HTTP-only cookie
// scoped to the whole site.
func SetTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   TokenMaxAge,
		HTTPOnly: true,
	})
}

// ClearTokenCookie expires the session cookie immediately.
func ClearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
	})
}

// ExtractUserIDFromToken reads the session cookie and returns the user id
// embedded in it. The Authorization header is accepted as a fallback so
// non-browser clients can authenticate too.
func ExtractUserIDFromToken(c *fiber.Ctx, cfg *config.Config) (uint, error) {
	tokenString := c.Cookies("token")
	if tokenString == "" {
		tokenString = c.Get("Authorization")
	}
	if tokenString == "" {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})

	if err != nil {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	userIDFloat, ok := claims["id"].(float64)
	if !ok {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}

	return uint(userIDFloat), nil
}
