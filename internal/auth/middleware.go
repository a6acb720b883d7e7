package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"ms-storefront/internal/utils"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
)

const adminIDKey = "admin_id"

// GinMiddleware verifies OIDC bearer tokens on back-office routes and
// stores the admin's subject in the gin context.
func GinMiddleware() gin.HandlerFunc {
	issuer := os.Getenv("OIDC_ISSUER") // e.g. http://auth.storefront.local:8080/realms/storefront
	if issuer == "" {
		panic("OIDC_ISSUER env var not set")
	}

	provider, err := oidc.NewProvider(context.Background(), issuer)
	if err != nil {
		panic(fmt.Sprintf("Failed to create OIDC provider: %v", err))
	}

	// Verifier (SkipClientIDCheck → no client ID required)
	verifier := provider.Verifier(&oidc.Config{
		SkipClientIDCheck: true,
	})

	return func(c *gin.Context) {
		rawToken, err := ExtractTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse("Unauthorized", err.Error()))
			return
		}

		idToken, err := verifier.Verify(c.Request.Context(), rawToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse("Unauthorized", fmt.Sprintf("invalid token: %v", err)))
			return
		}

		var claims struct {
			Sub string `json:"sub"`
		}
		if err := idToken.Claims(&claims); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse("Unauthorized", "failed to parse claims"))
			return
		}

		c.Set(adminIDKey, claims.Sub)
		c.Next()
	}
}

// AdminID returns the verified admin subject from the gin context.
func AdminID(c *gin.Context) string {
	if id, ok := c.Get(adminIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// ExtractTokenFromRequest pulls the bearer token out of the Authorization
// header.
func ExtractTokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("authorization header is missing")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("authorization header format must be 'Bearer {token}'")
	}

	return parts[1], nil
}
