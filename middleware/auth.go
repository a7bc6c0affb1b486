package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"rental-server/usecases"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const callerKey = "caller"

// Claims identify the account behind a bearer token. Tokens issued by the
// account service put the id in "sub"; older ones use "user_id".
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) caller() usecases.Caller {
	id := c.Subject
	if id == "" {
		id = c.UserID
	}
	return usecases.Caller{ID: id, Role: c.Role}
}

// GenerateToken signs an HS256 token for userID. A zero ttl means no expiry.
func GenerateToken(secret []byte, userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies an HS256 token and returns its claims.
func ParseToken(secret []byte, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" && claims.UserID == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller on the context.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abort(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		claims, err := ParseToken(secret, tokenString)
		if err != nil {
			LoggerFrom(c).Debug("rejected bearer token", "error", err)
			abort(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		c.Set(callerKey, claims.caller())
		c.Next()
	}
}

// OptionalAuth identifies the caller when a token is supplied, either as a
// bearer header or as the token query parameter for clients such as browsers
// opening a websocket. Requests without a token pass through anonymously; an
// invalid token is rejected.
func OptionalAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			tokenString = strings.TrimSpace(c.Query("token"))
		}
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := ParseToken(secret, tokenString)
		if err != nil {
			LoggerFrom(c).Debug("rejected optional token", "error", err)
			abort(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		c.Set(callerKey, claims.caller())
		c.Next()
	}
}

// Authorize allows only the given roles. It must run after RequireAuth.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}
		if !slices.Contains(roles, caller.Role) {
			abort(c, http.StatusForbidden, fmt.Sprintf("User role %s is not authorized to access this route", caller.Role))
			return
		}
		c.Next()
	}
}

// CallerFrom returns the authenticated caller set by RequireAuth or
// OptionalAuth.
func CallerFrom(c *gin.Context) (usecases.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return usecases.Caller{}, false
	}
	caller, ok := v.(usecases.Caller)
	return caller, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
