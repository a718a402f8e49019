package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campus-events-api/internal/domain"
	"github.com/campushq/campus-events-api/internal/pkg/jwthelper"
)

const (
	ContextKeyUserID = "auth.user_id"
	ContextKeyRole   = "auth.role"
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT accepts any valid bearer token (admin or student) and stashes
// the identity in the gin context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := a.parse(ctx)
		if !ok {
			return
		}

		ctx.Set(ContextKeyUserID, claims.UserID)
		ctx.Set(ContextKeyRole, claims.Role)
		ctx.Next()
	}
}

// RequireAdmin rejects tokens whose role is not an admin role. Mounted
// after VerifyJWT on the admin route groups.
func (a *Authenticator) RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role := ctx.GetString(ContextKeyRole)
		if role != domain.RoleAdmin && role != domain.RoleSuperAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		ctx.Next()
	}
}

func (a *Authenticator) parse(ctx *gin.Context) (jwthelper.Claims, bool) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
		return jwthelper.Claims{}, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
		return jwthelper.Claims{}, false
	}

	claims, err := jwthelper.ParseToken(a.signingKey, parts[1])
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return jwthelper.Claims{}, false
	}

	return claims, true
}
