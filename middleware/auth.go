package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"pawroute/config"
	userRepo "pawroute/database/repository/user"
	walkerRepo "pawroute/database/repository/walker"
	"pawroute/utils"

	"github.com/gin-gonic/gin"
)

// authTokenKey is the Redis key holding the allowlisted token hash for an
// actor. Logging in overwrites it; revoking deletes it; any token whose
// hash no longer matches is treated as revoked.
func authTokenKey(role, id string) string {
	return "authToken:" + role + ":" + id
}

// AllowToken records the token hash for an actor in the auth cache.
func AllowToken(ctx context.Context, role, id, token string) error {
	return utils.GetAuthCacheClient().Set(ctx, authTokenKey(role, id), utils.HashToken(token), 0).Err()
}

// RevokeToken drops the actor's allowlisted token hash.
func RevokeToken(ctx context.Context, role, id string) error {
	return utils.GetAuthCacheClient().Del(ctx, authTokenKey(role, id)).Err()
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "Insufficient authorization",
		"code":  0,
	})
}

// authenticate validates the bearer token, checks the role claim and the
// revocation allowlist, and returns the actor identity.
func authenticate(c *gin.Context, wantRole string) (Identity, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		abortUnauthorized(c)
		return Identity{}, false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		abortUnauthorized(c)
		return Identity{}, false
	}

	subject, role, err := utils.ExtractIdentityFromToken(tokenString)
	if err != nil || subject == "" || role != wantRole {
		abortUnauthorized(c)
		return Identity{}, false
	}

	stored, err := utils.GetAuthCacheClient().Get(c.Request.Context(), authTokenKey(role, subject)).Result()
	if err != nil || stored != utils.HashToken(tokenString) {
		abortUnauthorized(c)
		return Identity{}, false
	}

	return Identity{ID: subject, Role: role}, true
}

// JWTAuthClientMiddleware authenticates a client (dog owner) request and
// rejects suspended accounts.
func JWTAuthClientMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := authenticate(c, RoleClient)
		if !ok {
			return
		}
		user, err := repo.GetByID(c.Request.Context(), id.ID)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		if user.Suspended {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account suspended"})
			return
		}
		SetIdentity(c, id)
		c.Next()
	}
}

// JWTAuthWalkerMiddleware authenticates a walker request and rejects
// suspended accounts.
func JWTAuthWalkerMiddleware(repo walkerRepo.WalkerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := authenticate(c, RoleWalker)
		if !ok {
			return
		}
		walker, err := repo.GetByID(c.Request.Context(), id.ID)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		if walker.Suspended {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account suspended"})
			return
		}
		SetIdentity(c, id)
		c.Next()
	}
}

// JWTAuthAnyMiddleware authenticates either a client or a walker, based
// on the token's role claim. Used on read endpoints both parties share.
func JWTAuthAnyMiddleware(users userRepo.UserRepository, walkers walkerRepo.WalkerRepository) gin.HandlerFunc {
	clientAuth := JWTAuthClientMiddleware(users)
	walkerAuth := JWTAuthWalkerMiddleware(walkers)
	return func(c *gin.Context) {
		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		_, role, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		switch role {
		case RoleClient:
			clientAuth(c)
		case RoleWalker:
			walkerAuth(c)
		default:
			abortUnauthorized(c)
		}
	}
}

// JWTAuthAdminMiddleware authenticates an admin request against the
// configured admin API key. Admin access is operator-provisioned, not
// account-backed, so there is no allowlist entry behind it.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := config.AppConfig.AdminAPIKey
		authHeader := c.GetHeader("Authorization")
		if key == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c)
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(key)) != 1 {
			abortUnauthorized(c)
			return
		}
		SetIdentity(c, Identity{ID: "admin", Role: RoleAdmin})
		c.Next()
	}
}
