package middleware

import "github.com/gin-gonic/gin"

// Actor roles carried in JWT claims.
const (
	RoleClient = "client"
	RoleWalker = "walker"
	RoleAdmin  = "admin"
)

const identityKey = "identity"

// Identity is the authenticated actor for a request. It is the single
// session-context object handlers and services receive; nothing re-derives
// the current actor from globals.
type Identity struct {
	ID   string
	Role string
}

// SetIdentity stores the authenticated identity on the request context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the authenticated identity for the request, if any.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
