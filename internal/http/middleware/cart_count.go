package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const cartCountKey = "cart_count"

// CartCounter reports the number of units in a session's cart.
type CartCounter interface {
	ItemCount(ctx context.Context, key string) int
}

// CartCount exposes the signed-in user's cart size to every page.
func CartCount(carts CartCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		n := 0
		if id := SessionID(c); id != "" {
			n = carts.ItemCount(c.Request.Context(), id)
		}
		c.Set(cartCountKey, n)
		c.Next()
	}
}

func GetCartCount(c *gin.Context) int {
	v, ok := c.Get(cartCountKey)
	if !ok {
		return 0
	}
	n, _ := v.(int)
	return n
}
