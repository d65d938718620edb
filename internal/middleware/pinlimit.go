package middleware

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// AccountIDKey is the Locals key the bearer middleware stores the
// authenticated account id under.
const AccountIDKey = "account_id"

// PINAttemptLimit caps re-entry PIN attempts per account per minute using
// Redis if available. The client retries freely; the budget lives here.
func PINAttemptLimit(cache *redis.Client, maxPerMin int) fiber.Handler {
	if maxPerMin <= 0 {
		maxPerMin = 5
	}
	return func(c *fiber.Ctx) error {
		if cache == nil {
			return c.Next() // no-op without Redis
		}
		accountID, _ := c.Locals(AccountIDKey).(string)
		if accountID == "" {
			accountID = c.IP()
		}
		key := "rl:pin:" + accountID
		cnt, err := cache.Incr(c.UserContext(), key).Result()
		if err == nil && cnt == 1 {
			cache.Expire(c.UserContext(), key, time.Minute)
		}
		if err != nil {
			return c.Next() // fail-open on cache errors
		}
		if cnt > int64(maxPerMin) {
			return fiber.NewError(http.StatusTooManyRequests, "too many PIN attempts, try again later")
		}
		return c.Next()
	}
}
