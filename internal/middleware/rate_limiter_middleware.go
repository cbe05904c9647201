package middleware

import (
	"time"

	"github.com/fadilmartias/job-intel/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimiter is a per-client sliding window in front of the API. It is
// unrelated to the per-user daily quotas.
func RateLimiter(max int, expiration time.Duration) fiber.Handler {
	if max == 0 {
		max = 50
	}
	if expiration == 0 {
		expiration = 1 * time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: expiration,
		LimitReached: func(c *fiber.Ctx) error {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusTooManyRequests,
				Message: "Too many requests",
				Details: fiber.Map{"kind": util.KindResourceExhausted.String()},
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
