package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// RateLimiter limita peticiones por actor usando Redis (ventana deslizante
// sobre un ZSET). Estado fuera del proceso: nada de mapas globales en memoria.
type RateLimiter struct {
	redis       *redis.Client
	maxRequests int
	window      time.Duration
	log         *logger.Logger
}

// NewRateLimiter construye el limitador.
func NewRateLimiter(redisClient *redis.Client, maxRequests int, window time.Duration, log *logger.Logger) *RateLimiter {
	return &RateLimiter{redis: redisClient, maxRequests: maxRequests, window: window, log: log}
}

// Middleware devuelve el middleware Fiber. Si Redis falla, la petición pasa
// (fail-open): el límite es protección, no disponibilidad.
func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := c.IP()
		if actorID := GetActorID(c); actorID != "" {
			identifier = "actor:" + actorID
		}

		allowed, err := rl.checkLimit(c, identifier)
		if err != nil {
			rl.log.Warn().Err(err).Str("identifier", identifier).Msg("rate limiter no disponible, dejando pasar")
			return c.Next()
		}
		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: fmt.Sprintf("demasiadas peticiones, reintente en %v", rl.window.Round(time.Second)),
			})
		}
		return c.Next()
	}
}

// checkLimit ventana deslizante: descarta marcas viejas, cuenta las vigentes
// y registra la actual, todo en un pipeline.
func (rl *RateLimiter) checkLimit(c *fiber.Ctx, identifier string) (bool, error) {
	ctx := c.UserContext()
	key := "ratelimit:" + identifier
	now := time.Now()
	windowStart := now.Add(-rl.window)

	pipe := rl.redis.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	pipe.Expire(ctx, key, rl.window+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return countCmd.Val() < int64(rl.maxRequests), nil
}
