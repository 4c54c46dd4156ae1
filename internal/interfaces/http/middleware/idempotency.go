package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/erp/obligations/internal/domain/shared"
	"github.com/erp/obligations/internal/infrastructure/logger"
	"github.com/erp/obligations/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the client supplied key of a retryable command
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotentReplayHeader is set on responses short-circuited by a known key
	IdempotentReplayHeader = "Idempotent-Replayed"
	// maxIdempotencyKeyLength bounds keys stored in the idempotency store
	maxIdempotencyKeyLength = 255
)

// inFlightTTL bounds how long a crashed request can keep its key claimed
const inFlightTTL = time.Minute

// Idempotency acknowledges a replayed command without running it again.
//
// A request whose key was already recorded as succeeded gets 204 directly.
// Otherwise the key is claimed for the duration of the handler; a concurrent
// request with the same key gets 409 instead of running the write-back twice.
// A 2xx outcome records the key for ttl. Failed requests only release the
// claim, so the client may retry them. Store errors are logged and the
// request proceeds unguarded.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			HandleBadRequest(c, "Idempotency-Key must be at most 255 characters")
			return
		}

		ctx := logger.WithIdempotencyKey(c.Request.Context(), key)
		c.Request = c.Request.WithContext(ctx)

		// Keys are scoped to the route and target so one key cannot settle two dues
		doneKey := c.Request.Method + " " + c.Request.URL.Path + " " + key
		claimKey := doneKey + " in-flight"

		replayed := func() bool {
			done, err := store.IsProcessed(ctx, doneKey)
			if err != nil {
				logger.L(ctx).Warn("idempotency lookup failed, processing request", zap.Error(err))
				return false
			}
			if done {
				logger.L(ctx).Info("idempotent replay acknowledged")
				c.Header(IdempotentReplayHeader, "true")
				c.AbortWithStatus(http.StatusNoContent)
			}
			return done
		}

		if replayed() {
			return
		}

		claimed, err := store.MarkProcessed(ctx, claimKey, min(inFlightTTL, ttl))
		switch {
		case err != nil:
			logger.L(ctx).Warn("idempotency claim failed, processing request", zap.Error(err))
			c.Next()
			record(c, store, doneKey, ttl)
			return
		case !claimed:
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeConflict,
				"A request with this Idempotency-Key is still in progress",
				GetRequestID(c),
			))
			return
		}
		defer func() {
			if err := store.Release(context.WithoutCancel(ctx), claimKey); err != nil {
				logger.L(ctx).Warn("failed to release idempotency claim", zap.Error(err))
			}
		}()

		// the previous holder may have finished between the lookup and the claim
		if replayed() {
			return
		}

		c.Next()
		record(c, store, doneKey, ttl)
	}
}

// record marks doneKey after a 2xx response
func record(c *gin.Context, store shared.IdempotencyStore, doneKey string, ttl time.Duration) {
	if status := c.Writer.Status(); status < http.StatusOK || status >= http.StatusMultipleChoices {
		return
	}
	ctx := c.Request.Context()
	if _, err := store.MarkProcessed(context.WithoutCancel(ctx), doneKey, ttl); err != nil {
		logger.L(ctx).Warn("failed to record idempotency key", zap.Error(err))
	}
}
