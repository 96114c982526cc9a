package middleware

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logging creates middleware that logs every inbound update
func Logging(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()

			err := next(c)

			fields := []zap.Field{
				zap.Int64("user_id", c.Sender().ID),
				zap.Duration("took", time.Since(start)),
			}
			if cb := c.Callback(); cb != nil {
				fields = append(fields, zap.String("callback", cb.Unique))
			} else {
				fields = append(fields, zap.String("text", c.Text()))
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
				logger.Error("Update failed", fields...)
				return err
			}

			logger.Info("Update handled", fields...)
			return nil
		}
	}
}

// Recover creates middleware that turns a handler panic into a logged
// error instead of killing the poller goroutine
func Recover(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Handler panic",
						zap.Any("panic", r),
						zap.Int64("user_id", c.Sender().ID),
					)
				}
			}()
			return next(c)
		}
	}
}
