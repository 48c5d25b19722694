package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with the service's structured helpers
type Logger struct {
	*slog.Logger
}

// Options selects level, encoding and destination
type Options struct {
	Level  string    // debug, info, warn, error
	Format string    // text or json; empty picks text in gin debug mode
	Output io.Writer // defaults to stdout
}

// New creates a logger from LOG_LEVEL and LOG_FORMAT
func New() *Logger {
	return NewWithOptions(Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})
}

// NewWithOptions builds a logger without reading the environment
func NewWithOptions(opts Options) *Logger {
	level := parseLevel(opts.Level)
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	format := strings.ToLower(opts.Format)
	if format == "" && gin.Mode() == gin.DebugMode {
		format = "text"
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}
	return &Logger{Logger: slog.New(handler)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent tags every record with the emitting component
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("component", component)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// Printf satisfies gorm's logger.Writer so SQL traces land in the same stream
func (l *Logger) Printf(format string, args ...interface{}) {
	l.Logger.Info(fmt.Sprintf(format, args...), slog.String("component", "gorm"))
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// Seat inventory logging methods

// LogHoldGranted logs a successful hold or hold extension
func (l *Logger) LogHoldGranted(ctx context.Context, eventID, holderToken string, seatIDs []string, expiresAt time.Time) {
	l.Logger.InfoContext(ctx,
		"Seat Hold Granted",
		slog.String("event_id", eventID),
		slog.String("holder_token", holderToken),
		slog.Any("seat_ids", seatIDs),
		slog.Time("expires_at", expiresAt),
	)
}

// LogHoldRejected logs a hold that lost against another holder
func (l *Logger) LogHoldRejected(ctx context.Context, eventID, holderToken string, conflicting []string) {
	l.Logger.WarnContext(ctx,
		"Seat Hold Rejected",
		slog.String("event_id", eventID),
		slog.String("holder_token", holderToken),
		slog.Any("conflicting_seats", conflicting),
	)
}

// LogHoldsReaped logs one expiry sweep
func (l *Logger) LogHoldsReaped(ctx context.Context, released int, duration time.Duration) {
	l.Logger.InfoContext(ctx,
		"Expired Holds Reaped",
		slog.Int("released", released),
		slog.Duration("duration", duration),
	)
}

// Order logging methods

// LogOrderCommitted logs when a hold is committed into an order
func (l *Logger) LogOrderCommitted(ctx context.Context, orderID, eventID, userID string, seats int) {
	l.Logger.InfoContext(ctx,
		"Order Committed",
		slog.String("order_id", orderID),
		slog.String("event_id", eventID),
		slog.String("user_id", userID),
		slog.Int("seats", seats),
	)
}

// LogOrderCancelled logs when an order is cancelled
func (l *Logger) LogOrderCancelled(ctx context.Context, orderID, eventID string, releasedSeats int) {
	l.Logger.InfoContext(ctx,
		"Order Cancelled",
		slog.String("order_id", orderID),
		slog.String("event_id", eventID),
		slog.Int("released_seats", releasedSeats),
	)
}

// LogTicketCheckIn logs a check-in attempt and its outcome
func (l *Logger) LogTicketCheckIn(ctx context.Context, ticketID, outcome string) {
	l.Logger.InfoContext(ctx,
		"Ticket Check-in",
		slog.String("ticket_id", ticketID),
		slog.String("outcome", outcome),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// Helper methods for common patterns

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.InfoContext(ctx, msg, args...)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
