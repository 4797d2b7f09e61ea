package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventLoginFailed        EventType = "login_failed"
	EventLoginBlocked       EventType = "login_blocked"
	EventLoginSuccess       EventType = "login_success"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventOwnershipDenied    EventType = "ownership_denied"
	EventCSRFViolation      EventType = "csrf_violation"
	EventUploadLimited      EventType = "upload_limited"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Event        EventType
	SubjectType  string // "email", "ip", "account_id"
	SubjectValue string // hashed for PII
	IP           string
	RequestID    string
	Details      map[string]any

	// filled in by Log
	Service     string
	Environment string
	Level       string
	Timestamp   time.Time
}

// PersistFunc stores an event somewhere durable, e.g. SecurityEventRepository.PersistEvent.
type PersistFunc func(ctx context.Context, event SecurityEvent) error

// SecurityLogger writes security events as structured zap entries, separate
// from the application log so they can be shipped and alerted on alone.
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
	persist     PersistFunc
}

// NewSecurityLogger builds a production zap logger writing JSON to stdout.
func NewSecurityLogger(serviceName, environment string) *SecurityLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return NewSecurityLoggerWithZap(logger, serviceName, environment)
}

// NewSecurityLoggerWithZap wraps an existing zap logger.
func NewSecurityLoggerWithZap(logger *zap.Logger, serviceName, environment string) *SecurityLogger {
	return &SecurityLogger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}
}

// WithPersistence also hands every event to persist. Persistence runs in the
// background and its failures are only logged.
func (sl *SecurityLogger) WithPersistence(persist PersistFunc) *SecurityLogger {
	sl.persist = persist
	return sl
}

// NopSecurityLogger discards every event.
func NopSecurityLogger() *SecurityLogger {
	return NewSecurityLoggerWithZap(zap.NewNop(), "", "")
}

func levelFor(event EventType) zapcore.Level {
	switch event {
	case EventLoginSuccess:
		return zapcore.InfoLevel
	case EventLoginBlocked:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// Log logs a security event
func (sl *SecurityLogger) Log(ctx context.Context, event SecurityEvent) {
	level := levelFor(event.Event)
	event.Service = sl.serviceName
	event.Environment = sl.environment
	event.Level = level.String()
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	fields := []zap.Field{
		zap.String("service", sl.serviceName),
		zap.String("env", sl.environment),
		zap.String("event", string(event.Event)),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	sl.zapLogger.Log(level, string(event.Event), fields...)

	if sl.persist != nil {
		go sl.store(context.WithoutCancel(ctx), event)
	}
}

func (sl *SecurityLogger) store(ctx context.Context, event SecurityEvent) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := sl.persist(ctx, event); err != nil {
		sl.zapLogger.Warn("failed to persist security event",
			zap.String("event", string(event.Event)),
			zap.Error(err),
		)
	}
}

// LogLoginFailed logs a failed login attempt
func (sl *SecurityLogger) LogLoginFailed(ctx context.Context, role, email, ip, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginFailed,
		SubjectType:  "email",
		SubjectValue: HashValue(email),
		IP:           ip,
		Details:      map[string]any{"role": role, "reason": reason},
	})
}

// LogLoginBlocked logs a login rejected because the subject is blocked
func (sl *SecurityLogger) LogLoginBlocked(ctx context.Context, role, email, ip string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginBlocked,
		SubjectType:  "email",
		SubjectValue: HashValue(email),
		IP:           ip,
		Details:      map[string]any{"role": role},
	})
}

// LogLoginSuccess logs a successful login
func (sl *SecurityLogger) LogLoginSuccess(ctx context.Context, role, accountID, ip string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginSuccess,
		SubjectType:  "account_id",
		SubjectValue: accountID,
		IP:           ip,
		Details:      map[string]any{"role": role},
	})
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (sl *SecurityLogger) LogRateLimitTriggered(ctx context.Context, ip, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]any{"endpoint": endpoint},
	})
}

// LogOwnershipDenied logs an authenticated caller touching a resource it does not own
func (sl *SecurityLogger) LogOwnershipDenied(ctx context.Context, accountID, resource, resourceID string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventOwnershipDenied,
		SubjectType:  "account_id",
		SubjectValue: accountID,
		Details:      map[string]any{"resource": resource, "resource_id": resourceID},
	})
}

// LogCSRFViolation logs a cookie-authenticated write without a matching CSRF token
func (sl *SecurityLogger) LogCSRFViolation(ctx context.Context, ip, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventCSRFViolation,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]any{"endpoint": endpoint},
	})
}

// LogUploadLimited logs an upload request rejected by the upload quota
func (sl *SecurityLogger) LogUploadLimited(ctx context.Context, accountID, ip string, retryAfter int) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventUploadLimited,
		SubjectType:  "account_id",
		SubjectValue: accountID,
		IP:           ip,
		Details:      map[string]any{"retry_after": retryAfter},
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// HashValue creates a SHA256 hash prefix of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}
