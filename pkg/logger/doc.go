// Package logger builds *slog.Logger instances from functional options and
// injects request-scoped attributes taken from context.Context.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// result in LogHandlerDecorator, which runs every registered ContextExtractor
// before a record is written:
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("APP_ENV"), "inputguard"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "sanitized request",
//		logger.Surface("body"),
//		logger.Duration(time.Since(start)),
//	)
//
// Attribute helpers in attr.go keep key names consistent across packages.
// Error and RequestID return an empty Attr for empty input so callers can
// pass them without nil checks.
//
// Libraries in this module default to Discard so they stay silent unless a
// logger is supplied.
package logger
