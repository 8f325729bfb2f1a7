// Package httpserver runs an http.Handler with configured timeouts and
// graceful shutdown.
//
// Run blocks until the context is cancelled or SIGINT/SIGTERM arrives, then
// calls Shutdown with the configured deadline. Construction goes through New
// with Option values, or NewFromConfig with a Config parsed from HTTP_*
// environment variables by pkg/config.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
