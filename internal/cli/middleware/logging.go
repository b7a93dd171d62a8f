package middleware

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"lmsadmin/internal/logger"
)

// LoggingOptions configures the logging middleware. The resolvers run
// when the command runs, after flags are parsed.
type LoggingOptions struct {
	Logger       func() *logger.Logger      // nil, or a nil result, discards
	Audit        func() *logger.AuditLogger // optional
	SkipCommands []string                   // command names run unwrapped
}

func (o LoggingOptions) resolve() (*logger.Logger, *logger.AuditLogger) {
	log := logger.Discard()
	if o.Logger != nil {
		if l := o.Logger(); l != nil {
			log = l
		}
	}
	var audit *logger.AuditLogger
	if o.Audit != nil {
		audit = o.Audit()
	}
	return log, audit
}

// Logging logs the start, end and duration of each command and stores
// the command context, logger and audit trail in the command's context.
func Logging(opts LoggingOptions) Middleware {
	return func(next RunFunc) RunFunc {
		return func(cmd *cobra.Command, args []string) error {
			if slices.Contains(opts.SkipCommands, cmd.Name()) {
				return next(cmd, args)
			}

			log, audit := opts.resolve()
			cc := logger.NewCommandContext(cmd, args)
			log = log.WithCommand(cc)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logger.WithAudit(logger.WithLogger(logger.WithCommandContext(ctx, cc), log), audit))

			log.Debug("command started", "args", args, "user", cc.User)
			err := next(cmd, args)

			elapsed := time.Since(cc.Timestamp).Milliseconds()
			if err != nil {
				log.Error("command failed", "duration_ms", elapsed, "error", err.Error())
				return err
			}
			log.Debug("command completed", "duration_ms", elapsed)
			return nil
		}
	}
}

// Timing prints how long the command took when *verbose is set at run
// time.
func Timing(verbose *bool) Middleware {
	return func(next RunFunc) RunFunc {
		return func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			defer func() {
				if verbose != nil && *verbose {
					fmt.Fprintf(cmd.ErrOrStderr(), "\nCompleted in %s\n", time.Since(start).Round(time.Millisecond))
				}
			}()
			return next(cmd, args)
		}
	}
}
