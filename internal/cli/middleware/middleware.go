// Package middleware wraps the RunE of lmsadmin commands with logging,
// auditing and timing.
package middleware

import (
	"github.com/spf13/cobra"
)

// RunFunc is the signature of cobra's RunE.
type RunFunc func(cmd *cobra.Command, args []string) error

// Middleware wraps a RunFunc.
type Middleware func(next RunFunc) RunFunc

// Chain composes middlewares; the first one runs outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(run RunFunc) RunFunc {
		for i := range middlewares {
			run = middlewares[len(middlewares)-1-i](run)
		}
		return run
	}
}

// Apply wraps the RunE of cmd. Commands without RunE, such as groups that
// only print their help, are left alone.
func Apply(cmd *cobra.Command, middlewares ...Middleware) {
	if cmd.RunE != nil {
		cmd.RunE = Chain(middlewares...)(cmd.RunE)
	}
}

// ApplyRecursive applies middlewares to cmd and every command below it.
func ApplyRecursive(cmd *cobra.Command, middlewares ...Middleware) {
	Apply(cmd, middlewares...)
	for _, child := range cmd.Commands() {
		ApplyRecursive(child, middlewares...)
	}
}
