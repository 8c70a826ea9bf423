// Package logger wraps go.uber.org/zap with a process-wide sugared logger,
// context helpers for component-scoped naming, and level parsing shared by
// all volume-overlay binaries.
package logger
