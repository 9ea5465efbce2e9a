package logging

import "context"

type contextKey string

const (
	profileKey contextKey = "profile"
	commandKey contextKey = "command"
)

// WithProfile adds the storage profile to the context.
func WithProfile(ctx context.Context, profile string) context.Context {
	return context.WithValue(ctx, profileKey, profile)
}

// WithCommand adds the CLI command name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// GetProfile retrieves the storage profile from the context.
// Returns empty string if not present.
func GetProfile(ctx context.Context) string {
	if p, ok := ctx.Value(profileKey).(string); ok {
		return p
	}
	return ""
}

// GetCommand retrieves the CLI command name from the context.
// Returns empty string if not present.
func GetCommand(ctx context.Context) string {
	if c, ok := ctx.Value(commandKey).(string); ok {
		return c
	}
	return ""
}
