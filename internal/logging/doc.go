// Package logging builds the zerolog loggers used across cafetable.
//
// A logger is created once per command invocation from a Config and carried
// in the context. Every invocation gets a ULID trace ID that is stamped on
// events logged with .Ctx(ctx).
package logging
