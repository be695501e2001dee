package gosaxlex

import "log/slog"

// Option configures a Lexer.
type Option func(*lexerConfig)

type lexerConfig struct {
	skipWhitespaceOnlyText bool
	logger                 *slog.Logger
}

// WithSkipWhitespaceOnlyText makes the Lexer drop text tokens
// that consist of whitespace only.
func WithSkipWhitespaceOnlyText(skip bool) Option {
	return func(c *lexerConfig) {
		c.skipWhitespaceOnlyText = skip
	}
}

// WithLogger sets the logger receiving debug records about
// malformed input. Nothing is logged by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *lexerConfig) {
		c.logger = logger
	}
}

// EncoderOption configures an Encoder.
type EncoderOption func(*encoderConfig)

type encoderConfig struct {
	wellFormed       bool
	version          Version
	noDoubleEncoding bool
}

// WithWellFormed makes the Encoder reject tokens that would not
// serialize to well-formed XML of the given version.
func WithWellFormed(version Version) EncoderOption {
	return func(c *encoderConfig) {
		c.wellFormed = true
		c.version = version
	}
}

// WithNoDoubleEncoding keeps '&' characters that already start
// an entity or character reference when escaping text and attribute values.
func WithNoDoubleEncoding(noDoubleEncoding bool) EncoderOption {
	return func(c *encoderConfig) {
		c.noDoubleEncoding = noDoubleEncoding
	}
}
