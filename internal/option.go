package internal

import "github.com/PzNot2ndPlace/hints-service/internal/synthesizer"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config     *Config
	configPath string
	rewriter   synthesizer.Rewriter
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithConfigPath sets the path of the loaded config file so that the
// reload watcher can pick up heuristic changes. Empty disables the
// watcher.
func WithConfigPath(path string) Option {
	return func(a *application) {
		a.configPath = path
	}
}

// WithRewriter overrides the hint rewriter, bypassing the rewrite
// config. Used by tests to inject a stub collaborator.
func WithRewriter(rw synthesizer.Rewriter) Option {
	return func(a *application) {
		a.rewriter = rw
	}
}
