package walker

import (
	"context"
	"fmt"

	"github.com/erraggy/asyncapitools/parser"
)

// WithFilePath specifies a file path to parse and walk.
func WithFilePath(path string) Option {
	return func(w *Walker) {
		w.filePath = &path
	}
}

// WithParsed specifies a pre-parsed result to walk.
func WithParsed(result *parser.ParseResult) Option {
	return func(w *Walker) {
		w.parsed = result
	}
}

// WithMaxSchemaDepth sets the maximum schema recursion depth.
// If depth is not positive, it is silently ignored and the default (100) is kept.
func WithMaxSchemaDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
		// If depth <= 0, keep the default (100)
	}
}

// WithUserContext sets the context for cancellation and deadline propagation.
// The context is available to handlers via wc.Context().
func WithUserContext(ctx context.Context) Option {
	return func(w *Walker) {
		w.userCtx = ctx
	}
}

// WithRefTracking enables tracking of $ref values during traversal.
// When enabled, the walker inspects every reference-bearing location,
// including $refs inside raw-map schema keywords such as items.
func WithRefTracking() Option {
	return func(w *Walker) {
		w.trackRefs = true
	}
}

// WithRefHandler sets a handler called when a $ref is encountered.
// Implicitly enables ref tracking.
func WithRefHandler(fn RefHandler) Option {
	return func(w *Walker) {
		w.trackRefs = true
		w.onRef = fn
	}
}

// WalkWithOptions walks a document using functional options for input, handlers, and configuration.
// All options use the unified Option type - no adapter is needed.
//
// Example:
//
//	walker.WalkWithOptions(
//	    walker.WithFilePath("asyncapi.yaml"),
//	    walker.WithMessageHandler(func(wc *walker.WalkContext, msg *parser.Message) walker.Action {
//	        fmt.Println(wc.JSONPath)
//	        return walker.Continue
//	    }),
//	)
func WalkWithOptions(opts ...Option) error {
	w := New()
	for _, opt := range opts {
		opt(w)
	}

	// Validate input
	if w.parsed == nil && w.filePath == nil {
		return fmt.Errorf("walker: no input source specified: use WithFilePath or WithParsed")
	}
	if w.parsed != nil && w.filePath != nil {
		return fmt.Errorf("walker: multiple input sources specified: use only one")
	}

	// Get or create ParseResult
	var result *parser.ParseResult
	if w.parsed != nil {
		result = w.parsed
	} else {
		p := parser.New()
		var err error
		result, err = p.Parse(*w.filePath)
		if err != nil {
			return fmt.Errorf("walker: failed to parse: %w", err)
		}
	}

	return w.walk(result)
}
