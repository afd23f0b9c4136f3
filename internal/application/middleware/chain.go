package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/garyjia/approval-chain/internal/application/dispatcher"
	"github.com/garyjia/approval-chain/internal/domain/chain"
)

// ErrUnknownHandler is returned by Build for a name it does not recognize
var ErrUnknownHandler = errors.New("unknown middleware handler")

// DefaultOrder is the standard middleware order. Authentication runs before
// the cache so cached responses are never served to unauthenticated callers.
func DefaultOrder() []string {
	return []string{NameLogging, NameAuthentication, NameCache, NameCompression}
}

// Deps holds what the built-in handlers need
type Deps struct {
	AuthToken string
	Logger    Logger
}

// Policy returns the intercept-or-forward policy used by middleware chains
func Policy() dispatcher.Policy[Response] {
	return dispatcher.InterceptOrForward(DefaultResponse())
}

// Build assembles a chain from handler names in the given order.
// Order is significant and is the caller's policy choice.
func Build(order []string, deps Deps) (*chain.Chain[Request, Response], error) {
	c := chain.New[Request, Response]()
	seen := make(map[string]bool, len(order))

	for _, raw := range order {
		name := strings.ToLower(strings.TrimSpace(raw))
		if seen[name] {
			return nil, fmt.Errorf("%w: %s", chain.ErrDuplicateHandler, name)
		}
		seen[name] = true

		var h chain.Handler[Request, Response]
		switch name {
		case NameLogging:
			h = Logging(deps.Logger)
		case NameAuthentication:
			h = Authentication(deps.AuthToken)
		case NameCache:
			h = Cache()
		case NameCompression:
			h = Compression(deps.Logger)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownHandler, raw)
		}
		c.MustAttach(h)
	}

	return c, nil
}

// NewDispatcher builds a middleware chain and binds it to the middleware policy
func NewDispatcher(order []string, deps Deps, opts ...dispatcher.Option) (*dispatcher.Dispatcher[Request, Response], error) {
	c, err := Build(order, deps)
	if err != nil {
		return nil, err
	}
	return dispatcher.New(c, Policy(), opts...)
}
