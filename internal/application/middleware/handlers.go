package middleware

import (
	"net/http"
	"strings"

	"github.com/garyjia/approval-chain/internal/domain/chain"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Handler names accepted by Build
const (
	NameLogging        = "logging"
	NameAuthentication = "authentication"
	NameCache          = "cache"
	NameCompression    = "compression"
)

// Logging records every request and forwards it
func Logging(logger Logger) chain.Handler[Request, Response] {
	return chain.NewHandler("LoggingHandler", chain.Always[Request], func(r Request) chain.Outcome[Response] {
		if logger != nil {
			logger.Info("Request received",
				"header_count", len(r.Headers),
				"body_length", len(r.Body),
			)
		}
		return chain.Delegate[Response]()
	})
}

// Authentication rejects requests whose Authorization header is not token
func Authentication(token string) chain.Handler[Request, Response] {
	authorized := func(r Request) bool {
		return token != "" && r.Header(HeaderAuthorization) == token
	}
	return chain.NewHandler("AuthenticationHandler", authorized, func(r Request) chain.Outcome[Response] {
		if !authorized(r) {
			return chain.Rejected[Response](AuthenticationFailed)
		}
		return chain.Delegate[Response]()
	})
}

// Cache answers requests marked as a cache hit
func Cache() chain.Handler[Request, Response] {
	hit := func(r Request) bool {
		return r.Header(HeaderCache) == "hit"
	}
	return chain.NewHandler("CacheHandler", hit, func(r Request) chain.Outcome[Response] {
		if hit(r) {
			return chain.Resolved(Response{Status: http.StatusOK, Body: CacheHitBody})
		}
		return chain.Delegate[Response]()
	})
}

// Compression negotiates the response encoding and forwards the request
func Compression(logger Logger) chain.Handler[Request, Response] {
	return chain.NewHandler("CompressionHandler", chain.Always[Request], func(r Request) chain.Outcome[Response] {
		if logger != nil {
			logger.Info("Compression negotiated",
				"encoding", NegotiateEncoding(r.Header(HeaderAcceptEncoding)),
			)
		}
		return chain.Delegate[Response]()
	})
}

// NegotiateEncoding picks gzip when the client accepts it, identity otherwise
func NegotiateEncoding(acceptEncoding string) string {
	for _, part := range strings.Split(acceptEncoding, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(coding), "gzip") {
			continue
		}
		if strings.ReplaceAll(strings.TrimSpace(params), " ", "") == "q=0" {
			continue
		}
		return "gzip"
	}
	return "identity"
}
