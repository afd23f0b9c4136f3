// Package middleware wraps cross-cutting request concerns in an intercept-or-forward chain.
package middleware

import (
	"net/http"
	"net/textproto"

	"github.com/garyjia/approval-chain/internal/domain/chain"
)

// Header names read by the built-in handlers
const (
	HeaderAuthorization  = "Authorization"
	HeaderCache          = "Cache"
	HeaderAcceptEncoding = "Accept-Encoding"
)

// Response bodies produced by the built-in handlers
const (
	DefaultBody          = "Requisição processada com sucesso."
	AuthenticationFailed = "Autenticação falhou!"
	CacheHitBody         = "Cache encontrado, retornando resposta."
)

// Request is the work item of a middleware chain. Handlers only read it.
type Request struct {
	Headers map[string]string
	Body    string
}

// Header returns the value of a header. Names are compared in canonical
// MIME form, so "accept-encoding" matches "Accept-Encoding".
func (r Request) Header(name string) string {
	if v, ok := r.Headers[name]; ok {
		return v
	}
	canonical := textproto.CanonicalMIMEHeaderKey(name)
	for k, v := range r.Headers {
		if textproto.CanonicalMIMEHeaderKey(k) == canonical {
			return v
		}
	}
	return ""
}

// Response is the result of a resolved middleware dispatch
type Response struct {
	Status int
	Body   string
}

// DefaultResponse is returned when every handler forwards
func DefaultResponse() Response {
	return Response{Status: http.StatusOK, Body: DefaultBody}
}

// rejectionStatus maps rejection reasons to response statuses
var rejectionStatus = map[string]int{
	AuthenticationFailed: http.StatusUnauthorized,
}

// ResponseFor converts a terminal outcome to the response sent to the caller.
// Rejections with an unknown reason become 500.
func ResponseFor(outcome chain.Outcome[Response]) Response {
	if resp, ok := outcome.Result(); ok {
		return resp
	}
	if !outcome.IsRejected() {
		return DefaultResponse()
	}
	status, ok := rejectionStatus[outcome.Reason()]
	if !ok {
		status = http.StatusInternalServerError
	}
	return Response{Status: status, Body: outcome.Reason()}
}
