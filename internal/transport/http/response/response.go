// Package response owns the wire envelope shared by handlers and
// middleware: {statusCode, message, data?} with stable status-code
// strings, and the single place where errors are translated before
// crossing the boundary.
package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wpdmadhuranga/auth-service/internal/apierror"
)

type Envelope struct {
	StatusCode string `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

// Responder writes envelopes. Dev controls whether internal error
// details reach the client; they are always logged in full either way.
type Responder struct {
	Logger *slog.Logger
	Dev    bool
}

func NewResponder(logger *slog.Logger, dev bool) *Responder {
	return &Responder{Logger: logger, Dev: dev}
}

func (r *Responder) OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{
		StatusCode: apierror.CodeSuccess,
		Message:    message,
		Data:       data,
	})
}

func (r *Responder) Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{
		StatusCode: apierror.CodeCreated,
		Message:    message,
		Data:       data,
	})
}

// Error classifies err into the taxonomy and writes the failure
// envelope. Unclassified errors become Internal; their real message is
// returned only in dev mode.
func (r *Responder) Error(c *gin.Context, err error) {
	apiErr := apierror.From(err)

	message := apiErr.Message
	if apiErr.Kind == apierror.Internal {
		r.Logger.ErrorContext(c.Request.Context(), "internal error",
			"error", apiErr.Message,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		if !r.Dev {
			message = "Internal error"
		}
	}

	c.JSON(apiErr.Kind.HTTPStatus(), Envelope{
		StatusCode: apiErr.Kind.WireCode(),
		Message:    message,
	})
}

// AbortError is Error for middleware: it also stops the handler chain.
func (r *Responder) AbortError(c *gin.Context, err error) {
	r.Error(c, err)
	c.Abort()
}
