package middlewares

import (
	"errors"
	"net/http"

	"medika-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// ErrorHandler converts panics anywhere below it into a JSON error envelope
// instead of letting chi kill the connection.
func (m *Middlewares) ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				var err error
				switch x := rec.(type) {
				case string:
					err = errors.New(x)
				case error:
					err = x
				default:
					err = errors.New("unknown error")
				}

				m.Log.Error("panic recovered while handling request",
					zap.String("endpoint", r.URL.Path),
					zap.Error(err),
				)
				utils.BuildErrorResponse(m.Log, w, err)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
