package mid

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/wachdienst/dienstplan/business/sdk/web"
	"github.com/wachdienst/dienstplan/foundation/logger"
)

// Logger writes information about the request to the logs.
func Logger(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			now := time.Now()

			p := r.URL.Path
			if r.URL.RawQuery != "" {
				p = fmt.Sprintf("%s?%s", p, r.URL.RawQuery)
			}

			log.Info(ctx, "request started", "method", r.Method, "path", p, "remoteaddr", r.RemoteAddr)

			resp := next(ctx, r)

			var statusCode = errToStatus(resp)

			log.Info(ctx, "request completed", "method", r.Method, "path", p, "remoteaddr", r.RemoteAddr,
				"statuscode", statusCode, "since", time.Since(now).String())

			return resp
		}

		return h
	}

	return m
}

func errToStatus(e web.Encoder) int {
	if e == nil {
		return http.StatusOK
	}

	if v, ok := e.(interface{ HTTPStatus() int }); ok {
		return v.HTTPStatus()
	}

	if _, ok := e.(error); ok {
		return http.StatusInternalServerError
	}

	return http.StatusOK
}
