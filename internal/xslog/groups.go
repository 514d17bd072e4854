package xslog

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/garrettladley/shop0/internal/apperr"
	"github.com/garrettladley/shop0/internal/xcontext"
)

func RequestGroup(r *http.Request) slog.Attr {
	attrs := []slog.Attr{
		RequestMethod(r),
		RequestPath(r),
		slog.String("remote_addr", r.RemoteAddr),
	}
	if id, ok := xcontext.GetRequestID(r.Context()); ok {
		attrs = append(attrs, slog.String("id", id))
	}
	if ua := r.UserAgent(); ua != "" {
		attrs = append(attrs, slog.String("user_agent", ua))
	}
	return slog.GroupAttrs("request", attrs...)
}

func ResponseGroup(status int, duration time.Duration) slog.Attr {
	return slog.Group("response",
		HTTPStatus(status),
		Duration(duration),
	)
}

// ErrorGroup describes err; taxonomy errors also carry their kind and upstream status.
func ErrorGroup(err error) slog.Attr {
	if err == nil {
		return slog.Group("error")
	}
	attrs := []slog.Attr{slog.String("message", err.Error()), ErrorKind(err)}
	if e := apperr.As(err); e != nil && e.StatusCode != 0 {
		attrs = append(attrs, slog.Int("upstream_status", e.StatusCode))
	}
	return slog.GroupAttrs("error", attrs...)
}

// ErrorGroupWithStack describes a recovered panic value.
func ErrorGroupWithStack(recovered any) slog.Attr {
	return slog.Group("error",
		slog.Any("value", recovered),
		slog.String("type", fmt.Sprintf("%T", recovered)),
		Stack(),
	)
}
