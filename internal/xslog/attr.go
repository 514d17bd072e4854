package xslog

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/garrettladley/shop0/internal/apperr"
	"github.com/garrettladley/shop0/internal/version"
)

const (
	keyError = "error"
)

func Error(err error) slog.Attr {
	return slog.String(keyError, err.Error())
}

// ErrorKind is the taxonomy kind of err, or "unknown" for foreign errors.
func ErrorKind(err error) slog.Attr {
	const kindKey = "error_kind"
	if e := apperr.As(err); e != nil {
		return slog.String(kindKey, e.Kind.String())
	}
	return slog.String(kindKey, "unknown")
}

func RequestID(requestID string) slog.Attr {
	const requestIDKey = "request_id"
	return slog.String(requestIDKey, requestID)
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func RequestMethod(r *http.Request) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, r.Method)
}

func RequestPath(r *http.Request) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, r.URL.Path)
}

func Path(path string) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, path)
}

func Version() slog.Attr {
	const versionKey = "version"
	return slog.String(versionKey, version.Get())
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}

func Topic(topic string) slog.Attr {
	const topicKey = "topic"
	return slog.String(topicKey, topic)
}

func Shop(shop string) slog.Attr {
	const shopKey = "shop"
	return slog.String(shopKey, shop)
}

func Attempt(attempt, tries int) slog.Attr {
	return slog.Group("attempt",
		slog.Int("n", attempt),
		slog.Int("of", tries),
	)
}

func Wait(d time.Duration) slog.Attr {
	const waitKey = "wait"
	return slog.Duration(waitKey, d)
}

func Deprecation(message, path string) slog.Attr {
	return slog.Group("deprecation",
		slog.String("message", message),
		slog.String("path", path),
	)
}
