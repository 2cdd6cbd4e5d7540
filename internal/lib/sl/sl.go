package sl

import (
	"log/slog"
)

func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func Module(mod string) slog.Attr {
	return slog.String("module", mod)
}

// Secret logs only the first characters of a sensitive value.
func Secret(key, value string) slog.Attr {
	if len(value) <= 4 {
		return slog.String(key, "****")
	}
	return slog.String(key, value[:4]+"****")
}
