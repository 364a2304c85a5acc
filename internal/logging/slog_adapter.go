// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package logging

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// NewSlogLogger returns an slog.Logger that writes through the global zerolog
// logger. The supervisor tree hands it to sutureslog:
//
//	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), cfg)
func NewSlogLogger() *slog.Logger {
	return newSlogLogger(Logger().With().Str("component", "supervisor").Logger())
}

//nolint:gocritic // zerolog.Logger is passed by value
func newSlogLogger(logger zerolog.Logger) *slog.Logger {
	return slog.New(zerologHandler{logger: logger})
}

// zerologHandler forwards slog records to zerolog. sutureslog only emits
// flat attributes, so groups are flattened into the key.
type zerologHandler struct {
	logger zerolog.Logger
	prefix string
}

func (h zerologHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.logger.GetLevel() <= zerologLevel(level)
}

//nolint:gocritic // slog.Handler passes the record by value
func (h zerologHandler) Handle(_ context.Context, record slog.Record) error {
	event := h.logger.WithLevel(zerologLevel(record.Level))
	record.Attrs(func(attr slog.Attr) bool {
		event = appendAttr(event, h.prefix, attr)
		return true
	})
	event.Msg(record.Message)
	return nil
}

func (h zerologHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	ctx := h.logger.With()
	for _, attr := range attrs {
		attr.Value = attr.Value.Resolve()
		ctx = ctx.Interface(h.prefix+attr.Key, attrValue(attr.Value))
	}
	return zerologHandler{logger: ctx.Logger(), prefix: h.prefix}
}

func (h zerologHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return zerologHandler{logger: h.logger, prefix: h.prefix + name + "."}
}

func appendAttr(event *zerolog.Event, prefix string, attr slog.Attr) *zerolog.Event {
	v := attr.Value.Resolve()
	key := prefix + attr.Key
	switch v.Kind() {
	case slog.KindString:
		return event.Str(key, v.String())
	case slog.KindBool:
		return event.Bool(key, v.Bool())
	case slog.KindInt64:
		return event.Int64(key, v.Int64())
	case slog.KindFloat64:
		return event.Float64(key, v.Float64())
	case slog.KindDuration:
		return event.Dur(key, v.Duration())
	case slog.KindGroup:
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix = key + "."
		}
		for _, ga := range v.Group() {
			event = appendAttr(event, groupPrefix, ga)
		}
		return event
	}
	if err, ok := v.Any().(error); ok {
		return event.AnErr(key, err)
	}
	return event.Interface(key, attrValue(v))
}

func attrValue(v slog.Value) any {
	if err, ok := v.Any().(error); ok {
		return err.Error()
	}
	return v.Any()
}

// zerologLevel maps slog levels onto zerolog, rounding down between levels.
func zerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level >= slog.LevelError:
		return zerolog.ErrorLevel
	case level >= slog.LevelWarn:
		return zerolog.WarnLevel
	case level >= slog.LevelInfo:
		return zerolog.InfoLevel
	case level >= slog.LevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
