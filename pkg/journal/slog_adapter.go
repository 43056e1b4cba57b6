package journal

import (
	"context"
	"log/slog"
)

// SlogAdapter writes journal events to an slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger. Applied edits are logged at
// Debug level, rejected ones at Warn.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("op", event.Op.String()),
		slog.String("category", event.Category.String()),
	}

	if event.Target != "" {
		attrs = append(attrs, slog.String("target", event.Target))
	}
	if event.IED != "" {
		attrs = append(attrs, slog.String("ied", event.IED))
	}

	switch {
	case event.DAI != nil:
		attrs = append(attrs,
			slog.String("ln", event.DAI.LN),
			slog.String("do", event.DAI.DO),
			slog.String("da", event.DAI.DA),
			slog.Int("values", len(event.DAI.New)),
		)
		if event.DAI.Created > 0 {
			attrs = append(attrs, slog.Int("created", event.DAI.Created))
		}
	case event.ExtRef != nil:
		attrs = append(attrs,
			slog.String("ld", event.ExtRef.LDInst),
			slog.String("ln", event.ExtRef.LN),
			slog.Int("created", event.ExtRef.Created),
			slog.Int("updated", event.ExtRef.Updated),
		)
	case event.Import != nil:
		attrs = append(attrs,
			slog.String("source", event.Import.Source),
			slog.Int("types_added", event.Import.TypesAdded),
			slog.Int("types_renamed", len(event.Import.Renamed)),
		)
	case event.Structure != nil:
		attrs = append(attrs, slog.String("element", event.Structure.Element))
		if event.Structure.Name != "" {
			attrs = append(attrs, slog.String("name", event.Structure.Name))
		}
	case event.Error != nil:
		attrs = append(attrs, slog.String("error", event.Error.Message))
		if event.Error.Kind != "" {
			attrs = append(attrs, slog.String("error_kind", event.Error.Kind))
		}
	}

	level := slog.LevelDebug
	if event.Category == CategoryRejected {
		level = slog.LevelWarn
	}
	a.logger.LogAttrs(context.Background(), level, "edit", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
