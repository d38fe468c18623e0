package app

import (
	"github.com/agentstation/biorefs/pkg/sequences"
)

func (a *App) logParsedFile(file sequences.ReferenceFile, records []*sequences.Record) {
	a.logger.Debug().
		Str("path", file.Path).
		Str("format", file.Format.String()).
		Int("records", len(records)).
		Msg("Read reference file")
}
