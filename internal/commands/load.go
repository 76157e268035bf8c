package commands

import (
	"context"

	"github.com/bankview/bankview/internal/loader"
	"github.com/bankview/bankview/internal/logger"
	"github.com/bankview/bankview/internal/model"
	"github.com/bankview/bankview/internal/normalize"
)

// source selects the file to load: an explicit path wins over a format
// looked up in the configured data directory.
type source struct {
	format string
	file   string
}

func (a *app) loadTransactions(ctx context.Context, src source) ([]model.Transaction, error) {
	log := logger.FromContext(ctx)

	path := src.file
	if path == "" {
		format := src.format
		if format == "" {
			format = a.cfg.Data.Format
		}
		info, err := loader.Find(a.cfg.Data.Dir, format)
		if err != nil {
			return nil, err
		}
		path = info.Path
	}

	records, err := a.registry.LoadFile(path)
	if err != nil {
		return nil, err
	}
	log.Info().Str("file", path).Int("records", len(records)).Msg("data file loaded")

	res := normalize.Normalize(records)
	for _, d := range res.Defects {
		ev := log.Warn()
		if !d.Dropped {
			ev = log.Debug()
		}
		ev.Int("index", d.Index).Bool("dropped", d.Dropped).Msg(d.Reason)
	}
	if n := res.Dropped(); n > 0 {
		log.Warn().Int("dropped", n).Int("kept", len(res.Transactions)).Msg("skipped malformed records")
	}

	return res.Transactions, nil
}
