package corrector

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"spellchecker/internal/channel"
	"spellchecker/internal/corpus"
	"spellchecker/internal/customdict"
	"spellchecker/internal/langmodel"
)

var ErrNoCorpus = errors.New("no corpus configured")

// NewFromConfig builds the language model from the configured corpora and
// attaches error tables: from ErrorTablesPath when set, otherwise from Redis
// when rdb is not nil. rdb also backs the custom dictionary.
func NewFromConfig(ctx context.Context, cfg Config, rdb redis.Cmdable) (*SpellChecker, error) {
	if len(cfg.CorpusPaths) == 0 {
		return nil, ErrNoCorpus
	}
	text, err := corpus.LoadAll(cfg.CorpusPaths...)
	if err != nil {
		return nil, err
	}
	lm := langmodel.New(cfg.ModelOptions()...)
	lm.Build(text)
	log.Printf("[spellcheck] built %d-gram model: %d tokens, %d types, %d ngrams",
		lm.WindowSize(), lm.TotalTokenCount(), lm.Vocabulary().Len(), len(lm.NgramCounts()))

	sc := New(cfg, lm)
	switch {
	case cfg.ErrorTablesPath != "":
		tables, err := channel.LoadTables(cfg.ErrorTablesPath)
		if err != nil {
			return nil, fmt.Errorf("error tables: %w", err)
		}
		sc.SetErrorTables(tables)
	case rdb != nil:
		tables, err := channel.LoadRedisTables(ctx, rdb, cfg.Redis.TablesPrefix)
		if err != nil {
			log.Printf("[spellcheck] warning: error tables unavailable, scoring without them: %v", err)
		} else {
			sc.SetErrorTables(tables)
		}
	}

	if rdb != nil {
		dict := customdict.NewWithKey(rdb, cfg.Redis.CustomDictKey)
		if err := sc.UseCustomDict(ctx, dict); err != nil {
			log.Printf("[spellcheck] warning: %v", err)
		}
	}
	return sc, nil
}
