package corrector

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spellchecker/internal/channel"
	"spellchecker/internal/langmodel"
	"spellchecker/pkg/options"
)

const testCorpus = "spelling is hard but spelling matters . the cat sat on the mat , the cat ate a rat . spewing"

func newChecker(t *testing.T, cfg Config) *SpellChecker {
	t.Helper()
	lm := langmodel.New(options.WithWindowSize(2))
	lm.Build(testCorpus)
	sc := New(cfg, lm)
	tables, err := channel.DecodeTables(strings.NewReader("deletion:\n  ll: 1\n"))
	require.NoError(t, err)
	sc.SetErrorTables(tables)
	return sc
}

func TestSpellCheckSingleEdit(t *testing.T) {
	sc := newChecker(t, DefaultConfig())
	got, err := sc.SpellCheck("speling", 0.95, false)
	require.NoError(t, err)
	assert.Equal(t, "spelling", got)
}

func TestSpellCheckKnownTextUnchanged(t *testing.T) {
	sc := newChecker(t, DefaultConfig())
	got, err := sc.SpellCheck("the cat sat, on the mat. 42", 0.95, false)
	require.NoError(t, err)
	assert.Equal(t, "the cat sat , on the mat . 42", got)
}

func TestSpellCheckNoLanguageModel(t *testing.T) {
	sc := New(DefaultConfig(), nil)

	_, err := sc.SpellCheck("anything", 0.95, false)
	assert.ErrorIs(t, err, ErrNoLanguageModel)
	_, err = sc.EvaluateText("anything")
	assert.ErrorIs(t, err, ErrNoLanguageModel)
	_, err = sc.Suggest("anything", 0.95, 3)
	assert.ErrorIs(t, err, ErrNoLanguageModel)
}

func TestCorrectTextTiers(t *testing.T) {
	sc := newChecker(t, DefaultConfig())
	res, err := sc.CorrectText("speling spling zzzzzzzz cat", 0.95, false)
	require.NoError(t, err)
	require.Len(t, res.Tokens, 4)

	assert.Equal(t, "spelling spelling zzzzzzzz cat", res.Corrected)
	assert.Equal(t, TierEdits1, res.Tokens[0].Tier)
	assert.Equal(t, 1, res.Tokens[0].Edits)
	assert.Equal(t, TierEdits2, res.Tokens[1].Tier)
	assert.Equal(t, 2, res.Tokens[1].Edits)
	assert.Equal(t, TierUnresolved, res.Tokens[2].Tier)
	assert.Equal(t, TierKept, res.Tokens[3].Tier)
	assert.Empty(t, res.Tokens[3].Suggestions)
}

func TestSpellCheckPrefersFrequentCandidate(t *testing.T) {
	sc := newChecker(t, DefaultConfig())
	// cat (2) beats mat (1), sat (1) and rat (1)
	got, err := sc.SpellCheck("xat", 0.95, false)
	require.NoError(t, err)
	assert.Equal(t, "cat", got)
}

func TestSpellCheckDeterministicTies(t *testing.T) {
	lm := langmodel.New(options.WithWindowSize(2))
	lm.Build("bat cat hat")
	sc := New(DefaultConfig(), lm)

	first, err := sc.SpellCheck("xat", 0.5, false)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		got, err := sc.SpellCheck("xat", 0.5, false)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestSpellCheckNormalize(t *testing.T) {
	sc := newChecker(t, DefaultConfig())
	got, err := sc.SpellCheck("The SPELING!", 0.95, true)
	require.NoError(t, err)
	assert.Equal(t, "spelling", got)
}

func TestSpellCheckPreserveCase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PreserveCase = true
	sc := newChecker(t, cfg)

	got, err := sc.SpellCheck("The Speling", 0.95, false)
	require.NoError(t, err)
	assert.Equal(t, "The Spelling", got)
}

func TestCustomWords(t *testing.T) {
	sc := newChecker(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, sc.AddCustomWord(ctx, "Spewin"))
	got, err := sc.SpellCheck("spewin", 0.95, false)
	require.NoError(t, err)
	assert.Equal(t, "spewin", got)

	require.NoError(t, sc.RemoveCustomWord(ctx, "spewin"))
	got, err = sc.SpellCheck("spewin", 0.95, false)
	require.NoError(t, err)
	assert.Equal(t, "spewing", got)
}

type dashTokenizer struct{}

func (dashTokenizer) Tokenize(text string) []string { return strings.Split(text, "-") }

type identityNormalizer struct{}

func (identityNormalizer) Normalize(text string) string { return text }

func TestSetCollaboratorsWhileChecking(t *testing.T) {
	sc := newChecker(t, DefaultConfig())

	got, err := sc.SpellCheck("the-speling", 0.95, false)
	require.NoError(t, err)
	assert.Equal(t, "the - spelling", got)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := sc.CorrectText("the-speling", 0.95, true)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			sc.SetTokenizer(dashTokenizer{})
			sc.SetNormalizer(identityNormalizer{})
		}()
	}
	wg.Wait()

	got, err = sc.SpellCheck("the-speling", 0.95, true)
	require.NoError(t, err)
	assert.Equal(t, "the spelling", got)
}

func TestSetLanguageModelReplaces(t *testing.T) {
	sc := newChecker(t, DefaultConfig())
	other := langmodel.New(options.WithWindowSize(2))
	other.Build("spewing spewing")
	sc.SetLanguageModel(other)

	got, err := sc.SpellCheck("speling", 0.95, false)
	require.NoError(t, err)
	assert.Equal(t, "spewing", got)
}

func TestEvaluateText(t *testing.T) {
	sc := newChecker(t, DefaultConfig())
	got, err := sc.EvaluateText("the cat sat")
	require.NoError(t, err)
	assert.Equal(t, sc.LanguageModel().EvaluateText("the cat sat"), got)
}

func TestSuggest(t *testing.T) {
	sc := newChecker(t, DefaultConfig())
	got, err := sc.Suggest("speling", 0.95, 3)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 3)
	assert.Equal(t, "spelling", got[0].Term)

	terms := make([]string, 0, len(got))
	for _, c := range got {
		terms = append(terms, c.Term)
	}
	assert.Contains(t, terms, "spewing")
}

func TestChannelScores(t *testing.T) {
	sc := newChecker(t, DefaultConfig())
	st, err := sc.state(0.9)
	require.NoError(t, err)

	scored, err := st.channelScores("speling", []string{"speling", "spelling"})
	require.NoError(t, err)
	assert.InDelta(t, math.Log(0.9), scored[0].Score, 1e-12)

	st.prior = true
	withPrior, err := st.channelScores("speling", []string{"speling", "spelling"})
	require.NoError(t, err)
	assert.InDelta(t, scored[1].Score+math.Log(0.1/2), withPrior[1].Score, 1e-9)
	assert.Equal(t, scored[0].Score, withPrior[0].Score)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spell.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
window_size = 2
chars = true
alpha = 0.8
corpus_paths = ["a.txt", "b.txt"]

[redis]
addr = "localhost:6379"
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.WindowSize)
	assert.True(t, cfg.Chars)
	assert.Equal(t, 0.8, cfg.Alpha)
	assert.Equal(t, []string{"a.txt", "b.txt"}, cfg.CorpusPaths)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, channel.DefaultRedisPrefix, cfg.Redis.TablesPrefix)
	assert.Equal(t, 5, cfg.TopKSuggestions)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestRestoreCase(t *testing.T) {
	assert.Equal(t, "Spelling", restoreCase("Speling", "spelling"))
	assert.Equal(t, "SPELLING", restoreCase("SPELING", "spelling"))
	assert.Equal(t, "spelling", restoreCase("speling", "spelling"))
	assert.Equal(t, "The", restoreCase("The", "the"))
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "edits2", TierEdits2.String())
	b, err := TierNoisyChannel.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "noisy_channel", string(b))
}

func TestTierUnmarshal(t *testing.T) {
	var tier Tier
	require.NoError(t, tier.UnmarshalText([]byte("unresolved")))
	assert.Equal(t, TierUnresolved, tier)
	assert.Error(t, tier.UnmarshalText([]byte("maybe")))
}
