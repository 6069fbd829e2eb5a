package corrector

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"spellchecker/internal/channel"
	"spellchecker/internal/customdict"
	"spellchecker/pkg/options"
)

type Config struct {
	WindowSize      int         `toml:"window_size"`
	Chars           bool        `toml:"chars"`
	Seed            uint64      `toml:"seed"`
	Alpha           float64     `toml:"alpha"`
	Normalize       bool        `toml:"normalize"`
	PreserveCase    bool        `toml:"preserve_case"`
	UniformPrior    bool        `toml:"uniform_prior"`
	TopKSuggestions int         `toml:"top_k_suggestions"`
	CorpusPaths     []string    `toml:"corpus_paths"`
	ErrorTablesPath string      `toml:"error_tables_path"`
	HTTPAddr        string      `toml:"http_addr"`
	Redis           RedisConfig `toml:"redis"`
}

type RedisConfig struct {
	Addr          string `toml:"addr"`
	Password      string `toml:"password"`
	DB            int    `toml:"db"`
	TablesPrefix  string `toml:"tables_prefix"`
	CustomDictKey string `toml:"custom_dict_key"`
}

func DefaultConfig() Config {
	return Config{
		WindowSize:      options.DefaultWindowSize,
		Seed:            options.DefaultSeed,
		Alpha:           0.95,
		TopKSuggestions: 5,
		HTTPAddr:        ":8080",
		Redis: RedisConfig{
			TablesPrefix:  channel.DefaultRedisPrefix,
			CustomDictKey: customdict.DefaultKey,
		},
	}
}

// LoadConfig reads a TOML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ModelOptions are the language model settings of the config.
func (c Config) ModelOptions() []options.Options {
	return []options.Options{
		options.WithWindowSize(c.WindowSize),
		options.WithMode(c.Chars),
		options.WithSeed(c.Seed),
	}
}

// Tier is the step of the correction cascade that settled a token.
type Tier int

const (
	TierKept         Tier = iota // punctuation, number, known or custom word
	TierEdits1                   // best known word one edit away
	TierEdits2                   // best known word two edits away
	TierNoisyChannel             // best noisy channel score
	TierUnresolved               // no candidate, token kept
)

var tierNames = [...]string{"kept", "edits1", "edits2", "noisy_channel", "unresolved"}

func (t Tier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierNames[t]
}

func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Tier) UnmarshalText(b []byte) error {
	for i, name := range tierNames {
		if name == string(b) {
			*t = Tier(i)
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", b)
}

type Candidate struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
	Edits int     `json:"edits"`
}

type TokenCorrection struct {
	Token       string      `json:"token"`
	Corrected   string      `json:"corrected"`
	Tier        Tier        `json:"tier"`
	Edits       int         `json:"edits"`
	Suggestions []Candidate `json:"suggestions,omitempty"`
}

type CorrectionResult struct {
	Original  string            `json:"original"`
	Corrected string            `json:"corrected"`
	Tokens    []TokenCorrection `json:"tokens"`
}
