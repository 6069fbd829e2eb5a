package options

import "math/rand/v2"

const (
	DefaultWindowSize = 3
	DefaultSeed       = 1
)

var DefaultOptions = ModelOptions{
	WindowSize: DefaultWindowSize,
	Chars:      false,
}

type ModelOptions struct {
	WindowSize int
	Chars      bool       // character-level tokens instead of whitespace-split words
	Rand       *rand.Rand // sampling source for generation; seeded with DefaultSeed when nil
}

type Options interface {
	Apply(options *ModelOptions)
}

type FuncConfig struct {
	ops func(options *ModelOptions)
}

func (w FuncConfig) Apply(conf *ModelOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *ModelOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

// Resolve applies opts on top of DefaultOptions.
func Resolve(opts ...Options) ModelOptions {
	o := DefaultOptions
	for _, opt := range opts {
		if opt != nil {
			opt.Apply(&o)
		}
	}
	if o.WindowSize < 1 {
		o.WindowSize = 1
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(DefaultSeed, DefaultSeed))
	}
	return o
}

func WithWindowSize(n int) Options {
	return NewFuncOption(func(options *ModelOptions) {
		options.WindowSize = n
	})
}

func WithChars() Options {
	return NewFuncOption(func(options *ModelOptions) {
		options.Chars = true
	})
}

// WithMode selects character mode when chars is true and word mode otherwise.
func WithMode(chars bool) Options {
	return NewFuncOption(func(options *ModelOptions) {
		options.Chars = chars
	})
}

func WithRand(r *rand.Rand) Options {
	return NewFuncOption(func(options *ModelOptions) {
		options.Rand = r
	})
}

// WithSeed makes generation reproducible for a fixed seed.
func WithSeed(seed uint64) Options {
	return NewFuncOption(func(options *ModelOptions) {
		options.Rand = rand.New(rand.NewPCG(seed, seed))
	})
}
