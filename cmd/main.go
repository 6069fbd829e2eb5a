package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"

	"spellchecker/internal/channel"
	"spellchecker/internal/corpus"
	sc "spellchecker/internal/corrector"
)

func main() {
	log.SetFlags(0)

	configPath := flag.String("config", os.Getenv("SPELL_CONFIG"), "Path to a TOML config file")
	corpusPaths := flag.String("corpus", "", "Comma separated corpus files, - reads standard input")
	n := flag.Int("n", 0, "N-gram window size (0 keeps the configured value)")
	chars := flag.Bool("chars", false, "Use a character model")
	errorsPath := flag.String("errors", "", "Path to a YAML error table file")
	alpha := flag.Float64("alpha", 0, "Probability that a known word is correct (0 keeps the configured value)")
	normalize := flag.Bool("normalize", false, "Lowercase, strip non-letters and drop stopwords before correcting")
	mode := flag.String("mode", "check", "One of check, evaluate, generate, suggest, import-tables")
	length := flag.Int("length", 10, "Units to generate in generate mode")
	genContext := flag.String("context", "", "Seed context for generate mode")
	seed := flag.Uint64("seed", 0, "Random seed for generate mode (0 keeps the configured value)")
	topK := flag.Int("k", 0, "Suggestions to print in suggest mode")
	flag.Parse()

	cfg := sc.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = sc.LoadConfig(*configPath); err != nil {
			log.Fatalf("config error: %v", err)
		}
	}
	if *corpusPaths != "" {
		cfg.CorpusPaths = strings.Split(*corpusPaths, ",")
	}
	if *n > 0 {
		cfg.WindowSize = *n
	}
	if *chars {
		cfg.Chars = true
	}
	if *errorsPath != "" {
		cfg.ErrorTablesPath = *errorsPath
	}
	if *alpha > 0 {
		cfg.Alpha = *alpha
	}
	if *normalize {
		cfg.Normalize = true
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	var rdb redis.Cmdable
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
		rdb = redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
	}

	if *mode == "import-tables" {
		importTables(rdb, cfg)
		return
	}

	if err := checkStdin(cfg.CorpusPaths, *mode, flag.NArg()); err != nil {
		log.Fatalf("usage error: %v", err)
	}

	checker, err := sc.NewFromConfig(context.Background(), cfg, rdb)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	if *mode == "generate" {
		lm := checker.LanguageModel()
		if *genContext != "" {
			fmt.Println(lm.GenerateFrom(*genContext, *length))
		} else {
			fmt.Println(lm.Generate(*length))
		}
		return
	}

	run := func(line string) {
		if err := handle(checker, cfg, *mode, line, *topK); err != nil {
			log.Fatalf("%s error: %v", *mode, err)
		}
	}

	if flag.NArg() > 0 {
		run(strings.Join(flag.Args(), " "))
		return
	}
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			run(line)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read error: %v", err)
	}
}

// checkStdin rejects reading both the corpus and the text to check from
// standard input.
func checkStdin(corpusPaths []string, mode string, nargs int) error {
	if mode == "generate" || nargs > 0 || !slices.Contains(corpusPaths, corpus.Stdin) {
		return nil
	}
	return fmt.Errorf("corpus %q reads standard input, pass the text to %s as arguments", corpus.Stdin, mode)
}

// importTables copies the YAML error tables into Redis, where servers without
// a tables file pick them up.
func importTables(rdb redis.Cmdable, cfg sc.Config) {
	if rdb == nil || cfg.ErrorTablesPath == "" {
		log.Fatalf("import-tables needs REDIS_ADDR and -errors")
	}
	tables, err := channel.LoadTables(cfg.ErrorTablesPath)
	if err != nil {
		log.Fatalf("import error: %v", err)
	}
	if err := channel.StoreRedisTables(context.Background(), rdb, cfg.Redis.TablesPrefix, tables); err != nil {
		log.Fatalf("import error: %v", err)
	}
	for _, k := range channel.Kinds() {
		log.Printf("[spellcheck] %s: %d signatures", k, tables.Len(k))
	}
}

func handle(checker *sc.SpellChecker, cfg sc.Config, mode, line string, k int) error {
	switch mode {
	case "check":
		out, err := checker.SpellCheck(line, cfg.Alpha, cfg.Normalize)
		if err != nil {
			return err
		}
		fmt.Println(out)
	case "evaluate":
		lp, err := checker.EvaluateText(line)
		if err != nil {
			return err
		}
		fmt.Printf("%.6f\n", lp)
	case "suggest":
		for _, word := range strings.Fields(line) {
			suggestions, err := checker.Suggest(word, cfg.Alpha, k)
			if err != nil {
				return err
			}
			terms := make([]string, 0, len(suggestions))
			for _, s := range suggestions {
				terms = append(terms, fmt.Sprintf("%s(%.3f)", s.Term, s.Score))
			}
			fmt.Printf("%s: %s\n", word, strings.Join(terms, " "))
		}
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
	return nil
}
