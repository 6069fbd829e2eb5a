package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	sc "spellchecker/internal/corrector"
)

func main() {
	configPath := flag.String("config", os.Getenv("SPELL_CONFIG"), "Path to a TOML config file")
	flag.Parse()

	cfg := sc.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = sc.LoadConfig(*configPath); err != nil {
			log.Fatalf("config error: %v", err)
		}
	}
	applyEnv(&cfg)

	var rdb redis.Cmdable
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	checker, err := sc.NewFromConfig(context.Background(), cfg, rdb)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	mux := routes(checker, cfg)

	log.Printf("listening on %s", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, mux))
}

// routes wires the JSON API over checker.
func routes(checker *sc.SpellChecker, cfg sc.Config) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/correct", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Text      string   `json:"text"`
			Alpha     *float64 `json:"alpha"`
			Normalize *bool    `json:"normalize"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
			return
		}
		alpha, normalize := cfg.Alpha, cfg.Normalize
		if req.Alpha != nil {
			alpha = *req.Alpha
		}
		if req.Normalize != nil {
			normalize = *req.Normalize
		}
		res, err := checker.CorrectText(req.Text, alpha, normalize)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	})

	mux.HandleFunc("/api/v1/evaluate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
			return
		}
		lp, err := checker.EvaluateText(req.Text)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]float64{"log_prob": lp})
	})

	mux.HandleFunc("/api/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Context *string `json:"context"`
			Length  int     `json:"length"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Length <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
			return
		}
		// generation draws from the model's shared random source
		genMu.Lock()
		lm := checker.LanguageModel()
		var text string
		if req.Context != nil {
			text = lm.GenerateFrom(*req.Context, req.Length)
		} else {
			text = lm.Generate(req.Length)
		}
		genMu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"text": text})
	})

	mux.HandleFunc("/api/v1/suggest", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		word := strings.TrimSpace(r.URL.Query().Get("word"))
		if word == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "word is required"})
			return
		}
		k, _ := strconv.Atoi(r.URL.Query().Get("k"))
		suggestions, err := checker.Suggest(word, cfg.Alpha, k)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"word": word, "suggestions": suggestions})
	})

	mux.HandleFunc("/api/v1/custom-word", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Word string `json:"word"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Word) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
			return
		}
		if err := checker.AddCustomWord(r.Context(), req.Word); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/api/v1/custom-word/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.NotFound(w, r)
			return
		}
		word := strings.TrimPrefix(r.URL.Path, "/api/v1/custom-word/")
		if word == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "word is required"})
			return
		}
		if err := checker.RemoveCustomWord(r.Context(), word); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}

var genMu sync.Mutex

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, sc.ErrNoLanguageModel) {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// applyEnv overrides cfg with the environment, as deployed containers set it.
func applyEnv(cfg *sc.Config) {
	cfg.Redis.Addr = getenv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getenv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvInt("REDIS_DB", cfg.Redis.DB)
	cfg.HTTPAddr = getenv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.ErrorTablesPath = getenv("ERROR_TABLES_PATH", cfg.ErrorTablesPath)
	if v := os.Getenv("CORPUS_PATH"); v != "" {
		cfg.CorpusPaths = strings.Split(v, ",")
	}
	cfg.WindowSize = getEnvInt("NGRAM_N", cfg.WindowSize)
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}
