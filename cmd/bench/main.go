// README: Recovery-cascade exerciser; runs malformed completion samples and prints results.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"
)

func main() {
	cfg := loadConfig()

	// Cascade fallthrough logging would swamp the result table.
	log.SetOutput(io.Discard)

	results := RunAll(cfg)

	fmt.Println("\n== Summary ==")
	pass, fail := 0, 0
	var total time.Duration
	for _, r := range results {
		switch r.Status {
		case "PASS":
			pass++
		case "FAIL":
			fail++
		}
		total += r.Latency
		fmt.Printf("%-28s %-4s %10s  %s\n", r.Name, r.Status, r.Latency, r.Note)
	}
	fmt.Printf("PASS=%d FAIL=%d total=%s\n", pass, fail, total)

	if cfg.Strict && fail > 0 {
		os.Exit(1)
	}
}

type Config struct {
	Iterations int
	Strict     bool
}

func loadConfig() Config {
	var cfg Config
	flag.IntVar(&cfg.Iterations, "iterations", envOrDefaultInt("TRIPGEN_BENCH_ITERATIONS", 100), "Runs per case for timing")
	flag.BoolVar(&cfg.Strict, "strict", envOrDefaultBool("TRIPGEN_BENCH_STRICT", false), "Exit nonzero on unexpected outcomes")
	flag.Parse()
	return cfg
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "1" || v == "true" || v == "yes"
	}
	return def
}
