package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rs/zerolog"

	"github.com/versebattle/cypher/pkg/cypher"
	"github.com/versebattle/cypher/pkg/cypher/config"
	"github.com/versebattle/cypher/pkg/cypher/enhance"
	"github.com/versebattle/cypher/pkg/cypher/lexicon"
	"github.com/versebattle/cypher/pkg/cypher/store/sqlite"
)

func main() {
	var (
		input       = flag.String("input", "", "Path to verse text file (required)")
		battleID    = flag.String("battle", "cli", "Battle identifier")
		final       = flag.Bool("final", false, "Treat as the authoritative final score")
		dictPath    = flag.String("dict", "", "Optional: CMU pronunciation dictionary path")
		lexiconPath = flag.String("lexicon", "", "Optional: lexicon YAML override")
		tuningPath  = flag.String("tuning", "", "Optional: tuning YAML file")
		dbPath      = flag.String("db", "", "Optional: SQLite path for round persistence")
		doEnhance   = flag.Bool("enhance", false, "Enhance the verse instead of analyzing it")
		mode        = flag.String("mode", enhance.ModeBalanced, "Enhancement mode: balanced|aggressive|subtle")
		asJSON      = flag.Bool("json", false, "Emit JSON instead of text")
		verbose     = flag.Bool("v", false, "Verbose engine logging")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}
	data, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("read verse: %v", err)
	}

	ctx := context.Background()

	opts := cypher.Options{DictPath: *dictPath}
	if *verbose {
		logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		opts.Logger = &logger
	}
	if *lexiconPath != "" {
		lex, err := lexicon.LoadFromYAML(*lexiconPath)
		if err != nil {
			log.Fatalf("load lexicon: %v", err)
		}
		opts.Lexicon = lex
	}
	if *tuningPath != "" {
		tuning, err := config.LoadTuning(*tuningPath)
		if err != nil {
			log.Fatalf("load tuning: %v", err)
		}
		opts.Tuning = tuning
	}
	if *dbPath != "" {
		st, err := sqlite.OpenSQLite(ctx, *dbPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		opts.Store = st
	}

	eng, err := cypher.New(opts)
	if err != nil {
		log.Fatalf("create engine: %v", err)
	}
	defer eng.Close()

	if *doEnhance {
		enhOpts := enhance.DefaultOptions()
		enhOpts.Mode = *mode
		out, err := eng.Enhance(ctx, string(data), enhOpts)
		if err != nil {
			log.Fatalf("enhance: %v", err)
		}
		if *asJSON {
			emitJSON(out)
			return
		}
		fmt.Println(out.Lyrics)
		fmt.Printf("\nachieved density: %.2f\n", out.AchievedDensity)
		for _, note := range out.Notes {
			fmt.Println("  " + note)
		}
		return
	}

	res, err := eng.Analyze(ctx, cypher.Request{
		Text:       string(data),
		BattleID:   *battleID,
		FinalScore: *final,
	})
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}
	sum := eng.Summarize(res, *battleID)

	if *asJSON {
		emitJSON(struct {
			Result  *cypher.Result `json:"result"`
			Summary interface{}    `json:"summary"`
		}{res, sum})
		return
	}

	for i, line := range res.Scheme.Lines {
		fmt.Printf("%-14s %s\n", res.Scheme.Scheme[i], line.Text)
		fmt.Printf("%14s %s\n", "", line.Breakdown)
	}
	fmt.Printf("\nrhyme %.1f  flow %.1f  creativity %.1f  total %d\n",
		res.Scores.Rhyme, res.Scores.Flow, res.Scores.Creativity, res.Scores.Total)
	fmt.Printf("perfect %d  slant %d  assonance %.1f  consonance %.1f  rhythm %.1f\n",
		sum.PerfectRhymes, sum.SlantRhymes, sum.Assonance, sum.Consonance, sum.RhythmConsistency)
	if prog, ok := eng.Progression(*battleID); ok {
		fmt.Printf("battle %s: %d rounds, %d families, complexity %.1f\n",
			prog.BattleID, prog.Rounds, prog.FamilyCount, prog.Complexity)
	}
}

func emitJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("encode: %v", err)
	}
}
