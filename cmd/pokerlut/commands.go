package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/vctt94/pokerlut/pkg/lookup"
	"github.com/vctt94/pokerlut/pkg/poker"
	"github.com/vctt94/pokerlut/pkg/store"
	"github.com/vctt94/pokerlut/pkg/ui"
	"github.com/vctt94/pokerlut/pkg/utils"
)

func (e *env) openStore() (store.Store, error) {
	return store.Open(e.cfg.dbPath, e.logBackend.Logger("STOR"))
}

// loadTable returns the stored table, or nil if none was saved.
func (e *env) loadTable(ctx context.Context, verify bool) (*lookup.Table, error) {
	s, err := e.openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	t, err := s.LoadTable(ctx, verify)
	if errors.Is(err, store.ErrNoTable) {
		return nil, nil
	}
	return t, err
}

func runEval(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	useLUT := fs.Bool("lut", false, "Also look the hand up in the stored table")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cards, err := poker.ParseCards(joinArgs(fs.Args()))
	if err != nil {
		return err
	}
	v, err := poker.Evaluate(cards)
	if err != nil {
		return err
	}

	if *useLUT {
		t, err := e.loadTable(ctx, false)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("no table in %s, run build first", e.cfg.dbPath)
		}
		got, err := t.Lookup(cards)
		if err != nil {
			return err
		}
		if got != v {
			return fmt.Errorf("table returned %v, evaluator returned %v", got, v)
		}
		e.log.Debugf("Table lookup agrees: %v", got)
	}

	fmt.Println(ui.RenderEvaluation(cards, v))
	return nil
}

func runCompare(ctx context.Context, e *env, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: compare <cards> <cards>")
	}
	a, err := poker.ParseCards(args[0])
	if err != nil {
		return fmt.Errorf("first hand: %w", err)
	}
	b, err := poker.ParseCards(args[1])
	if err != nil {
		return fmt.Errorf("second hand: %w", err)
	}

	va, err := poker.Evaluate(a)
	if err != nil {
		return fmt.Errorf("first hand: %w", err)
	}
	vb, err := poker.Evaluate(b)
	if err != nil {
		return fmt.Errorf("second hand: %w", err)
	}

	fmt.Println(ui.RenderComparison(a, b, va, vb, va.Compare(vb)))
	return nil
}

func runBuild(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	deckFlag := fs.String("deck", "", "Build over these cards instead of the full deck")
	noSave := fs.Bool("nosave", false, "Do not save the table to the database")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var deck []poker.Card
	if *deckFlag != "" {
		var err error
		if deck, err = poker.ParseCards(*deckFlag); err != nil {
			return err
		}
	}

	table, stats, err := lookup.BuildWithStats(ctx, lookup.Config{
		Deck:            deck,
		Workers:         e.cfg.workers,
		SkipMemoryCheck: e.cfg.skipMemCheck,
		Log:             e.logBackend.Logger("LUT"),
	})
	if err != nil {
		return err
	}

	if rss, err := utils.ResidentMemory(); err == nil {
		e.log.Infof("Resident memory after build: %s", utils.FormatBytes(rss))
	} else {
		e.log.Debugf("Resident memory unavailable: %v", err)
	}
	fmt.Println(ui.RenderBuildStats(stats))

	if *noSave {
		return nil
	}
	s, err := e.openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	return s.SaveTable(ctx, table)
}

func runVerify(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	n := fs.Int("n", 100000, "Number of random hands to check")
	seed := fs.Int64("seed", 1, "Seed of the hand sampler")
	full := fs.Bool("full", false, "Also check every stored entry sits at its own address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	table, err := e.loadTable(ctx, *full)
	if err != nil {
		return err
	}
	if table == nil {
		e.log.Warnf("No table in %s; checking the evaluator only", e.cfg.dbPath)
	}

	res, err := verifySample(ctx, table, *n, *seed, e.log)
	if err != nil {
		return err
	}
	e.log.Infof("Checked %d hands: %d mismatches", res.Hands, res.Mismatches)
	if res.Mismatches > 0 {
		return fmt.Errorf("%d of %d hands mismatched", res.Mismatches, res.Hands)
	}
	return nil
}
