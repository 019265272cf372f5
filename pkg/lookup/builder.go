package lookup

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/decred/slog"
	"github.com/pbnjay/memory"
	"golang.org/x/sync/errgroup"

	"github.com/vctt94/pokerlut/pkg/poker"
	"github.com/vctt94/pokerlut/pkg/statemachine"
)

// ctxCheckInterval is how many combinations a worker evaluates between
// cancellation checks.
const ctxCheckInterval = 1 << 16

// Config holds the parameters of a table build.
type Config struct {
	// Deck is the card universe. Nil means the full 52-card deck.
	Deck []poker.Card

	// Workers is the number of partitions evaluated concurrently. Values
	// below 2 build sequentially.
	Workers int

	// SkipMemoryCheck disables the comparison of the table size against
	// the system's total memory.
	SkipMemoryCheck bool

	Log slog.Logger
}

// BuildStats describes a finished build.
type BuildStats struct {
	Entries  uint64
	Bytes    uint64
	Elapsed  time.Duration
	Workers  int
	Category [poker.NumHandRanks]uint64
}

type builderStateFn = statemachine.StateFn[builder]

// builder carries a build through allocate, populate, verify and freeze.
// A failing state records err and stops the machine.
type builder struct {
	ctx     context.Context
	cfg     Config
	log     slog.Logger
	table   *Table
	total   uint64
	emitted atomic.Uint64
	counts  [poker.NumHandRanks]atomic.Uint64
	started time.Time
	err     error
	frozen  bool
}

// Build enumerates every seven-card subset of the configured deck,
// evaluates each one and returns the frozen table. The build either
// completes or fails; a partial table is never returned.
func Build(ctx context.Context, cfg Config) (*Table, error) {
	t, _, err := BuildWithStats(ctx, cfg)
	return t, err
}

// BuildWithStats is Build that also reports what was built.
func BuildWithStats(ctx context.Context, cfg Config) (*Table, BuildStats, error) {
	if cfg.Deck == nil {
		cfg.Deck = poker.FullDeck()
	}
	log := cfg.Log
	if log == nil {
		log = slog.Disabled
	}

	b := &builder{ctx: ctx, cfg: cfg, log: log, started: time.Now()}
	sm := statemachine.NewStateMachine(b, stateAllocate)
	if err := sm.Run(ctx); err != nil {
		return nil, BuildStats{}, err
	}
	if b.err != nil {
		return nil, BuildStats{}, b.err
	}
	if !b.frozen {
		return nil, BuildStats{}, fmt.Errorf("build stopped before the table was frozen")
	}

	stats := BuildStats{
		Entries: b.total,
		Bytes:   b.total * entryBytes,
		Elapsed: time.Since(b.started),
		Workers: max(cfg.Workers, 1),
	}
	for i := range b.counts {
		stats.Category[i] = b.counts[i].Load()
	}
	return b.table, stats, nil
}

func (b *builder) fail(err error) builderStateFn {
	b.err = err
	return nil
}

// stateAllocate sizes the table and allocates it once at its final size.
func stateAllocate(b *builder) builderStateFn {
	t, err := newTable(b.cfg.Deck)
	if err != nil {
		return b.fail(err)
	}

	n := len(t.deck)
	b.total = Size(n)
	need := MemoryFootprint(n)
	if !b.cfg.SkipMemoryCheck {
		if have := memory.TotalMemory(); have != 0 && need > have {
			return b.fail(fmt.Errorf("%w: need %d bytes, system has %d",
				ErrInsufficientMemory, need, have))
		}
	}

	b.log.Infof("Allocating table for %d cards: %d entries, %d MiB",
		n, b.total, need>>20)
	t.keys = make([]Key, b.total)
	t.rankings = make([]uint32, b.total)
	b.table = t
	return statePopulate
}

// statePopulate evaluates every combination. Each partition owns the
// contiguous address block of combinations sharing a smallest card, so
// workers never write the same entry.
func statePopulate(b *builder) builderStateFn {
	n := len(b.table.deck)
	partitions := n - poker.HandSize + 1

	if b.cfg.Workers < 2 {
		for first := 0; first < partitions; first++ {
			if err := b.populatePartition(b.ctx, first); err != nil {
				return b.fail(err)
			}
		}
		return stateVerify
	}

	g, ctx := errgroup.WithContext(b.ctx)
	g.SetLimit(b.cfg.Workers)
	for first := 0; first < partitions; first++ {
		first := first
		g.Go(func() error {
			return b.populatePartition(ctx, first)
		})
	}
	if err := g.Wait(); err != nil {
		return b.fail(err)
	}
	return stateVerify
}

func (b *builder) populatePartition(ctx context.Context, first int) error {
	t := b.table
	n := len(t.deck)
	start := PartitionStart(n, poker.HandSize, first)
	want := Binomial(n-1-first, poker.HandSize-1)

	var (
		counts [poker.NumHandRanks]uint64
		cards  [poker.HandSize]poker.Card
		codes  [poker.HandSize]byte
	)
	pos := start
	e := NewPartition(n, poker.HandSize, first)
	for e.Next() {
		if (pos-start)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		for i, idx := range e.Indices() {
			cards[i] = t.deck[idx]
			codes[i] = cards[i].Code()
		}
		h, err := poker.NewHand(cards[:])
		if err != nil {
			return fmt.Errorf("partition %d: %w", first, err)
		}
		v := h.Evaluate()

		t.keys[pos] = packCodes(&codes)
		t.rankings[pos] = v.Pack()
		counts[v.Rank]++
		pos++
	}

	if got := e.Emitted(); got != want {
		return fmt.Errorf("%w: partition %d produced %d of %d combinations",
			ErrEnumerationIncomplete, first, got, want)
	}
	for i, c := range counts {
		b.counts[i].Add(c)
	}
	b.emitted.Add(e.Emitted())
	b.log.Debugf("Partition %d done: %d combinations at [%d, %d)", first, want, start, pos)
	return nil
}

// stateVerify checks the enumeration produced exactly C(n, 7) combinations.
func stateVerify(b *builder) builderStateFn {
	if got := b.emitted.Load(); got != b.total {
		return b.fail(fmt.Errorf("%w: emitted %d of %d combinations",
			ErrEnumerationIncomplete, got, b.total))
	}
	return stateFreeze
}

func stateFreeze(b *builder) builderStateFn {
	b.frozen = true
	b.log.Infof("Table built: %d entries in %v", b.total, time.Since(b.started).Round(time.Millisecond))
	for r := poker.HighCard; r < poker.NumHandRanks; r++ {
		b.log.Debugf("  %-16v %d", r, b.counts[r].Load())
	}
	return nil
}
