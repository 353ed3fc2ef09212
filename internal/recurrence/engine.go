package recurrence

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// defaultParallelism bounds how many rules are materialized at once.
const defaultParallelism = 4

// Result reports the outcome of materializing a single rule.
type Result struct {
	RuleID  uuid.UUID `json:"ruleId"`
	Created int       `json:"created"`
	Err     error     `json:"-"`
}

// Engine brings the ledger up to date with all due recurrence rules.
//
// Rules are processed independently: a failure on one rule is recorded in
// its Result and never blocks the catch-up of other rules. Runs against the
// same rule are serialized with a per-rule lock; the unique index on
// (rule id, cycle date) catches writers this process does not know about.
type Engine struct {
	db    *gorm.DB
	clock Clock

	parallelism int
	locks       sync.Map // uuid.UUID -> *sync.Mutex
}

// NewEngine returns an Engine using the given database handle and clock.
func NewEngine(db *gorm.DB, clock Clock) *Engine {
	return &Engine{
		db:          db,
		clock:       clock,
		parallelism: defaultParallelism,
	}
}

// Run materializes every rule that is due as of the engine clock's today.
func (e *Engine) Run(ctx context.Context) ([]Result, error) {
	return e.RunAsOf(ctx, e.clock.Today())
}

// RunAsOf materializes every rule whose next due date is on or before today.
//
// The returned error reports a failure to enumerate due rules. Per-rule
// failures are returned in the Results instead.
func (e *Engine) RunAsOf(ctx context.Context, today time.Time) ([]Result, error) {
	year, month, day := today.In(time.UTC).Date()
	today = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	var due []models.RecurrenceRule
	err := e.db.WithContext(ctx).
		Where("next_due <= ?", today).
		Order("next_due ASC").
		Find(&due).Error
	if err != nil {
		return nil, fmt.Errorf("listing due rules failed: %w", err)
	}

	results := make([]Result, len(due))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)

	for i, rule := range due {
		g.Go(func() error {
			results[i] = e.materialize(ctx, rule.ID, today)
			return nil
		})
	}

	// Workers never return an error, per-rule failures live in results.
	_ = g.Wait()

	for _, r := range results {
		if r.Err != nil {
			log.Error().
				Str("rule", r.RuleID.String()).
				Int("created", r.Created).
				Err(r.Err).
				Msg("rule materialization failed")
		}
	}

	return results, nil
}

// materialize catches a single rule up to today.
//
// Each iteration creates the expense for the current cycle, then advances
// and persists the due date before the next iteration. A crash between the
// two writes is recovered by the duplicate cycle guard: re-running creates
// no second expense for a cycle that is already in the ledger.
func (e *Engine) materialize(ctx context.Context, id uuid.UUID, today time.Time) Result {
	mu := e.ruleLock(id)
	mu.Lock()
	defer mu.Unlock()

	// Reload under the lock so a concurrent run on the same rule is
	// observed before any write.
	var rule models.RecurrenceRule
	err := e.db.WithContext(ctx).First(&rule, id).Error
	if err != nil {
		return Result{RuleID: id, Err: fmt.Errorf("reloading rule failed: %w", err)}
	}

	result := Result{RuleID: id}

	for !rule.NextDue.After(today) {
		expense := models.Expense{
			UserID:      rule.UserID,
			CategoryID:  rule.CategoryID,
			Description: rule.Description,
			Amount:      rule.Amount,
			// The expense is dated to the cycle it represents, not today.
			Date:   rule.NextDue,
			RuleID: &rule.ID,
		}

		err = e.db.WithContext(ctx).Create(&expense).Error
		switch {
		case errors.Is(err, models.ErrCycleAlreadyMaterialized):
			// Another writer created this cycle. Advancing past it is
			// all that is left to do.
			log.Debug().
				Str("rule", id.String()).
				Time("cycle", rule.NextDue).
				Msg("cycle already materialized, skipping")
		case err != nil:
			result.Err = fmt.Errorf("creating expense for cycle %s failed: %w", rule.NextDue.Format("2006-01-02"), err)
			return result
		default:
			result.Created++
		}

		// The advance is conditional on the stored date still being
		// behind: a writer that fell behind a concurrent run must never
		// move next_due backwards.
		next := NextDate(rule.NextDue, rule.Frequency, rule.AnchorDay)
		tx := e.db.WithContext(ctx).Model(&rule).Where("next_due < ?", next).Update("next_due", next)
		if tx.Error != nil {
			result.Err = fmt.Errorf("advancing due date failed: %w", tx.Error)
			return result
		}
		rule.NextDue = next
	}

	return result
}

func (e *Engine) ruleLock(id uuid.UUID) *sync.Mutex {
	mu, _ := e.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
