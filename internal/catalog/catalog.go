// Package catalog holds the in-memory card catalog: cards bucketed by slot and
// set, loaded lazily one set at a time from a card store.
package catalog

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/KirkDiggler/booster-sim/internal/entities"
	"github.com/KirkDiggler/booster-sim/internal/errors"
	"github.com/KirkDiggler/booster-sim/internal/random"
	"github.com/KirkDiggler/booster-sim/internal/repositories/cards"
)

// Config holds the dependencies for a Catalog
type Config struct {
	Store cards.Repository
	// Sets lists the known sets; exactly one must be the bonus set.
	// Defaults to entities.DefaultSets().
	Sets   []entities.Set
	Logger *slog.Logger
}

// Validate ensures all required dependencies are present
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Store == nil {
		vb.RequiredField("store")
	}

	sets := cfg.Sets
	if len(sets) == 0 {
		sets = entities.DefaultSets()
	}

	seen := make(map[string]bool, len(sets))
	bonus := 0
	for _, s := range sets {
		code := canonicalCode(s)
		if code == "" {
			vb.Field("sets", "set code cannot be empty")
			continue
		}
		if seen[code] {
			vb.Fieldf("sets", "duplicate set code %s", code)
		}
		seen[code] = true
		if s.Bonus {
			bonus++
		}
	}
	if bonus != 1 {
		vb.Fieldf("sets", "exactly one bonus set is required, got %d", bonus)
	}

	return vb.Build()
}

// canonicalCode is the form set codes take in bucket keys
func canonicalCode(set entities.Set) string {
	return strings.ToUpper(strings.TrimSpace(set.Code))
}

type bucketKey struct {
	slot entities.Slot
	set  string
}

// Catalog maps (slot, set) to the cards that can fill that slot. A loaded set
// has a bucket for every slot, possibly empty; an unloaded set has none.
type Catalog struct {
	store  cards.Repository
	sets   []entities.Set
	bonus  entities.Set
	logger *slog.Logger

	mu      sync.RWMutex
	buckets map[bucketKey][]entities.Card
	loads   singleflight.Group
}

// New creates a catalog and loads the bonus set
func New(ctx context.Context, cfg *Config) (*Catalog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sets := cfg.Sets
	if len(sets) == 0 {
		sets = entities.DefaultSets()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Catalog{
		store:   cfg.Store,
		sets:    make([]entities.Set, 0, len(sets)),
		logger:  logger,
		buckets: make(map[bucketKey][]entities.Card),
	}
	for _, s := range sets {
		s.Code = canonicalCode(s)
		if s.Bonus {
			c.bonus = s
		}
		c.sets = append(c.sets, s)
	}

	if err := c.EnsureLoaded(ctx, c.bonus); err != nil {
		return nil, errors.Wrapf(err, "failed to load bonus set %s", c.bonus.Code)
	}

	return c, nil
}

// Sets returns the known sets
func (c *Catalog) Sets() []entities.Set {
	out := make([]entities.Set, len(c.sets))
	copy(out, c.sets)
	return out
}

// BonusSet returns the set used for bonus substitution
func (c *Catalog) BonusSet() entities.Set {
	return c.bonus
}

// LookupSet finds a known set by code, name or alias
func (c *Catalog) LookupSet(label string) (entities.Set, bool) {
	return entities.FindSet(c.sets, label)
}

// HasSet reports whether the set's buckets are loaded
func (c *Catalog) HasSet(set entities.Set) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hasSetLocked(canonicalCode(set))
}

func (c *Catalog) hasSetLocked(code string) bool {
	// buckets are committed for all slots at once, so one is enough
	_, ok := c.buckets[bucketKey{slot: entities.SlotHero, set: code}]
	return ok
}

// Size returns the number of cards per slot for a loaded set, nil otherwise
func (c *Catalog) Size(set entities.Set) map[entities.Slot]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	code := canonicalCode(set)
	if !c.hasSetLocked(code) {
		return nil
	}
	sizes := make(map[entities.Slot]int, len(entities.Slots()))
	for _, slot := range entities.Slots() {
		sizes[slot] = len(c.buckets[bucketKey{slot: slot, set: code}])
	}
	return sizes
}

// EnsureLoaded loads the set from the store unless it is already loaded.
// Concurrent calls for one set share a single fetch. On failure nothing is
// committed and a later call retries.
//
// The shared fetch is detached from any one caller's cancellation; a caller
// whose ctx ends stops waiting with CANCELED while the fetch finishes for
// the others.
func (c *Catalog) EnsureLoaded(ctx context.Context, set entities.Set) error {
	known, ok := c.LookupSet(set.Code)
	if !ok {
		return errors.NotFoundf("unknown set %q", set.Code)
	}
	if c.HasSet(known) {
		return nil
	}

	loadCtx := context.WithoutCancel(ctx)
	result := c.loads.DoChan(known.Code, func() (interface{}, error) {
		if c.HasSet(known) {
			return nil, nil
		}
		return nil, c.load(loadCtx, known)
	})

	select {
	case res := <-result:
		return res.Err
	case <-ctx.Done():
		return errors.WrapWithCodef(ctx.Err(), errors.CodeCanceled, "stopped waiting for set %s to load", known.Code)
	}
}

func (c *Catalog) load(ctx context.Context, set entities.Set) error {
	start := time.Now()

	var aliases []string
	if set.Alias != "" {
		aliases = append(aliases, set.Alias)
	}
	if set.Name != "" && set.Name != set.Code {
		aliases = append(aliases, set.Name)
	}

	out, err := c.store.ListBySet(ctx, cards.ListBySetInput{SetCode: set.Code, Aliases: aliases})
	if err != nil {
		return errors.Wrapf(err, "failed to list cards for set %s", set.Code)
	}

	staged := make(map[entities.Slot][]entities.Card, len(entities.Slots()))
	for _, slot := range entities.Slots() {
		staged[slot] = nil
	}
	for _, rec := range out.Records {
		card, err := c.classify(set, rec)
		if err != nil {
			return errors.WrapWithCodef(err, errors.CodeFailedPrecondition, "failed to classify cards of set %s", set.Code)
		}
		// cards are filed under the requested set whatever their own tag says
		staged[card.Slot] = append(staged[card.Slot], card)
	}

	c.mu.Lock()
	for slot, bucket := range staged {
		c.buckets[bucketKey{slot: slot, set: set.Code}] = bucket
	}
	c.mu.Unlock()

	c.logger.Info("loaded card set",
		"set", set.Code,
		"cards", len(out.Records),
		"heroes", len(staged[entities.SlotHero]),
		"commands", len(staged[entities.SlotCommand]),
		"basic_cards", len(staged[entities.SlotBasicCard]),
		"duration", time.Since(start))

	return nil
}

func (c *Catalog) classify(set entities.Set, rec cards.Record) (entities.Card, error) {
	fail := func(field, value string) (entities.Card, error) {
		return entities.Card{}, &ClassificationError{
			SetCode:  set.Code,
			Card:     rec.Name,
			Position: rec.PositionInSet,
			Field:    field,
			Value:    value,
		}
	}

	rarity, err := entities.ParseRarity(rec.RarityName)
	if err != nil {
		return fail("rarity", rec.RarityName)
	}
	slot, err := entities.ParseSlot(rec.SlotName)
	if err != nil {
		return fail("slot", rec.SlotName)
	}

	cardSet := set
	if strings.TrimSpace(rec.SetName) != "" {
		found, ok := c.LookupSet(rec.SetName)
		if !ok {
			return fail("set", rec.SetName)
		}
		cardSet = found
	}

	return entities.Card{
		Name:          rec.Name,
		PositionInSet: rec.PositionInSet,
		Rarity:        rarity,
		Slot:          slot,
		Set:           cardSet,
		ImageURL:      rec.ImageURL,
	}, nil
}

// Draw picks a card uniformly for the slot. With preferBonus it tries the
// bonus set's bucket first and falls back to the set's bucket when that is
// empty. It returns false when the bucket it ends up on is empty or the set
// is not loaded.
func (c *Catalog) Draw(slot entities.Slot, set entities.Set, preferBonus bool, src random.Source) (entities.Card, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if preferBonus {
		if card, ok := pick(c.buckets[bucketKey{slot: slot, set: c.bonus.Code}], src, nil); ok {
			return card, true
		}
	}
	return pick(c.buckets[bucketKey{slot: slot, set: canonicalCode(set)}], src, nil)
}

// DrawRarity is Draw restricted to cards of one rarity, used by rules that
// opt into rarity filtering.
func (c *Catalog) DrawRarity(slot entities.Slot, set entities.Set, rarity entities.Rarity, preferBonus bool, src random.Source) (entities.Card, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	match := func(card entities.Card) bool { return card.Rarity == rarity }
	if preferBonus {
		if card, ok := pick(c.buckets[bucketKey{slot: slot, set: c.bonus.Code}], src, match); ok {
			return card, true
		}
	}
	return pick(c.buckets[bucketKey{slot: slot, set: canonicalCode(set)}], src, match)
}

// pick selects uniformly among the bucket's cards accepted by match, or all
// cards when match is nil.
func pick(bucket []entities.Card, src random.Source, match func(entities.Card) bool) (entities.Card, bool) {
	if match == nil {
		if len(bucket) == 0 {
			return entities.Card{}, false
		}
		return bucket[src.IntN(len(bucket))], true
	}

	n := 0
	for _, card := range bucket {
		if match(card) {
			n++
		}
	}
	if n == 0 {
		return entities.Card{}, false
	}

	k := src.IntN(n)
	for _, card := range bucket {
		if !match(card) {
			continue
		}
		if k == 0 {
			return card, true
		}
		k--
	}
	return entities.Card{}, false
}
