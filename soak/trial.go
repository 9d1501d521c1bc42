package soak

import (
	"context"
	stdErrors "errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/amp-labs/amp-sortedlist/compare"
	"github.com/amp-labs/amp-sortedlist/hashing"
	"github.com/amp-labs/amp-sortedlist/logger"
	"github.com/amp-labs/amp-sortedlist/sortedlist"
	"github.com/amp-labs/amp-sortedlist/spans"
	"github.com/amp-labs/amp-sortedlist/validate"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrMismatch is wrapped when a list disagrees with the reference slice.
var ErrMismatch = stdErrors.New("sorted list disagrees with reference model")

const (
	// clearOneIn is how rarely a clear operation actually empties the list.
	clearOneIn = 100
	// bulkBelow is the size under which add_all sometimes sends a batch large
	// enough to take the merge path.
	bulkBelow = 64
	maxBatch  = 8
)

// TrialResult is the outcome of one trial.
type TrialResult struct {
	Trial      int
	Seed       uint64
	Operations int
	Size       int
	Height     int
	// Fingerprint is the xxhash64 digest of the final contents.
	Fingerprint string
	Duration    time.Duration
	// FailedOp names the operation that exposed Err, if any.
	FailedOp string
	Err      error
}

// RunTrial runs trial index of cfg on its own list. The trial is
// deterministic for a given config and index.
func RunTrial(ctx context.Context, cfg Config, index int) TrialResult {
	seed := cfg.Seed + uint64(index) //nolint:gosec
	res := TrialResult{Trial: index, Seed: seed}
	start := time.Now()

	ctx = logger.With(ctx, "trial", index, "seed", seed)

	err := spans.Run(ctx, "sortedlist.soak.trial", func(ctx context.Context, span trace.Span) error {
		var err error

		switch cfg.Elements {
		case ElementsNatural:
			err = runTyped(ctx, cfg, seed, compare.NaturalString(), naturalValue(cfg.KeySpace), &res)
		case ElementsCollated:
			tag := language.Make(cfg.Locale)
			err = runTyped(ctx, cfg, seed, compare.Collated(tag, collate.IgnoreCase), collatedValue(cfg.KeySpace), &res)
		default:
			err = runTyped(ctx, cfg, seed, compare.Natural[int](), intValue(cfg.KeySpace), &res)
		}

		span.SetAttributes(
			attribute.Int("operations", res.Operations),
			attribute.Int("size", res.Size),
			attribute.Int("height", res.Height),
		)

		return err
	},
		spans.WithAttributes(
			attribute.Int("trial", index),
			attribute.Int64("seed", int64(seed)), //nolint:gosec
			attribute.String("elements", cfg.Elements),
		),
		spans.WithErrorMessage("soak trial failed"),
	)

	res.Duration = time.Since(start)
	res.Err = err

	trialDuration.WithLabelValues(cfg.Elements, strconv.FormatBool(err != nil)).Observe(res.Duration.Seconds())

	if err != nil {
		invariantFailures.WithLabelValues(res.FailedOp).Inc()
	}

	return res
}

func intValue(keySpace int) func(*rand.Rand) int {
	return func(r *rand.Rand) int {
		return r.IntN(keySpace)
	}
}

func naturalValue(keySpace int) func(*rand.Rand) string {
	return func(r *rand.Rand) string {
		n := r.IntN(keySpace)
		if r.IntN(4) == 0 {
			return fmt.Sprintf("item%04d", n)
		}

		return "item" + strconv.Itoa(n)
	}
}

var collatedWords = []string{
	"resume", "Résumé", "RESUME", "cote", "côte", "coté", "côté", "apple", "Äpfel", "zebra",
}

func collatedValue(keySpace int) func(*rand.Rand) string {
	return func(r *rand.Rand) string {
		return collatedWords[r.IntN(len(collatedWords))] + " " + strconv.Itoa(r.IntN(keySpace))
	}
}

// trial drives one list and a plain sorted slice through the same random
// operations. Both place an element before the elements it equals, so their
// contents must match element for element.
type trial[E comparable] struct {
	cfg   Config
	rng   *rand.Rand
	list  *sortedlist.List[E]
	cmp   compare.Comparator[E]
	model []E
	gen   func(*rand.Rand) E
	step  int
}

type operation[E comparable] struct {
	name   string
	weight int
	apply  func(ctx context.Context) error
}

func runTyped[E comparable](
	ctx context.Context, cfg Config, seed uint64, c compare.Comparator[E], gen func(*rand.Rand) E, res *TrialResult,
) error {
	var opts []sortedlist.Option[E]
	if cfg.Descending {
		opts = append(opts, sortedlist.WithDescending[E]())
	}

	list, err := sortedlist.New(c, opts...)
	if err != nil {
		return err
	}

	t := &trial[E]{
		cfg:  cfg,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), //nolint:gosec
		list: list,
		cmp:  list.Comparator(),
		gen:  gen,
	}

	ops := t.operations()
	total := 0

	for _, op := range ops {
		total += op.weight
	}

	log := logger.Get(ctx)
	log.Debug("soak trial started", "operations", cfg.Operations)

	for t.step = 0; t.step < cfg.Operations; t.step++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		op := pick(ops, t.rng.IntN(total))

		operationsTotal.WithLabelValues(op.name).Inc()
		res.Operations++

		if err := op.apply(ctx); err != nil {
			return t.fail(res, op.name, err)
		}

		if (t.step+1)%cfg.ValidateEvery == 0 {
			if err := t.check(ctx); err != nil {
				return t.fail(res, op.name, err)
			}
		}
	}

	if err := t.check(ctx); err != nil {
		return t.fail(res, "final", err)
	}

	res.Size = t.list.Size()
	res.Height = t.list.Height()

	res.Fingerprint, err = hashing.Xxhash64(t.list)
	if err != nil {
		return t.fail(res, "fingerprint", err)
	}

	log.Debug("soak trial finished", "size", res.Size, "height", res.Height)

	return nil
}

func pick[E comparable](ops []operation[E], n int) operation[E] {
	for _, op := range ops {
		if n < op.weight {
			return op
		}

		n -= op.weight
	}

	return ops[len(ops)-1]
}

func (t *trial[E]) fail(res *TrialResult, op string, err error) error {
	res.FailedOp = op
	res.Size = t.list.Size()
	res.Height = t.list.Height()

	return logger.AnnotateError(err, "op", op, "step", t.step, "trial", res.Trial, "seed", res.Seed)
}

func (t *trial[E]) mismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMismatch, fmt.Sprintf(format, args...))
}

func (t *trial[E]) operations() []operation[E] {
	return []operation[E]{
		{name: "add", weight: 30, apply: t.add},
		{name: "add_unique", weight: 5, apply: t.addUnique},
		{name: "add_all", weight: 4, apply: t.addAll},
		{name: "remove", weight: 15, apply: t.remove},
		{name: "remove_at", weight: 12, apply: t.removeAt},
		{name: "get", weight: 10, apply: t.get},
		{name: "index_of", weight: 8, apply: t.indexOf},
		{name: "bounds", weight: 5, apply: t.bounds},
		{name: "iterator", weight: 6, apply: t.iterate},
		{name: "sublist", weight: 2, apply: t.subList},
		{name: "clone", weight: 2, apply: t.clone},
		{name: "resort", weight: 1, apply: t.resort},
		{name: "clear", weight: 1, apply: t.clear},
	}
}

// lower is the number of model elements that sort strictly before v.
func (t *trial[E]) lower(v E) int {
	return sort.Search(len(t.model), func(i int) bool { return t.cmp(t.model[i], v) >= 0 })
}

// upper is the number of model elements that sort before or equal to v.
func (t *trial[E]) upper(v E) int {
	return sort.Search(len(t.model), func(i int) bool { return t.cmp(t.model[i], v) > 0 })
}

func (t *trial[E]) insertModel(v E) {
	t.model = slices.Insert(t.model, t.lower(v), v)
}

func (t *trial[E]) add(context.Context) error {
	v := t.gen(t.rng)
	t.insertModel(v)

	return t.list.Add(v)
}

func (t *trial[E]) addUnique(context.Context) error {
	v := t.gen(t.rng)
	pos := t.lower(v)
	present := pos < len(t.model) && t.cmp(t.model[pos], v) == 0

	added, err := t.list.AddUnique(v)
	if err != nil {
		return err
	}

	if added == present {
		return t.mismatch("AddUnique(%v) = %t with equal element present %t", v, added, present)
	}

	if added {
		t.insertModel(v)
	}

	return nil
}

func (t *trial[E]) addAll(context.Context) error {
	n := 1 + t.rng.IntN(maxBatch)
	if len(t.model) < bulkBelow && t.rng.IntN(2) == 0 {
		n = 1 + t.rng.IntN(len(t.model)+2) //nolint:mnd
	}

	batch := make([]E, n)

	for i := range batch {
		batch[i] = t.gen(t.rng)
		t.insertModel(batch[i])
	}

	return t.list.AddAll(batch...)
}

func (t *trial[E]) remove(context.Context) error {
	v := t.gen(t.rng)
	pos := t.lower(v)
	present := pos < len(t.model) && t.cmp(t.model[pos], v) == 0

	removed, err := t.list.Remove(v)
	if err != nil {
		return err
	}

	got, ok := removed.Get()
	if ok != present {
		return t.mismatch("Remove(%v) removed %t, want %t", v, ok, present)
	}

	if !ok {
		return nil
	}

	if got != t.model[pos] {
		return t.mismatch("Remove(%v) removed %v, want %v", v, got, t.model[pos])
	}

	t.model = slices.Delete(t.model, pos, pos+1)

	return nil
}

func (t *trial[E]) removeAt(context.Context) error {
	if len(t.model) == 0 {
		if _, err := t.list.RemoveAt(0); err == nil {
			return t.mismatch("RemoveAt(0) on an empty list succeeded")
		}

		return nil
	}

	i := t.rng.IntN(len(t.model))

	got, err := t.list.RemoveAt(i)
	if err != nil {
		return err
	}

	if got != t.model[i] {
		return t.mismatch("RemoveAt(%d) = %v, want %v", i, got, t.model[i])
	}

	t.model = slices.Delete(t.model, i, i+1)

	return nil
}

func (t *trial[E]) get(context.Context) error {
	i := t.rng.IntN(len(t.model)+2) - 1

	got, err := t.list.Get(i)
	if i < 0 || i >= len(t.model) {
		if err == nil {
			return t.mismatch("Get(%d) on size %d succeeded", i, len(t.model))
		}

		return nil
	}

	if err != nil {
		return err
	}

	if got != t.model[i] {
		return t.mismatch("Get(%d) = %v, want %v", i, got, t.model[i])
	}

	return nil
}

func (t *trial[E]) indexOf(context.Context) error {
	v := t.gen(t.rng)
	lo, hi := t.lower(v), t.upper(v)

	first, last := -1, -1
	if lo < hi {
		first, last = lo, hi-1
	}

	if got := t.list.IndexOf(v); got != first {
		return t.mismatch("IndexOf(%v) = %d, want %d", v, got, first)
	}

	if got := t.list.LastIndexOf(v); got != last {
		return t.mismatch("LastIndexOf(%v) = %d, want %d", v, got, last)
	}

	if got := t.list.Contains(v); got != (first >= 0) {
		return t.mismatch("Contains(%v) = %t", v, got)
	}

	return nil
}

func (t *trial[E]) bounds(context.Context) error {
	v := t.gen(t.rng)
	lo, hi := t.lower(v), t.upper(v)

	orMissing := func(rank int) int {
		if rank >= len(t.model) {
			return -1
		}

		return rank
	}

	checks := []struct {
		name      string
		got, want int
	}{
		{"GreaterIndexOf", t.list.GreaterIndexOf(v), orMissing(hi)},
		{"GreaterOrEqualIndexOf", t.list.GreaterOrEqualIndexOf(v), orMissing(lo)},
		{"SmallerIndexOf", t.list.SmallerIndexOf(v), lo - 1},
		{"SmallerOrEqualIndexOf", t.list.SmallerOrEqualIndexOf(v), hi - 1},
	}

	for _, c := range checks {
		if c.got != c.want {
			return t.mismatch("%s(%v) = %d, want %d", c.name, v, c.got, c.want)
		}
	}

	return nil
}

// iterate opens an iterator at a random cursor and either removes the
// element after it or adds a new element through it.
func (t *trial[E]) iterate(context.Context) error {
	i := t.rng.IntN(len(t.model) + 1)

	it, err := t.list.Iterator(i)
	if err != nil {
		return err
	}

	if i < len(t.model) && t.rng.IntN(2) == 0 {
		got, err := it.Next()
		if err != nil {
			return err
		}

		if got != t.model[i] {
			return t.mismatch("Iterator(%d).Next() = %v, want %v", i, got, t.model[i])
		}

		if err := it.Remove(); err != nil {
			return err
		}

		t.model = slices.Delete(t.model, i, i+1)

		if it.NextIndex() != i {
			return t.mismatch("NextIndex after Remove = %d, want %d", it.NextIndex(), i)
		}

		return nil
	}

	v := t.gen(t.rng)
	pos := t.lower(v)

	if err := it.Add(v); err != nil {
		return err
	}

	t.model = slices.Insert(t.model, pos, v)

	want := i
	if pos <= i {
		want++
	}

	if it.NextIndex() != want {
		return t.mismatch("NextIndex after Add(%v) at %d = %d, want %d", v, i, it.NextIndex(), want)
	}

	return nil
}

func (t *trial[E]) subList(ctx context.Context) error {
	from := t.rng.IntN(len(t.model) + 1)
	to := from + t.rng.IntN(len(t.model)-from+1)

	sub, err := t.list.SubList(from, to)
	if err != nil {
		return err
	}

	if err := validate.Validate(ctx, sub); err != nil {
		return err
	}

	if !slices.Equal(sub.Entries(), t.model[from:to]) {
		return t.mismatch("SubList(%d, %d) holds %v", from, to, sub.Entries())
	}

	return nil
}

// clone checks that changing a copy leaves the original untouched.
func (t *trial[E]) clone(context.Context) error {
	before, err := hashing.Xxh3(t.list)
	if err != nil {
		return err
	}

	c := t.list.Clone()

	copied, err := hashing.Xxh3(c)
	if err != nil {
		return err
	}

	if copied != before {
		return t.mismatch("clone fingerprint %s, want %s", copied, before)
	}

	if err := c.Add(t.gen(t.rng)); err != nil {
		return err
	}

	after, err := hashing.Xxh3(t.list)
	if err != nil {
		return err
	}

	if after != before {
		return t.mismatch("adding to a clone changed the original")
	}

	return nil
}

func (t *trial[E]) resort(context.Context) error {
	return t.list.Resort()
}

func (t *trial[E]) clear(context.Context) error {
	if t.rng.IntN(clearOneIn) != 0 {
		return nil
	}

	t.model = t.model[:0]

	return t.list.Clear()
}

// check runs the full invariant validation and compares the contents.
func (t *trial[E]) check(ctx context.Context) error {
	if err := validate.Validate(ctx, t.list); err != nil {
		return err
	}

	if t.list.Size() != len(t.model) {
		return t.mismatch("size %d, want %d", t.list.Size(), len(t.model))
	}

	i := 0

	for v := range t.list.Seq() {
		if v != t.model[i] {
			return t.mismatch("element %d is %v, want %v", i, v, t.model[i])
		}

		i++
	}

	return nil
}
