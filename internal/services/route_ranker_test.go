package services

import (
	"errors"
	"math/rand"
	"nyc-route-optimizer/internal/domain"
	"reflect"
	"slices"
	"testing"
)

func newTestRanker(t *testing.T) *Ranker {
	t.Helper()
	r, err := NewRanker(DefaultScoringConfig())
	if err != nil {
		t.Fatalf("new ranker: %v", err)
	}
	return r
}

func summaries(set *domain.RouteSet) []string {
	out := make([]string, 0, set.Len())
	for _, r := range set.Routes {
		out = append(out, r.Summary)
	}
	return out
}

func TestRankScenario(t *testing.T) {
	set, err := newTestRanker(t).Rank(scenarioCandidates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := summaries(set); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Fatalf("expected order A, B, C, got %v", got)
	}

	wantSeverity := []domain.TrafficSeverity{domain.TrafficLight, domain.TrafficHeavy, domain.TrafficSevere}
	for i, r := range set.Routes {
		if r.TrafficSeverity != wantSeverity[i] {
			t.Fatalf("%s: expected %s, got %s", r.Summary, wantSeverity[i], r.TrafficSeverity)
		}
	}

	b := set.Routes[1]
	if b.DelaySeconds != 150 || b.DelayRatio != 0.3 {
		t.Fatalf("B: expected delay 150s ratio 0.3, got %ds %g", b.DelaySeconds, b.DelayRatio)
	}

	best, ok := set.Best()
	if !ok || best.Summary != "A" {
		t.Fatalf("expected A as best, got %+v", best)
	}
	if set.Routes[2].EfficiencyScore != 0 {
		t.Fatalf("C: expected score 0, got %g", set.Routes[2].EfficiencyScore)
	}
}

func TestRankEmptyInput(t *testing.T) {
	set, err := newTestRanker(t).Rank(nil)
	if !errors.Is(err, domain.ErrNoRoutesAvailable) {
		t.Fatalf("expected ErrNoRoutesAvailable, got %v", err)
	}
	if errors.Is(err, domain.ErrEmptyRouteSet) {
		t.Fatal("empty input must not surface as ErrEmptyRouteSet")
	}
	if set != nil {
		t.Fatalf("expected nil set, got %+v", set)
	}
}

func TestRankRejectsMalformedCandidates(t *testing.T) {
	input := []domain.RouteCandidate{
		candidate("negative distance", -1, 100, 100),
		candidate("ok", 1000, 100, 110),
		candidate("negative traffic", 1000, 100, -5),
	}

	set, err := newTestRanker(t).Rank(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Len() != 1 || set.Routes[0].Summary != "ok" {
		t.Fatalf("expected only the valid candidate, got %v", summaries(set))
	}
	if len(set.Rejected) != 2 || set.Rejected[0].Index != 0 || set.Rejected[1].Index != 2 {
		t.Fatalf("unexpected rejections: %+v", set.Rejected)
	}
}

func TestRankAllMalformed(t *testing.T) {
	_, err := newTestRanker(t).Rank([]domain.RouteCandidate{candidate("bad", 1, -1, 1)})
	if !errors.Is(err, domain.ErrNoRoutesAvailable) {
		t.Fatalf("expected ErrNoRoutesAvailable, got %v", err)
	}
}

func TestRankTieBreak(t *testing.T) {
	input := []domain.RouteCandidate{
		candidate("first", 2000, 300, 300),
		candidate("second", 2000, 300, 300),
		candidate("third", 2000, 300, 300),
	}

	set, err := newTestRanker(t).Rank(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := summaries(set); !reflect.DeepEqual(got, []string{"first", "second", "third"}) {
		t.Fatalf("expected provider order preserved, got %v", got)
	}
	for _, r := range set.Routes[1:] {
		if r.EfficiencyScore != set.Routes[0].EfficiencyScore {
			t.Fatalf("expected identical scores, got %g and %g", r.EfficiencyScore, set.Routes[0].EfficiencyScore)
		}
	}
}

func TestRankTieBreakPrefersShorterTrafficDuration(t *testing.T) {
	// Equal time and distance weights make both candidates score exactly 25.
	r, err := NewRanker(ScoringConfig{Weights: ScoringWeights{Time: 0.5, Distance: 0.5}})
	if err != nil {
		t.Fatalf("new ranker: %v", err)
	}

	input := []domain.RouteCandidate{
		candidate("long drive", 1000, 2000, 2000),
		candidate("quick hop", 2000, 1000, 1000),
	}
	set, err := r.Rank(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := summaries(set); !reflect.DeepEqual(got, []string{"quick hop", "long drive"}) {
		t.Fatalf("expected shorter traffic duration first, got %v", got)
	}
}

func TestCompareScoredRoutesIsTransitive(t *testing.T) {
	scored := func(name string, score float64, traffic int) domain.ScoredRoute {
		return domain.ScoredRoute{
			RouteCandidate:  domain.RouteCandidate{Summary: name, DurationInTrafficSeconds: traffic},
			EfficiencyScore: score,
		}
	}
	// Adjacent pairs are within 1e-6 of each other but the ends are not.
	routes := []domain.ScoredRoute{
		scored("x", 50.0000015, 1000),
		scored("y", 50.0000008, 100),
		scored("z", 50.0, 10),
	}

	for _, a := range routes {
		for _, b := range routes {
			if compareScoredRoutes(a, b) != -compareScoredRoutes(b, a) {
				t.Fatalf("compare(%s, %s) is not antisymmetric", a.Summary, b.Summary)
			}
			for _, c := range routes {
				if compareScoredRoutes(a, b) <= 0 && compareScoredRoutes(b, c) <= 0 && compareScoredRoutes(a, c) > 0 {
					t.Fatalf("ordering cycle through %s, %s, %s", a.Summary, b.Summary, c.Summary)
				}
			}
		}
	}

	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	var want []string
	for _, p := range perms {
		in := []domain.ScoredRoute{routes[p[0]], routes[p[1]], routes[p[2]]}
		slices.SortStableFunc(in, compareScoredRoutes)
		got := summaries(&domain.RouteSet{Routes: in})
		if want == nil {
			want = got
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("order depends on input order: %v vs %v", got, want)
		}
	}
}

func TestRankIsIdempotentAndDoesNotMutateInput(t *testing.T) {
	input := scenarioCandidates()
	input[0].Warnings = []string{"tolls"}
	snapshot := scenarioCandidates()
	snapshot[0].Warnings = []string{"tolls"}

	r := newTestRanker(t)
	first, err := r.Rank(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := r.Rank(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output, got %+v and %+v", first, second)
	}
	if !reflect.DeepEqual(input, snapshot) {
		t.Fatalf("input was modified: %+v", input)
	}

	first.Routes[0].Warnings[0] = "changed"
	if input[0].Warnings[0] != "tolls" {
		t.Fatal("result shares warnings with the input")
	}
}

func TestRankMonotonicInTrafficDuration(t *testing.T) {
	r := newTestRanker(t)

	scoreOf := func(traffic int) float64 {
		// The tracked route has no delay (duration == traffic) and never holds the maximum.
		input := []domain.RouteCandidate{
			candidate("tracked", 3000, traffic, traffic),
			candidate("anchor", 5000, 1800, 1800),
		}
		set, err := r.Rank(input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, sr := range set.Routes {
			if sr.Summary == "tracked" {
				return sr.EfficiencyScore
			}
		}
		t.Fatal("tracked route missing from result")
		return 0
	}

	prev := scoreOf(1500)
	for traffic := 1400; traffic >= 100; traffic -= 100 {
		got := scoreOf(traffic)
		if got <= prev {
			t.Fatalf("traffic %ds: expected score above %g, got %g", traffic, prev, got)
		}
		prev = got
	}
}

func TestRankRandomizedProperties(t *testing.T) {
	r := newTestRanker(t)
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 500; iter++ {
		n := 1 + rng.Intn(6)
		input := make([]domain.RouteCandidate, n)
		for i := range input {
			free := rng.Intn(3600)
			input[i] = candidate("r", rng.Intn(50000), free, free+rng.Intn(2400)-300)
			if input[i].DurationInTrafficSeconds < 0 {
				input[i].DurationInTrafficSeconds = 0
			}
		}

		set, err := r.Rank(input)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", iter, err)
		}
		if set.Len() != n {
			t.Fatalf("iteration %d: expected %d routes, got %d", iter, n, set.Len())
		}
		for i, sr := range set.Routes {
			if sr.EfficiencyScore < 0 || sr.EfficiencyScore > 100 {
				t.Fatalf("iteration %d: score %g out of range", iter, sr.EfficiencyScore)
			}
			if i > 0 && sr.EfficiencyScore > set.Routes[i-1].EfficiencyScore+scoreEpsilon {
				t.Fatalf("iteration %d: routes not in descending score order", iter)
			}
		}
	}
}
