package mechanism_test

import (
	"math/rand"
	"testing"

	"github.com/clearmatch/clearmatch/pkg/market"
	"github.com/clearmatch/clearmatch/pkg/mechanism"
)

// randomMarket builds an N x N unit-capacity market where every
// participant ranks the full opposite side in a shuffled order. The seed
// is fixed so runs are comparable.
func randomMarket(n int, seed int64) *market.Market {
	rng := rand.New(rand.NewSource(seed))
	side := func() market.Side {
		s := market.Side{
			Capacities: make([]int, n),
			Prefs:      make([]market.PrefList, n),
		}
		for i := 0; i < n; i++ {
			s.Capacities[i] = 1
			prefs := make(market.PrefList, n)
			for j := range prefs {
				prefs[j] = market.ID(j + 1)
			}
			rng.Shuffle(n, func(a, b int) { prefs[a], prefs[b] = prefs[b], prefs[a] })
			s.Prefs[i] = prefs
		}
		return s
	}
	return &market.Market{Agents: side(), Objects: side()}
}

// BenchmarkTTC clears a dense 200x200 two-sided market per iteration.
func BenchmarkTTC(b *testing.B) {
	const n = 200
	mkt := randomMarket(n, 1)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := mechanism.TTC(mkt, nil, mechanism.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkHousingTTC runs the one-sided variant on 200 tenants who each
// start out owning their own house.
func BenchmarkHousingTTC(b *testing.B) {
	const n = 200
	mkt := randomMarket(n, 2)
	for i := range mkt.Objects.Prefs {
		mkt.Objects.Prefs[i] = market.PrefList{}
	}
	prio := market.DefaultPriority(n)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		own := market.NewOwnership(n, n)
		for a := market.ID(1); int(a) <= n; a++ {
			own.Transfer(a, a)
		}
		if _, err := mechanism.HousingTTC(mkt, prio, own, mechanism.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDeferredAcceptance measures the worst-ish case where long bump
// chains cascade through a dense 200x200 market.
func BenchmarkDeferredAcceptance(b *testing.B) {
	const n = 200
	mkt := randomMarket(n, 3)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := mechanism.DeferredAcceptance(mkt, mechanism.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}
