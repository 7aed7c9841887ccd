package ranking

import (
	"math"
	"sort"
	"strings"
)

// SortMode selects the primary comparison key for ordering offers.
type SortMode string

const (
	BestValue SortMode = "best_value" // composite score, best first
	LeadTime  SortMode = "lead_time"  // ascending lead time
	Price     SortMode = "price"      // ascending price
	Risk      SortMode = "risk"       // ascending risk-flag count
)

// Composite score weights. Lower price, shorter lead time and fewer risk
// flags all raise the score.
const (
	priceWeight = 0.5
	leadWeight  = 0.3
	riskWeight  = 0.2
)

// Offer is a supplier bid projected for comparison and display.
type Offer struct {
	BidID        string
	SupplierID   string
	SupplierName string
	Price        *float64
	LeadTimeDays *float64
	RiskFlags    int
}

// Badge marks an offer as the single best holder of one display category.
type Badge string

const (
	BadgeBestValue   Badge = "best_value"
	BadgeFastest     Badge = "fastest"
	BadgeLowestPrice Badge = "lowest_price"
)

// compareNullable orders two nullable numbers. Missing or non-finite values
// sort after present values when ascending and before them when descending.
func compareNullable(asc bool, a, b *float64) int {
	av, aok := finite(a)
	bv, bok := finite(b)

	if !aok && !bok {
		return 0
	}
	if !aok {
		if asc {
			return 1
		}
		return -1
	}
	if !bok {
		if asc {
			return -1
		}
		return 1
	}
	if av == bv {
		return 0
	}
	if (av < bv) == asc {
		return -1
	}
	return 1
}

func finite(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return *v, true
}

// Score computes the composite best-value score for an offer, normalized
// against the maxima across the offer set. Offers missing price or lead time
// score zero so they sink below complete offers.
func Score(o Offer, maxPrice, maxLead, maxRisk float64) float64 {
	price, pok := finite(o.Price)
	lead, lok := finite(o.LeadTimeDays)
	if !pok || !lok {
		return 0
	}

	score := 0.0
	if maxPrice > 0 {
		score += priceWeight * (1 - price/maxPrice)
	}
	if maxLead > 0 {
		score += leadWeight * (1 - lead/maxLead)
	}
	if maxRisk > 0 {
		score += riskWeight * (1 - float64(o.RiskFlags)/maxRisk)
	} else {
		score += riskWeight
	}
	return score
}

// CompareOffers orders two offers under the given mode. The tie-break cascade
// (lead time, price, supplier name, supplier id) guarantees a strict total
// order: no two distinct offers compare equal unless identical on every key.
func CompareOffers(a, b Offer, mode SortMode, maxPrice, maxLead, maxRisk float64) int {
	switch mode {
	case LeadTime:
		if c := compareNullable(true, a.LeadTimeDays, b.LeadTimeDays); c != 0 {
			return c
		}
	case Price:
		if c := compareNullable(true, a.Price, b.Price); c != 0 {
			return c
		}
	case Risk:
		if a.RiskFlags != b.RiskFlags {
			if a.RiskFlags < b.RiskFlags {
				return -1
			}
			return 1
		}
	default: // BestValue
		as := Score(a, maxPrice, maxLead, maxRisk)
		bs := Score(b, maxPrice, maxLead, maxRisk)
		if as != bs {
			if as > bs {
				return -1
			}
			return 1
		}
	}

	if c := compareNullable(true, a.LeadTimeDays, b.LeadTimeDays); c != 0 {
		return c
	}
	if c := compareNullable(true, a.Price, b.Price); c != 0 {
		return c
	}
	if c := strings.Compare(a.SupplierName, b.SupplierName); c != 0 {
		return c
	}
	return strings.Compare(a.SupplierID, b.SupplierID)
}

// SortOffers sorts offers in place under the given mode.
func SortOffers(offers []Offer, mode SortMode) {
	maxPrice, maxLead, maxRisk := maxima(offers)
	sort.SliceStable(offers, func(i, j int) bool {
		return CompareOffers(offers[i], offers[j], mode, maxPrice, maxLead, maxRisk) < 0
	})
}

// AssignBadges returns at most one holder per badge category, decided with
// the same comparators used for sorting.
func AssignBadges(offers []Offer) map[string][]Badge {
	badges := make(map[string][]Badge)
	if len(offers) == 0 {
		return badges
	}

	maxPrice, maxLead, maxRisk := maxima(offers)

	best := offers[0]
	fastest := offers[0]
	cheapest := offers[0]
	for _, o := range offers[1:] {
		if CompareOffers(o, best, BestValue, maxPrice, maxLead, maxRisk) < 0 {
			best = o
		}
		if CompareOffers(o, fastest, LeadTime, maxPrice, maxLead, maxRisk) < 0 {
			fastest = o
		}
		if CompareOffers(o, cheapest, Price, maxPrice, maxLead, maxRisk) < 0 {
			cheapest = o
		}
	}

	if _, ok := finite(best.Price); ok {
		badges[best.BidID] = append(badges[best.BidID], BadgeBestValue)
	}
	if _, ok := finite(fastest.LeadTimeDays); ok {
		badges[fastest.BidID] = append(badges[fastest.BidID], BadgeFastest)
	}
	if _, ok := finite(cheapest.Price); ok {
		badges[cheapest.BidID] = append(badges[cheapest.BidID], BadgeLowestPrice)
	}
	return badges
}

func maxima(offers []Offer) (maxPrice, maxLead, maxRisk float64) {
	for _, o := range offers {
		if v, ok := finite(o.Price); ok && v > maxPrice {
			maxPrice = v
		}
		if v, ok := finite(o.LeadTimeDays); ok && v > maxLead {
			maxLead = v
		}
		if float64(o.RiskFlags) > maxRisk {
			maxRisk = float64(o.RiskFlags)
		}
	}
	return
}

// ParseSortMode maps a query value to a SortMode, defaulting to BestValue.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case LeadTime, Price, Risk:
		return SortMode(s)
	default:
		return BestValue
	}
}
