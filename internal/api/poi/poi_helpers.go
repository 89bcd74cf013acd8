package poi

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/FACorreiaa/tripmate-api/internal/types"
)

// CuratedKinds are the directory categories worth recommending to a traveller.
var CuratedKinds = []string{
	"natural",
	"national_parks",
	"gardens_and_parks",
	"museums",
	"historic",
	"monuments_and_memorials",
	"beaches",
	"amusements",
}

var curatedSet = toSet(CuratedKinds)

// blockedNames are generic labels that are not real attraction names.
var blockedNames = toSet([]string{
	"unnamed", "viewpoint", "park", "bank", "office",
	"courthouse", "parking", "post office", "school",
})

// boringWords mark utilitarian places; a name containing one is penalised.
var boringWords = toSet([]string{
	"bank", "office", "courthouse", "school", "parking",
	"hotel", "motel", "store", "church", "cemetery", "apartment",
})

const (
	minNameLength = 3
	ratingWeight  = 10
	curatedBonus  = 5
	crossRefBonus = 4
	boringPenalty = 8
)

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

// Acceptable reports whether a name may appear in an attraction list.
func Acceptable(name string) bool {
	n := strings.TrimSpace(name)
	if utf8.RuneCountInString(n) < minNameLength {
		return false
	}
	_, blocked := blockedNames[strings.ToLower(n)]
	return !blocked
}

// Score ranks a candidate; higher is better.
func Score(p types.PointOfInterest) int {
	s := ratingWeight * int(p.Rating)
	if anyIn(p.Kinds, curatedSet) {
		s += curatedBonus
	}
	if p.CrossRef != "" {
		s += crossRefBonus
	}
	if isBoring(p.Name) {
		s -= boringPenalty
	}
	return s
}

func isBoring(name string) bool {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if _, ok := boringWords[w]; ok {
			return true
		}
	}
	return false
}

type scored struct {
	poi   types.PointOfInterest
	score int
}

// Select filters, deduplicates (case-insensitively) and orders candidates,
// returning at most limit display names. Ties prefer the nearer place, then
// the alphabetically smaller name.
func Select(center types.Coordinate, pois []types.PointOfInterest, limit int) types.AttractionList {
	candidates := make([]scored, 0, len(pois))
	for _, p := range pois {
		p.Name = strings.TrimSpace(p.Name)
		if !Acceptable(p.Name) {
			continue
		}
		if p.DistanceKm <= 0 && p.Location.Valid() && center.Valid() {
			p.DistanceKm = center.DistanceKm(p.Location)
		}
		candidates = append(candidates, scored{poi: p, score: Score(p)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.poi.DistanceKm != b.poi.DistanceKm {
			return a.poi.DistanceKm < b.poi.DistanceKm
		}
		return a.poi.Name < b.poi.Name
	})

	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.poi.Name)
	}
	return uniqueNames(names, limit)
}

// uniqueNames keeps the first occurrence of each name, compared without case.
func uniqueNames(names []string, limit int) types.AttractionList {
	seen := make(map[string]struct{}, len(names))
	out := make(types.AttractionList, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// clampTarget applies the default and the hard cap to a requested list size.
func clampTarget(n int) int {
	if n <= 0 {
		return types.DefaultAttractionCount
	}
	if n > types.MaxAttractions {
		return types.MaxAttractions
	}
	return n
}
