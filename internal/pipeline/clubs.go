package pipeline

import (
	"sort"
	"strings"
)

// Canonical names of the 20 current top-division clubs.
const (
	ClubArsenal        = "Arsenal"
	ClubAstonVilla     = "Aston Villa"
	ClubBournemouth    = "Bournemouth"
	ClubBrentford      = "Brentford"
	ClubBrighton       = "Brighton"
	ClubBurnley        = "Burnley"
	ClubChelsea        = "Chelsea"
	ClubCrystalPalace  = "Crystal Palace"
	ClubEverton        = "Everton"
	ClubFulham         = "Fulham"
	ClubLeeds          = "Leeds United"
	ClubLiverpool      = "Liverpool"
	ClubManCity        = "Manchester City"
	ClubManUnited      = "Manchester United"
	ClubNewcastle      = "Newcastle United"
	ClubNottmForest    = "Nottingham Forest"
	ClubSunderland     = "Sunderland"
	ClubTottenham      = "Tottenham"
	ClubWestHam        = "West Ham"
	ClubWolves         = "Wolverhampton Wanderers"
)

// bigSix is the fixed set of the six highest-profile clubs used by the
// club-size scoring tier.
var bigSix = map[string]bool{
	ClubArsenal:   true,
	ClubChelsea:   true,
	ClubLiverpool: true,
	ClubManCity:   true,
	ClubManUnited: true,
	ClubTottenham: true,
}

// clubAliases maps lower-cased substrings to canonical club names. Aliases
// are matched case-insensitively against title and body. Deliberately
// excludes ambiguous nicknames ("United", "City", "Blues") that would
// misfire on unrelated text.
var clubAliases = map[string]string{
	"arsenal":                 ClubArsenal,
	"gunners":                 ClubArsenal,
	"aston villa":             ClubAstonVilla,
	"villa":                   ClubAstonVilla,
	"bournemouth":             ClubBournemouth,
	"cherries":                ClubBournemouth,
	"brentford":               ClubBrentford,
	"brighton":                ClubBrighton,
	"burnley":                 ClubBurnley,
	"chelsea":                 ClubChelsea,
	"crystal palace":          ClubCrystalPalace,
	"everton":                 ClubEverton,
	"toffees":                 ClubEverton,
	"fulham":                  ClubFulham,
	"leeds":                   ClubLeeds,
	"liverpool":               ClubLiverpool,
	"manchester city":         ClubManCity,
	"man city":                ClubManCity,
	"manchester united":       ClubManUnited,
	"man united":              ClubManUnited,
	"man utd":                 ClubManUnited,
	"newcastle":               ClubNewcastle,
	"magpies":                 ClubNewcastle,
	"nottingham forest":       ClubNottmForest,
	"nottm forest":            ClubNottmForest,
	"sunderland":              ClubSunderland,
	"tottenham":               ClubTottenham,
	"spurs":                   ClubTottenham,
	"west ham":                ClubWestHam,
	"hammers":                 ClubWestHam,
	"wolverhampton":           ClubWolves,
	"wolves":                  ClubWolves,
}

// DetectClubs returns the sorted set of canonical club names mentioned in
// the given texts, by case-insensitive substring match against the alias
// dictionary.
func DetectClubs(texts ...string) []string {
	found := make(map[string]bool)
	for _, text := range texts {
		lower := strings.ToLower(text)
		for alias, canonical := range clubAliases {
			if strings.Contains(lower, alias) {
				found[canonical] = true
			}
		}
	}
	if len(found) == 0 {
		return nil
	}
	clubs := make([]string, 0, len(found))
	for club := range found {
		clubs = append(clubs, club)
	}
	sort.Strings(clubs)
	return clubs
}

// HasBigSix reports whether any of the given canonical clubs is in the
// Big 6 set.
func HasBigSix(clubs []string) bool {
	for _, club := range clubs {
		if bigSix[club] {
			return true
		}
	}
	return false
}

// bigSixIn returns the first Big 6 club in the sorted club list, "" if none.
func bigSixIn(clubs []string) string {
	for _, club := range clubs {
		if bigSix[club] {
			return club
		}
	}
	return ""
}

// mergeClubs returns the sorted union of two club sets.
func mergeClubs(a, b []string) []string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	set := make(map[string]bool, len(a)+len(b))
	for _, club := range a {
		set[club] = true
	}
	for _, club := range b {
		set[club] = true
	}
	merged := make([]string, 0, len(set))
	for club := range set {
		merged = append(merged, club)
	}
	sort.Strings(merged)
	return merged
}
