package hoyolab

import "strconv"

// Region resolution maps a game UID to the server cluster it lives on.
// Each game keeps its own rule table; the discriminators differ (leading
// digit for Genshin and Star Rail, numeric ranges for Honkai Impact 3rd)
// and must not be unified.

// genshinRegions maps the leading UID digit to a Genshin server.
var genshinRegions = map[byte]string{
	'6': "os_usa",
	'7': "os_euro",
	'8': "os_asia",
	'9': "os_cht",
}

// starRailRegions maps the leading UID digit to a Star Rail server.
var starRailRegions = map[byte]string{
	'6': "prod_official_usa",
	'7': "prod_official_eur",
	'8': "prod_official_asia",
	'9': "prod_official_cht",
}

// honkaiRegionRanges maps half-open UID ranges to Honkai Impact 3rd servers.
var honkaiRegionRanges = []struct {
	low, high int64
	region    string
}{
	{10_000_000, 100_000_000, "overseas01"},
	{100_000_000, 200_000_000, "usa01"},
	{200_000_000, 300_000_000, "eur01"},
}

// GenshinRegion resolves a Genshin Impact UID to its overseas server.
func GenshinRegion(uid int64) (string, error) {
	return leadingDigitRegion(GameGenshin, uid, genshinRegions)
}

// StarRailRegion resolves a Honkai: Star Rail UID to its overseas server.
func StarRailRegion(uid int64) (string, error) {
	return leadingDigitRegion(GameStarRail, uid, starRailRegions)
}

// HonkaiRegion resolves a Honkai Impact 3rd UID to its overseas server.
func HonkaiRegion(uid int64) (string, error) {
	for _, r := range honkaiRegionRanges {
		if uid >= r.low && uid < r.high {
			return r.region, nil
		}
	}
	return "", &InvalidIdentifierError{Game: GameHonkai, UID: uid}
}

// RegionFor resolves a UID with the rule table of the given game.
func RegionFor(game Game, uid int64) (string, error) {
	switch game {
	case GameGenshin:
		return GenshinRegion(uid)
	case GameHonkai:
		return HonkaiRegion(uid)
	case GameStarRail:
		return StarRailRegion(uid)
	}
	return "", &InvalidIdentifierError{Game: game, UID: uid}
}

func leadingDigitRegion(game Game, uid int64, table map[byte]string) (string, error) {
	if uid <= 0 {
		return "", &InvalidIdentifierError{Game: game, UID: uid}
	}
	digits := strconv.FormatInt(uid, 10)
	if region, ok := table[digits[0]]; ok {
		return region, nil
	}
	return "", &InvalidIdentifierError{Game: game, UID: uid}
}
