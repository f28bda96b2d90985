package hoyolab

// Routes holds the per-game endpoint configuration. The live values are
// fixed by the service; tests substitute their own via Config.Routes.
type Routes struct {
	// DailyURL is the base of the check-in event API; the client appends
	// /info, /home and /sign.
	DailyURL string
	// ActID is the check-in event identifier sent with every daily call.
	ActID string
	// RecordURL is the game-record index endpoint (player statistics).
	RecordURL string
	// RedeemURL is the gift-code redemption endpoint. Empty when the game
	// has no redemption support.
	RedeemURL string
	// GameBiz is the service's business marker for the game.
	GameBiz string
}

// defaultRoutes is the live endpoint table, keyed by game.
var defaultRoutes = map[Game]Routes{
	GameGenshin: {
		DailyURL:  "https://sg-hk4e-api.hoyolab.com/event/sol",
		ActID:     "e202102251931481",
		RecordURL: "https://bbs-api-os.hoyolab.com/game_record/genshin/api/index",
		RedeemURL: "https://sg-hk4e-api.hoyolab.com/common/apicdkey/api/webExchangeCdkey",
		GameBiz:   "hk4e_global",
	},
	GameHonkai: {
		DailyURL:  "https://sg-public-api.hoyolab.com/event/mani",
		ActID:     "e202110291205111",
		RecordURL: "https://bbs-api-os.hoyolab.com/game_record/honkai3rd/api/index",
		GameBiz:   "bh3_global",
	},
	GameStarRail: {
		DailyURL:  "https://sg-public-api.hoyolab.com/event/luna/os",
		ActID:     "e202303301540311",
		RecordURL: "https://bbs-api-os.hoyolab.com/game_record/hkrpg/api/index",
		RedeemURL: "https://sg-hkrpg-api.hoyolab.com/common/apicdkey/api/webExchangeCdkey",
		GameBiz:   "hkrpg_global",
	},
}

const (
	// defaultAccountsURL lists the game accounts bound to the cookie's
	// HoYoLAB account.
	defaultAccountsURL = "https://api-account-os.hoyolab.com/binding/api/getUserGameRolesByCookie"

	// defaultDiaryURL is the Genshin traveler's diary month-info endpoint.
	defaultDiaryURL = "https://sg-hk4e-api.hoyolab.com/event/ysledgeros/month_info"

	// actReferer is the community front-end the signed endpoints expect as
	// Referer/Origin on POST calls.
	actReferer = "https://act.hoyolab.com"
)
