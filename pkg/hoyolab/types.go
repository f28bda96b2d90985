package hoyolab

import "encoding/json"

// Game identifies a supported HoYoverse game.
type Game string

const (
	GameGenshin  Game = "genshin"
	GameHonkai   Game = "honkai3rd"
	GameStarRail Game = "hkrpg"
)

// Response is the envelope every endpoint returns. Data is left opaque;
// typed operations decode it into their own result types.
type Response struct {
	Retcode int             `json:"retcode"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// GameAccount is a game account bound to the HoYoLAB account.
type GameAccount struct {
	GameBiz    string `json:"game_biz"`
	Region     string `json:"region"`
	GameUID    string `json:"game_uid"`
	Nickname   string `json:"nickname"`
	Level      int    `json:"level"`
	IsChosen   bool   `json:"is_chosen"`
	RegionName string `json:"region_name"`
	IsOfficial bool   `json:"is_official"`
}

// Game maps the account's game_biz marker back to a Game using the live
// endpoint table, or "" when the marker is unknown. Clients configured
// with overridden GameBiz values should resolve through their own route
// table instead.
func (a GameAccount) Game() Game {
	for game, r := range defaultRoutes {
		if r.GameBiz == a.GameBiz {
			return game
		}
	}
	return ""
}

// DailyInfo is the current month's check-in state for one game.
type DailyInfo struct {
	TotalSignDay int    `json:"total_sign_day"`
	Today        string `json:"today"`
	IsSign       bool   `json:"is_sign"`
	FirstBind    bool   `json:"first_bind"`
	IsSub        bool   `json:"is_sub"`
	Region       string `json:"region"`
}

// DailyReward is a single day's check-in award.
type DailyReward struct {
	Icon  string `json:"icon"`
	Name  string `json:"name"`
	Count int    `json:"cnt"`
}

// DailyRewards is the month's full award calendar.
type DailyRewards struct {
	Month   int           `json:"month"`
	Awards  []DailyReward `json:"awards"`
	Resign  bool          `json:"resign"`
	BizName string        `json:"biz"`
}

// ClaimResult is the outcome of claiming one game's daily reward,
// as produced by ClaimAll.
type ClaimResult struct {
	Game           Game
	AlreadyClaimed bool
	Err            error
}
