package hoyolab

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexbotov/hoyogo/internal/cache"
)

// Config holds the configuration for a Client. The zero value (or nil)
// selects sensible defaults for the live service.
type Config struct {
	// Language is the x-rpc-language header value, e.g. "en-us".
	// A language carried in the credential's mi18nLang takes precedence.
	Language string
	// Timeout applies to the underlying HTTP client when none is supplied.
	Timeout time.Duration
	// CacheTTL is the default lifetime of cached responses.
	CacheTTL time.Duration
	// RetryDelay is the pause between rate-limit retries.
	RetryDelay time.Duration
	// MaxRetries bounds the rate-limit retry loop.
	MaxRetries int
	// LegacyErrorEnvelope restores the historical behavior of absorbing
	// undecodable responses into a retcode -9999 envelope instead of
	// returning a *DecodeError.
	LegacyErrorEnvelope bool
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
	// Routes overrides the per-game endpoint table, mainly for tests.
	Routes map[Game]Routes
	// AccountsURL overrides the account-binding endpoint, mainly for tests.
	AccountsURL string
	// DiaryURL overrides the traveler's diary endpoint, mainly for tests.
	DiaryURL string
}

// DefaultConfig returns the configuration used for a nil Config.
func DefaultConfig() *Config {
	return &Config{
		Language:   defaultLanguage,
		Timeout:    defaultTimeout,
		CacheTTL:   cache.DefaultTTL,
		RetryDelay: defaultRetryDelay,
		MaxRetries: defaultMaxRetries,
	}
}

func (c *Config) withDefaults() *Config {
	out := &Config{}
	if c != nil {
		*out = *c
	}
	if out.Language == "" {
		out.Language = defaultLanguage
	}
	if out.Timeout == 0 {
		out.Timeout = defaultTimeout
	}
	if out.CacheTTL == 0 {
		out.CacheTTL = cache.DefaultTTL
	}
	if out.RetryDelay == 0 {
		out.RetryDelay = defaultRetryDelay
	}
	if out.MaxRetries == 0 {
		out.MaxRetries = defaultMaxRetries
	}
	if out.HTTPClient == nil {
		out.HTTPClient = &http.Client{Timeout: out.Timeout}
	}
	if out.Routes == nil {
		out.Routes = defaultRoutes
	}
	if out.AccountsURL == "" {
		out.AccountsURL = defaultAccountsURL
	}
	if out.DiaryURL == "" {
		out.DiaryURL = defaultDiaryURL
	}
	return out
}

// Client is a HoYoLAB API client bound to one account credential.
type Client struct {
	cred        *Credential
	req         *Request
	routes      map[Game]Routes
	accountsURL string
	diaryURL    string
	language    string

	// postMu serializes operations that stage body fields on the shared
	// request before sending; body staging and send are not atomic.
	postMu sync.Mutex
}

// NewClient creates a client for the given credential. cfg may be nil.
func NewClient(cred *Credential, cfg *Config) (*Client, error) {
	cfg = cfg.withDefaults()
	req, err := NewRequest(cred, cfg)
	if err != nil {
		return nil, err
	}
	req.SetReferer(actReferer)

	language := cfg.Language
	if cred.Language != "" {
		language = cred.Language
	}

	return &Client{
		cred:        cred,
		req:         req,
		routes:      cfg.Routes,
		accountsURL: cfg.AccountsURL,
		diaryURL:    cfg.DiaryURL,
		language:    language,
	}, nil
}

// Request exposes the underlying request for callers that need endpoints
// this client does not wrap.
func (c *Client) Request() *Request {
	return c.req
}

// Close releases the client's background resources. The client must not
// be used after Close.
func (c *Client) Close() {
	c.req.Close()
}

func (c *Client) routesFor(game Game) (Routes, error) {
	rt, ok := c.routes[game]
	if !ok {
		return Routes{}, fmt.Errorf("hoyolab: unknown game %q", game)
	}
	return rt, nil
}

// gameFor maps a game_biz marker back to a Game using the client's own
// route table, so overridden GameBiz values resolve correctly. Returns ""
// for markers no configured game carries.
func (c *Client) gameFor(biz string) Game {
	for game, rt := range c.routes {
		if rt.GameBiz == biz {
			return game
		}
	}
	return ""
}

// call sends a GET/POST and unwraps the envelope, converting a non-zero
// retcode into an *APIError.
func (c *Client) call(ctx context.Context, rawURL, method string, ttl time.Duration) (json.RawMessage, error) {
	resp, err := c.req.Send(ctx, rawURL, method, ttl)
	if err != nil {
		return nil, err
	}
	if resp.Retcode != RetcodeOK {
		return nil, &APIError{Retcode: resp.Retcode, Message: resp.Message}
	}
	return resp.Data, nil
}

func (c *Client) callInto(ctx context.Context, rawURL, method string, ttl time.Duration, out any) error {
	data, err := c.call(ctx, rawURL, method, ttl)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{URL: rawURL, Err: err}
	}
	return nil
}

// GameAccounts lists the game accounts bound to the credential's account.
func (c *Client) GameAccounts(ctx context.Context) ([]GameAccount, error) {
	var data struct {
		List []GameAccount `json:"list"`
	}
	if err := c.callInto(ctx, c.accountsURL, http.MethodGet, 0, &data); err != nil {
		return nil, err
	}
	return data.List, nil
}

// DailyInfo returns the current month's check-in state for the game.
func (c *Client) DailyInfo(ctx context.Context, game Game) (*DailyInfo, error) {
	rt, err := c.routesFor(game)
	if err != nil {
		return nil, err
	}
	var info DailyInfo
	if err := c.callInto(ctx, rt.DailyURL+"/info?act_id="+rt.ActID, http.MethodGet, 0, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DailyRewards returns the month's award calendar for the game. The
// calendar only changes monthly, so it is cached for an hour.
func (c *Client) DailyRewards(ctx context.Context, game Game) (*DailyRewards, error) {
	rt, err := c.routesFor(game)
	if err != nil {
		return nil, err
	}
	var rewards DailyRewards
	if err := c.callInto(ctx, rt.DailyURL+"/home?act_id="+rt.ActID, http.MethodGet, time.Hour, &rewards); err != nil {
		return nil, err
	}
	return &rewards, nil
}

// DailyReward returns the award for a 1-based day of the current month.
func (c *Client) DailyReward(ctx context.Context, game Game, day int) (*DailyReward, error) {
	if max := daysInCurrentMonth(); day < 1 || day > max {
		return nil, fmt.Errorf("hoyolab: day %d out of range for current month (1-%d)", day, max)
	}
	rewards, err := c.DailyRewards(ctx, game)
	if err != nil {
		return nil, err
	}
	if day > len(rewards.Awards) {
		return nil, fmt.Errorf("hoyolab: day %d beyond the %d published awards", day, len(rewards.Awards))
	}
	return &rewards.Awards[day-1], nil
}

// DailyClaim claims today's check-in reward for the game. Claiming twice
// in one day returns an *APIError with RetcodeAlreadyClaimed.
func (c *Client) DailyClaim(ctx context.Context, game Game) error {
	rt, err := c.routesFor(game)
	if err != nil {
		return err
	}

	c.postMu.Lock()
	defer c.postMu.Unlock()

	c.req.SetSignature(true).SetBody(map[string]any{"act_id": rt.ActID})
	_, err = c.call(ctx, rt.DailyURL+"/sign", http.MethodPost, 0)
	c.req.SetSignature(false)
	return err
}

// ClaimAll claims the daily reward for every game with a bound account.
// Check-in states are fetched concurrently; games already claimed today
// are skipped. Per-game failures are reported in the results, not as an
// error return.
func (c *Client) ClaimAll(ctx context.Context) ([]ClaimResult, error) {
	accounts, err := c.GameAccounts(ctx)
	if err != nil {
		return nil, err
	}

	var games []Game
	seen := make(map[Game]bool)
	for _, account := range accounts {
		game := c.gameFor(account.GameBiz)
		if game == "" || seen[game] {
			continue
		}
		seen[game] = true
		games = append(games, game)
	}

	infos := make([]*DailyInfo, len(games))
	g, gctx := errgroup.WithContext(ctx)
	for i, game := range games {
		i, game := i, game
		g.Go(func() error {
			info, err := c.DailyInfo(gctx, game)
			if err != nil {
				return err
			}
			infos[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]ClaimResult, len(games))
	for i, game := range games {
		if infos[i].IsSign {
			results[i] = ClaimResult{Game: game, AlreadyClaimed: true}
			continue
		}
		results[i] = ClaimResult{Game: game, Err: c.DailyClaim(ctx, game)}
	}
	return results, nil
}

// Redeem redeems a gift code for the given game account. The credential
// must carry a cookie_token. The service strips no input itself, so the
// UTF-8 replacement character sometimes introduced by chat clients is
// removed before transmission.
func (c *Client) Redeem(ctx context.Context, game Game, uid int64, code string) error {
	rt, err := c.routesFor(game)
	if err != nil {
		return err
	}
	if rt.RedeemURL == "" {
		return ErrRedeemUnsupported
	}
	if c.cred.CookieToken == "" {
		return &MissingAccountContextError{Message: "cookie_token is required to redeem codes"}
	}
	region, err := RegionFor(game, uid)
	if err != nil {
		return err
	}

	code = strings.ReplaceAll(code, "�", "")

	q := url.Values{}
	q.Set("uid", strconv.FormatInt(uid, 10))
	q.Set("region", region)
	q.Set("lang", shortLang(c.language))
	q.Set("cdkey", code)
	q.Set("game_biz", rt.GameBiz)

	_, err = c.call(ctx, rt.RedeemURL+"?"+q.Encode(), http.MethodGet, 0)
	return err
}

// Record returns the game-record index (player statistics) for a UID.
// The payload structure is game-specific and passed through unchanged.
func (c *Client) Record(ctx context.Context, game Game, uid int64) (json.RawMessage, error) {
	rt, err := c.routesFor(game)
	if err != nil {
		return nil, err
	}
	region, err := RegionFor(game, uid)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("role_id", strconv.FormatInt(uid, 10))
	q.Set("server", region)

	return c.call(ctx, rt.RecordURL+"?"+q.Encode(), http.MethodGet, 0)
}

// Diary returns the Genshin traveler's diary month info for a UID.
// month is 1-12; zero selects the current month. The payload is passed
// through unchanged.
func (c *Client) Diary(ctx context.Context, uid int64, month int) (json.RawMessage, error) {
	region, err := GenshinRegion(uid)
	if err != nil {
		return nil, err
	}
	if month == 0 {
		month = int(time.Now().Month())
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("hoyolab: month %d out of range", month)
	}

	q := url.Values{}
	q.Set("uid", strconv.FormatInt(uid, 10))
	q.Set("region", region)
	q.Set("month", strconv.Itoa(month))

	return c.call(ctx, c.diaryURL+"?"+q.Encode(), http.MethodGet, 0)
}

func daysInCurrentMonth() int {
	now := time.Now()
	return time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
}

func shortLang(lang string) string {
	short, _, _ := strings.Cut(lang, "-")
	return short
}
