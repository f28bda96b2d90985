// Package hoyolab provides a client for the HoYoLAB overseas web API.
//
// HoYoLAB is the community and account service used by HoYoverse games
// (Genshin Impact, Honkai Impact 3rd, Honkai: Star Rail). This client
// implements cookie-based authentication, per-game account discovery,
// daily check-in rewards, gift-code redemption and player statistics.
//
// # Authentication
//
// All API requests are authenticated with the browser cookie of a logged-in
// HoYoLAB session. The required keys are ltoken and ltuid:
//
//	cred, err := hoyolab.ParseCookie("ltoken=...; ltuid=...; cookie_token=...")
//	client, err := hoyolab.NewClient(cred, nil)
//
//	// Discover bound game accounts
//	accounts, err := client.GameAccounts(ctx)
//
//	// Claim the daily check-in reward
//	err = client.DailyClaim(ctx, hoyolab.GameGenshin)
//
// Some endpoints (check-in claim, code redemption) additionally require a
// single-use dynamic-security token; the client attaches it automatically.
//
// # Error Handling
//
// Service-level failures are returned as *APIError with the raw retcode:
//
//	err := client.DailyClaim(ctx, hoyolab.GameGenshin)
//	if apiErr, ok := err.(*APIError); ok && apiErr.Retcode == RetcodeAlreadyClaimed {
//	    // reward was claimed earlier today
//	}
//
// Transport-level failures (non-2xx status, connection errors) are returned
// as *TransportError and are never retried. The service's rate-limit retcode
// (-2016) is retried automatically, once per second, up to 60 attempts.
//
// A Client is safe for concurrent use; identical in-flight requests are
// merged and successful responses are cached for a short TTL.
package hoyolab
