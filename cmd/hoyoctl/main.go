// hoyoctl is a small command-line front end for the hoyolab client:
// it lists bound game accounts, claims daily check-in rewards and
// redeems gift codes.
//
// Configuration comes from the environment (optionally a .env file):
//
//	HOYOGO_COOKIE  raw browser cookie, ltoken and ltuid required
//	HOYOGO_LANG    response language, default en-us
//	HOYOGO_GAME    target game for redeem: genshin, honkai3rd or hkrpg
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/alexbotov/hoyogo/internal/config"
	"github.com/alexbotov/hoyogo/pkg/hoyolab"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.Cookie == "" {
		log.Fatal("HOYOGO_COOKIE is required")
	}

	cred, err := hoyolab.ParseCookie(cfg.Cookie)
	if err != nil {
		log.Fatalf("Invalid cookie: %v", err)
	}
	client, err := hoyolab.NewClient(cred, &hoyolab.Config{
		Language: cfg.Language,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	switch os.Args[1] {
	case "accounts":
		runAccounts(ctx, client)
	case "claim":
		runClaim(ctx, client)
	case "redeem":
		if len(os.Args) < 3 {
			usage()
		}
		runRedeem(ctx, client, hoyolab.Game(cfg.Game), os.Args[2])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: hoyoctl <accounts|claim|redeem CODE>")
	os.Exit(2)
}

func runAccounts(ctx context.Context, client *hoyolab.Client) {
	accounts, err := client.GameAccounts(ctx)
	if err != nil {
		log.Fatalf("Failed to list accounts: %v", err)
	}
	for _, a := range accounts {
		fmt.Printf("%-12s %-20s lv.%-3d %s (%s)\n", a.GameBiz, a.Nickname, a.Level, a.GameUID, a.RegionName)
	}
}

func runClaim(ctx context.Context, client *hoyolab.Client) {
	results, err := client.ClaimAll(ctx)
	if err != nil {
		log.Fatalf("Failed to claim: %v", err)
	}
	for _, res := range results {
		switch {
		case res.AlreadyClaimed:
			fmt.Printf("%-10s already claimed today\n", res.Game)
		case res.Err != nil:
			fmt.Printf("%-10s failed: %v\n", res.Game, res.Err)
		default:
			fmt.Printf("%-10s claimed\n", res.Game)
		}
	}
}

func runRedeem(ctx context.Context, client *hoyolab.Client, game hoyolab.Game, code string) {
	accounts, err := client.GameAccounts(ctx)
	if err != nil {
		log.Fatalf("Failed to list accounts: %v", err)
	}

	var uid int64
	for _, a := range accounts {
		if a.Game() != game {
			continue
		}
		uid, err = strconv.ParseInt(a.GameUID, 10, 64)
		if err != nil {
			log.Fatalf("Account uid %q is not numeric: %v", a.GameUID, err)
		}
		break
	}
	if uid == 0 {
		log.Fatalf("No %s account bound to this cookie", game)
	}

	if err := client.Redeem(ctx, game, uid, code); err != nil {
		log.Fatalf("Redeem failed: %v", err)
	}
	fmt.Printf("Redeemed %s for %s uid %d\n", code, game, uid)
}
