package main

import (
	"context"
	"flag"
	"fmt"

	"content-ledger/pkg/cache"
	"content-ledger/pkg/config"
	"content-ledger/pkg/database"
	"content-ledger/pkg/jwt"
	"content-ledger/pkg/logger"
	ledgerApp "content-ledger/services/ledger/internal/app"
	"content-ledger/services/ledger/internal/dispatcher"
	"content-ledger/services/ledger/internal/entity"
)

var testPrincipals = []struct {
	address string
	role    string
}{
	{"ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM", "admin"},
	{"ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG", "creator"},
	{"ST3AM1A56AK2C1XAFJ4115ZSV26EB49BVQ10MGCS0", "creator"},
	{"ST2JHG361ZXG51QTKY2NQCVBPPRRE2KZB1HR05NNC", "viewer"},
}

func main() {
	var (
		tokensPerCreator = flag.Int("tokens", 3, "tokens to mint per creator")
		duration         = flag.Uint64("duration", 1000, "subscription length in blocks")
		amount           = flag.Uint64("amount", 100, "subscription price")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Redis unavailable, chain height will not be shared: %v", err)
		redisClient = nil
	}

	ctx := context.Background()
	ledger, err := ledgerApp.NewLedger(ctx, cfg, log, db, redisClient, nil)
	if err != nil {
		log.Error("Failed to build ledger: %v", err)
		panic(err)
	}

	seedLedger(ctx, ledger.Dispatcher, *tokensPerCreator, *duration, *amount, log)

	jwtService := jwt.NewService(cfg.JWTSecret)
	for _, p := range testPrincipals {
		token, err := jwtService.GenerateToken(p.address, p.role)
		if err != nil {
			log.Error("Failed to issue token for %s: %v", p.address, err)
			continue
		}
		log.Info("%s (%s): Bearer %s", p.address, p.role, token)
	}

	log.Info("Ledger seeded successfully!")
}

func seedLedger(ctx context.Context, d *dispatcher.Dispatcher, tokensPerCreator int, duration, amount uint64, log *logger.Logger) {
	var creators, viewers []string
	for _, p := range testPrincipals {
		if p.role == "creator" {
			creators = append(creators, p.address)
		} else {
			viewers = append(viewers, p.address)
		}
	}

	for _, creator := range creators {
		for i := 0; i < tokensPerCreator; i++ {
			uri := fmt.Sprintf("https://example.com/content/%s/%d", creator, i+1)
			result := d.Call(ctx, entity.Call{
				Contract: entity.ContractContentNFT,
				Function: "mint",
				Sender:   creator,
				Args:     []interface{}{uri},
			})
			if !result.Success {
				log.Error("Failed to mint %s: error %d", uri, result.Error)
				continue
			}
			log.Info("Minted %v for %s", result.Value, creator)
		}
	}

	for _, viewer := range viewers {
		for _, creator := range creators {
			result := d.Call(ctx, entity.Call{
				Contract: entity.ContractSubscription,
				Function: "create-subscription",
				Sender:   viewer,
				Args:     []interface{}{creator, duration, amount},
			})
			switch {
			case result.Success:
				log.Info("Subscribed %s to %s", viewer, creator)
			case result.Error == entity.ErrCodeConflict:
				log.Info("Subscription %s -> %s already active, skipping", viewer, creator)
			default:
				log.Error("Failed to subscribe %s to %s: error %d", viewer, creator, result.Error)
			}
		}
	}
}
