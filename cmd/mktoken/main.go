// FareLens | 2026
// main.go

// mktoken mints a signed access token for local development, so protected
// endpoints can be exercised with curl without a real identity provider.
//
//	go run ./cmd/mktoken -user $(uuidgen) -email dev@farelens.com
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/farelens/backend/internal/auth"
	"github.com/farelens/backend/internal/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	userID := flag.String("user", "", "subject user id (defaults to a fresh uuid)")
	email := flag.String("email", "dev@farelens.com", "email claim")
	tier := flag.String("tier", "free", "subscription tier claim")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	manager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		log.Fatalf("init jwt manager: %v", err)
	}

	subject := *userID
	if subject == "" {
		subject = uuid.NewString()
	}

	token, err := manager.CreateAccessToken(auth.AccessTokenClaims{
		UserID: subject,
		Email:  *email,
		Tier:   *tier,
	})
	if err != nil {
		log.Fatalf("create token: %v", err)
	}

	fmt.Printf("user_id: %s\n", subject)
	fmt.Printf("token:   %s\n", token)
}
