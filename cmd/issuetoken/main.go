// Command issuetoken выпускает токен сессии для локальной разработки и ручной проверки API:
//
//	go run ./cmd/issuetoken -user demo-user -ttl 24h
//
// Ключ подписи берется из -secret или SECRET_KEY (или .env), как и у сервера;
// ключ по умолчанию не принимается.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/InQaaaaGit/logogen.git/internal/config"
	"github.com/InQaaaaGit/logogen.git/internal/middleware"
	"github.com/joho/godotenv"
)

func main() {
	userID := flag.String("user", "", "user ID to put into the token")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	secret := flag.String("secret", "", "signing key (defaults to SECRET_KEY)")
	flag.Parse()

	if err := run(*userID, *secret, *ttl); err != nil {
		log.Fatal(err)
	}
}

func run(userID, secret string, ttl time.Duration) error {
	if userID == "" {
		return errors.New("-user is required")
	}
	if secret == "" {
		secret = secretFromEnv()
	}
	cfg := config.Config{SecretKey: secret}
	if err := cfg.ValidateSecretKey(); err != nil {
		return err
	}

	token, err := middleware.IssueToken(userID, secret, ttl)
	if err != nil {
		return fmt.Errorf("error issuing token: %w", err)
	}

	fmt.Println(token)
	return nil
}

func secretFromEnv() string {
	_ = godotenv.Load()
	return os.Getenv("SECRET_KEY")
}
