// Command admintoken issues a signed bearer token for the admin routes using
// the same JWT_SECRET and JWT_ISSUER as the server.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/authlend-api/internal/auth"
	"github.com/anyulbade/authlend-api/internal/config"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	subject := flag.String("sub", "admin", "token subject")
	roles := flag.String("roles", auth.RoleAdmin, "comma separated roles")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg := config.Load()
	tokens, err := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer)
	if err != nil {
		log.Fatal().Err(err).Msg("JWT_SECRET must be set")
	}

	token, err := tokens.GenerateToken(*subject, strings.Split(*roles, ","), *ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to sign token")
	}

	fmt.Println(token)
}
