// Command devtoken mints a caller token for local testing against the
// booking endpoint, and can hash an admin password for ADMIN_PASSWORD_HASH.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/BruksfildServices01/showroom-scheduler/internal/auth"
	"github.com/BruksfildServices01/showroom-scheduler/internal/config"
)

func main() {
	var (
		subject  = flag.String("sub", "dev-user", "token subject")
		email    = flag.String("email", "", "token email claim")
		role     = flag.String("role", "", "token role claim")
		ttl      = flag.Duration("ttl", time.Hour, "token lifetime")
		password = flag.String("hash-password", "", "print a bcrypt hash for this password and exit")
	)
	flag.Parse()

	if *password != "" {
		hash, err := auth.HashPassword(*password)
		if err != nil {
			fail(err)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	if cfg.Auth.JWTSecret == "" {
		fail(fmt.Errorf("JWT_SECRET is not set"))
	}

	signer := auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience)
	token, err := signer.Sign(auth.Identity{
		Subject: *subject,
		Email:   *email,
		Role:    *role,
	}, *ttl, time.Now())
	if err != nil {
		fail(err)
	}

	fmt.Println(token)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "devtoken:", err)
	os.Exit(1)
}
