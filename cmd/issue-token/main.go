// Command issue-token signs a bearer token accepted by album-service.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"album-service/internal/auth"
	cl "album-service/pkg/catelog"
)

func main() {
	subject := flag.String("subject", "", "token subject")
	role := flag.String("role", string(cl.RoleMember), "role claim (coach or member)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	secret := flag.String("secret", os.Getenv("ALBUM_SERVICE_JWT_SECRET"), "HMAC secret, defaults to $ALBUM_SERVICE_JWT_SECRET")
	flag.Parse()

	if *subject == "" {
		log.Fatal("-subject is required")
	}
	if *secret == "" {
		log.Fatal("-secret or ALBUM_SERVICE_JWT_SECRET is required")
	}
	r := cl.ParseRole(*role)
	if r == cl.RoleUnknown {
		log.Fatalf("unknown role %q", *role)
	}

	tok, err := auth.NewJWT(*secret, nil).Issue(*subject, r, *ttl)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(tok)
}
