package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Without arguments, prints a random value suitable for SESSION_SECRET.
// With a mise_session cookie value, verifies it against SESSION_SECRET and
// prints the session id and expiry.
func main() {
	if len(os.Args) < 2 {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating secret: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hex.EncodeToString(secret))
		return
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "Error: SESSION_SECRET environment variable must be set")
		fmt.Fprintln(os.Stderr, "Usage: SESSION_SECRET=secret go run scripts/session-token.go <cookie value>")
		os.Exit(1)
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(os.Args[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("session: %s\n", claims.Subject)
	if claims.ExpiresAt != nil {
		fmt.Printf("expires: %s (in %s)\n", claims.ExpiresAt.Time.Format(time.RFC3339), time.Until(claims.ExpiresAt.Time).Round(time.Second))
	}
}
