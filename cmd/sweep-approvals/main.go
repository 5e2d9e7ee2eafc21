// Command sweep-approvals deletes pending approvals older than the TTL.
//
// Usage:
//
//	sweep-approvals [-ttl 24h]
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	approvalrepo "github.com/heartmarshall/vouchd/internal/adapter/postgres/approval"
)

func main() {
	ttl := flag.Duration("ttl", 24*time.Hour, "age after which an unresolved approval expires")
	flag.Parse()

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	purged, err := approvalrepo.New(pool).PurgeExpired(ctx, time.Now().Add(-*ttl))
	if err != nil {
		log.Fatalf("purge approvals: %v", err)
	}

	fmt.Printf("Purged %d expired pending approvals.\n", purged)
}
