// Command reconcile tops up every account's attestation log to match its
// counter, attributing the synthetic records to the given admin.
//
// Usage:
//
//	reconcile -admin <member-id>
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	accountrepo "github.com/heartmarshall/vouchd/internal/adapter/postgres/account"
	attestationrepo "github.com/heartmarshall/vouchd/internal/adapter/postgres/attestation"
	"github.com/heartmarshall/vouchd/internal/domain"
	"github.com/heartmarshall/vouchd/internal/service/reconcile"
)

func main() {
	admin := flag.Int64("admin", 0, "member id the synthetic records are attributed to")
	concurrency := flag.Int("concurrency", 4, "accounts repaired in parallel")
	flag.Parse()

	if *admin == 0 {
		log.Fatal("-admin is required")
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	svc := reconcile.NewService(
		slog.Default(),
		accountrepo.New(pool),
		attestationrepo.New(pool),
		*concurrency,
	)

	reports, err := svc.ReconcileAll(ctx, domain.MemberID(*admin))
	if err != nil {
		log.Fatalf("reconcile: %v", err)
	}

	inserted := 0
	for _, r := range reports {
		inserted += r.Inserted
	}
	fmt.Printf("Reconciled %d accounts, inserted %d synthetic records.\n", len(reports), inserted)
}
