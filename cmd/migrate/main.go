// Command migrate applies the SQL migrations in db/migrations against the
// configured database.
//
// Usage:
//
//	migrate up        apply all pending migrations
//	migrate down      revert everything
//	migrate steps N   apply N migrations (negative N reverts)
//	migrate version   print the current schema version
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"complyhub/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("migrate: loading config: %v", err)
	}

	m, err := migrate.New("file://db/migrations", cfg.DB.DSN())
	if err != nil {
		log.Fatalf("migrate: opening migration source: %v", err)
	}
	defer m.Close()

	switch os.Args[1] {
	case "up":
		report(m.Up(), "schema migrated up")
	case "down":
		report(m.Down(), "schema migrated down")
	case "steps":
		if len(os.Args) < 3 {
			log.Fatal("migrate: steps needs a count")
		}
		n, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatalf("migrate: bad step count %q: %v", os.Args[2], err)
		}
		report(m.Steps(n), fmt.Sprintf("applied %d step(s)", n))
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("migrate: reading version: %v", err)
		}
		fmt.Printf("schema version %d (dirty=%v)\n", version, dirty)
	default:
		usage()
	}
}

func report(err error, done string) {
	switch err {
	case nil:
		log.Println("migrate:", done)
	case migrate.ErrNoChange:
		log.Println("migrate: schema already up to date")
	default:
		log.Fatalf("migrate: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: migrate <up|down|steps N|version>")
	os.Exit(2)
}
