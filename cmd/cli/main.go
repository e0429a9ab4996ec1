package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nimasrn/resto-manager/internal/config"
	"github.com/nimasrn/resto-manager/pkg/logger"
	"github.com/nimasrn/resto-manager/pkg/store"
)

// main.go [--env=.env] [--dsn=resto-manager.db]
// Applies pending schema migrations and prints the resulting version.
func main() {
	defer logger.Sync()

	err := config.Load(getEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := config.Get().StoreDSN
	if v := getArg("--dsn="); v != "" {
		dsn = v
	}

	db := store.New(store.Config{DSN: dsn, Debug: config.Get().StoreDebug})
	defer db.Close()

	version, err := db.SchemaVersion(context.Background())
	if err != nil {
		logger.Error("migration: error running migrations", "error", err)
		os.Exit(1)
	}
	fmt.Printf("%s: schema version %d\n", dsn, version)
}

func getArg(prefix string) string {
	for _, v := range os.Args {
		if strings.HasPrefix(v, prefix) {
			return strings.TrimPrefix(v, prefix)
		}
	}
	return ""
}

func getEnvPath() string {
	if p := getArg("--env="); p != "" {
		if _, err := os.Stat(p); err != nil {
			logger.Error("failed to open the passed env file, got error" + err.Error())
			return ""
		}
		return p
	}
	if _, err := os.Stat(".env"); err != nil {
		return ""
	}
	return ".env"
}
