package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/furnistore/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   bridge backend
//	-d string   sqlite data directory
//	-n string   namespace
//	-k string   hex encryption key
//	-p string   PostgreSQL DSN
//	-r string   Redis address
//	-l string   log level
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-d", "-n", "-k", "-p", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "bridge backend (memory, sqlite, postgres, redis, s3)")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory for the sqlite backend")
	fs.StringVar(&cfg.Namespace, "n", cfg.Namespace, "namespace the stores are kept under")
	fs.StringVar(&cfg.EncryptionKey, "k", cfg.EncryptionKey, "hex AES key for sealing stored values")
	fs.StringVar(&cfg.PostgresDSN, "p", cfg.PostgresDSN, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
