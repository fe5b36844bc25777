package config

import (
	"flag"
	"os"

	"github.com/skilllink/skilllink/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   base URL of the backend project
//	-k string   anonymous API key
//	-b string   storage bucket for uploads
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-k", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ProjectURL, "u", cfg.ProjectURL, "base URL of the backend project")
	fs.StringVar(&cfg.AnonKey, "k", cfg.AnonKey, "anonymous API key")
	fs.StringVar(&cfg.StorageBucket, "b", cfg.StorageBucket, "storage bucket for uploads")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
