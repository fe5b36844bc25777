package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/skilllink/skilllink/internal/client/backend"
	"github.com/skilllink/skilllink/internal/client/config"
	"github.com/skilllink/skilllink/internal/client/media"
	"github.com/skilllink/skilllink/internal/client/services"
	"github.com/skilllink/skilllink/internal/logging"
)

type App struct {
	config   *config.Config
	sessions *services.SessionService
	profiles *services.ProfileService
	skills   *services.SkillService
	uploader *media.Uploader
	log      logging.Logger
	reader   *bufio.Reader

	email string // shown in the prompt while logged in
}

// NewApp wires the REST client, storage client, and services for the
// configured project.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	rest := backend.NewRestClient(cfg.ProjectURL, cfg.AnonKey, cfg.RequestTimeout, log)

	storage, err := backend.NewS3Storage(ctx, cfg.ProjectURL, backend.StorageOptions{
		Region:   cfg.StorageRegion,
		AccessID: cfg.StorageAccessID,
		Secret:   cfg.StorageSecret,
	})
	if err != nil {
		return nil, err
	}

	sessions := services.NewSessionService(rest, cfg.SessionStaleAfter, log)

	return &App{
		config:   cfg,
		sessions: sessions,
		profiles: services.NewProfileService(rest, log),
		skills:   services.NewSkillService(rest, sessions, log),
		uploader: media.NewUploader(storage, cfg.StorageBucket, log),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.email != ""
}

// getStatus renders the prompt suffix, e.g. "(alice@example.com)".
func (a *App) getStatus() string {
	if a.email == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.email)
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Println("Welcome to SkillLink CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
