package cmd

import (
	"fmt"

	"github.com/plexforge/kometa-studio/internal/config"
	"github.com/plexforge/kometa-studio/pkg/crypto"
	"github.com/plexforge/kometa-studio/pkg/log"
	"github.com/plexforge/kometa-studio/pkg/store"
	"github.com/plexforge/kometa-studio/pkg/store/repos"
)

// studio bundles the opened profile store and its repositories for one
// command invocation.
type studio struct {
	cfg      *config.Config
	store    store.Store
	profiles *repos.ProfileRepo
	secrets  *repos.SecretsRepo
	sealer   *crypto.Sealer
}

// openStudio loads the tool config, opens the profile store, and builds the
// repositories. Callers must Close when done.
func openStudio() (*studio, error) {
	cfg, err := loadToolConfig()
	if err != nil {
		return nil, err
	}

	key, err := crypto.LoadKey(cfg.KeyOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to load sealing key: %w", err)
	}
	sealer, err := crypto.NewSealer(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sealer: %w", err)
	}

	s := store.NewBadgerStore(log.GetDefaultLogger().WithComponent("store"))
	if err := s.Open(cfg.StorePath()); err != nil {
		sealer.Zeroize()
		return nil, fmt.Errorf("failed to open profile store: %w", err)
	}

	return &studio{
		cfg:      cfg,
		store:    s,
		profiles: repos.NewProfileRepo(s),
		secrets:  repos.NewSecretsRepo(s, sealer),
		sealer:   sealer,
	}, nil
}

// Close releases the store and wipes the sealing key.
func (s *studio) Close() {
	if err := s.store.Close(); err != nil {
		log.Warn("Failed to close profile store", log.Err(err))
	}
	s.sealer.Zeroize()
}
