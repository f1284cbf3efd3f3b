package main

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"cubetea/internal/editor"
	"cubetea/internal/editorconfig"
	"cubetea/internal/env"
	"cubetea/internal/logger"
	"cubetea/internal/primitives"
	"cubetea/internal/store"
)

const defaultConfigPath = editorconfig.ConfigPath

// options are the persistent root flags.
var opts struct {
	configPath string
	envPath    string
	quiet      bool
}

// session is everything a subcommand needs to edit or render a scene.
type session struct {
	prefs editorconfig.Prefs
	log   *logger.Logger
	store *store.Store
	ed    *editor.Editor
}

// openSession loads .env, preferences and primitive definitions, then starts an editor on the
// default scene.
func openSession() (*session, error) {
	if err := env.Load(opts.envPath); err != nil {
		return nil, errors.Wrap(err, "load env")
	}
	prefs, err := editorconfig.LoadFrom(opts.configPath)
	if err != nil {
		return nil, err
	}
	if prefs, err = editorconfig.ApplyEnv(prefs); err != nil {
		return nil, err
	}
	if err := prefs.Validate(); err != nil {
		return nil, errors.Wrap(err, "preferences")
	}

	log := logger.Nop()
	if !opts.quiet {
		log = logger.New()
	}
	prims := primitives.NewRegistry()
	if err := prims.LoadDir(prefs.PrimitivesDir); err != nil {
		log.Warn("primitive definitions not loaded, using built-ins", zap.Error(err))
	}
	st := store.NewOS()
	return &session{
		prefs: prefs,
		log:   log,
		store: st,
		ed:    editor.New(prefs, st, prims, log),
	}, nil
}

func (s *session) Close() error {
	return s.log.Close()
}

func errExists(path string) error {
	return errors.Errorf("%s already exists (use --force to overwrite)", path)
}
