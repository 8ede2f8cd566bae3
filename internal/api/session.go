// Package api wires every exercise into one Session shared by the CLI shell
// and the HTTP server.
package api

import (
	"labkit/internal/config"
	"labkit/internal/fetch"
	"labkit/internal/repository/sqlite"
	"labkit/internal/services"
)

// Session holds one instance of each exercise.
type Session struct {
	Todos        *services.TodoList
	Colors       *services.ColorBoxes
	Roster       *services.Roster
	Courses      *services.Courses
	Catalog      *services.Catalog
	Cart         *services.Cart
	Portal       *services.Portal
	Loader       *services.Loader
	Calculator   *services.Calculator
	Quiz         *services.Quiz
	Registration *services.Registration
	Records      *services.Records

	config *config.Config
}

// NewSession builds a session from cfg. repo stores portal snapshots and may
// be nil. extra options are applied to both simulated calls after the
// configured delays, which lets tests inject a clock or random source.
func NewSession(cfg *config.Config, repo sqlite.Repository, extra ...fetch.Option) *Session {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	loaderOpts := append([]fetch.Option{
		fetch.WithDelay(cfg.Fetch.MinDelay, cfg.Fetch.MaxDelay),
	}, extra...)
	portalOpts := append([]fetch.Option{
		fetch.WithDelay(cfg.Portal.SaveDelay, cfg.Portal.SaveDelay),
		fetch.WithFailureRate(cfg.Portal.SaveFailureRate),
	}, extra...)

	return &Session{
		Todos:        services.NewTodoList(),
		Colors:       services.NewColorBoxes(),
		Roster:       services.NewRoster(),
		Courses:      services.NewCourses(),
		Catalog:      services.NewCatalog(),
		Cart:         services.NewCart(cfg.Cart.TaxRate),
		Portal:       services.NewPortal(repo, portalOpts...),
		Loader:       services.NewLoader(loaderOpts...),
		Calculator:   services.NewCalculator(cfg.Calculator.HistoryLimit),
		Quiz:         services.NewQuiz(),
		Registration: services.NewRegistration(),
		Records:      services.NewRecords(),
		config:       cfg,
	}
}

// Config returns the configuration the session was built from.
func (s *Session) Config() *config.Config {
	return s.config
}
