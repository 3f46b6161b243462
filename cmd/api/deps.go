package main

import (
	"context"
	"fmt"
	"log/slog"

	"nestfin/internal/domain/email"
	"nestfin/internal/domain/personal"
	"nestfin/internal/domain/report"
	"nestfin/internal/domain/transaction"
	"nestfin/internal/domain/user"
	"nestfin/internal/infrastructure/amqp"
	"nestfin/internal/infrastructure/mailer"
	"nestfin/internal/infrastructure/memory"
	"nestfin/internal/infrastructure/postgres"
	httphandlers "nestfin/internal/interfaces/http"
	"nestfin/internal/shared/auth"
	"nestfin/internal/shared/config"
	"nestfin/internal/shared/logger"
	"nestfin/internal/shared/messages"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	Handlers *httphandlers.Handlers
	JWT      *auth.JWT

	closers []func() error
}

type repositories struct {
	users        user.Repository
	transactions transaction.Repository
	personal     personal.Repository
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	deps := &Dependencies{}

	repos, err := deps.openRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sender, err := deps.newSender(cfg)
	if err != nil {
		deps.Close()
		return nil, err
	}

	msgs := messages.Default()
	if cfg.Messages.File != "" {
		if msgs, err = messages.Load(cfg.Messages.File); err != nil {
			deps.Close()
			return nil, err
		}
	}

	deps.JWT = auth.NewJWT(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.Expiration)

	users := user.NewService(repos.users, deps.JWT)
	transactions := transaction.NewService(repos.transactions)

	deps.Handlers = &httphandlers.Handlers{
		Auth:        httphandlers.NewAuthHandler(users),
		User:        httphandlers.NewUserHandler(users),
		Transaction: httphandlers.NewTransactionHandler(transactions),
		Report:      httphandlers.NewReportHandler(report.NewService(repos.transactions)),
		Personal:    httphandlers.NewPersonalHandler(personal.NewService(repos.personal)),
		Email:       httphandlers.NewEmailHandler(email.NewService(sender, msgs)),
	}
	return deps, nil
}

func (d *Dependencies) openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.Database.Driver == config.DriverMemory {
		slog.Warn("Using in-memory storage; data is lost on restart")
		return &repositories{
			users:        memory.NewUserRepository(),
			transactions: memory.NewTransactionRepository(),
			personal:     memory.NewPersonalRepository(),
		}, nil
	}

	connStr := cfg.Database.ConnectionString()
	if err := postgres.RunMigrations(connStr); err != nil {
		return nil, err
	}

	db, err := postgres.New(ctx, connStr, postgres.DefaultPool)
	if err != nil {
		return nil, err
	}
	d.closers = append(d.closers, db.Close)
	slog.Info("Connected to database", "host", cfg.Database.Host, "name", cfg.Database.DBName)

	return &repositories{
		users:        postgres.NewUserRepository(db),
		transactions: postgres.NewTransactionRepository(db),
		personal:     postgres.NewPersonalRepository(db),
	}, nil
}

// newSender publishes emails to AMQP when a broker is configured and only
// logs them otherwise.
func (d *Dependencies) newSender(cfg *config.Config) (email.Sender, error) {
	if cfg.AMQP.URL == "" {
		return mailer.NewLogSender(nil), nil
	}

	client, err := amqp.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
	if err != nil {
		return nil, fmt.Errorf("connect to AMQP: %w", err)
	}
	d.closers = append(d.closers, client.Close)
	slog.Info("Publishing emails to AMQP", "exchange", cfg.AMQP.Exchange, "queue", cfg.AMQP.Queue)
	return client, nil
}

// Close releases all resources held by dependencies, newest first.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			slog.Error("Failed to release resource", logger.FieldError, err)
		}
	}
	d.closers = nil
}
