package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/api"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/services"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads .env and the environment, then overlays SSM parameters
// when SSM_PARAMETER_PATH is set
func loadConfig(ctx context.Context) (*config.Config, error) {
	c := config.Load()
	if err := c.LoadSSM(ctx); err != nil {
		return nil, fmt.Errorf("loading SSM parameters: %w", err)
	}

	level, err := zerolog.ParseLevel(config.GetString(c, "LOG_LEVEL", "info"))
	if err != nil {
		log.Warn().Err(err).Msg("Unknown LOG_LEVEL, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	return c, nil
}

func openDatabase(c *config.Config, memory bool) (database.Database, error) {
	var (
		db  *gorm.DB
		err error
	)
	if memory {
		log.Warn().Msg("Using an in-memory database; data is lost on exit")
		db, err = database.OpenMemory()
	} else {
		log.Info().Str("db_type", config.GetString(c, "DB_TYPE", "postgres")).Msg("Connecting to database")
		db, err = database.Open(c)
	}
	if err != nil {
		return database.Database{}, err
	}
	return database.New(db), nil
}

func serve(ctx context.Context, memory bool) error {
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	currentDB, err := openDatabase(c, memory)
	if err != nil {
		return err
	}
	defer currentDB.Close()

	if err := currentDB.Migrate(); err != nil {
		return fmt.Errorf("migrating: %w", err)
	}

	images, err := services.ImageStoreFromConfig(ctx, c)
	if err != nil {
		return fmt.Errorf("configuring image uploads: %w", err)
	}

	var opts []api.Option
	if notifier := services.NotifiersFromConfig(c); notifier != nil {
		opts = append(opts, api.WithNotifier(notifier))
	}
	if images != nil {
		opts = append(opts, api.WithImageStore(images))
	}

	server, err := api.NewServer(c, currentDB, opts...)
	if err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	errChannel := make(chan error)

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Err(fatalErr).Msg("Closing server")

	server.ShutdownGracefully(30 * time.Second)
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
