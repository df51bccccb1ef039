package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrichain/agrichain/accesscontrol"
	"github.com/agrichain/agrichain/config"
	"github.com/agrichain/agrichain/dashboard"
	"github.com/agrichain/agrichain/i18n"
	"github.com/agrichain/agrichain/qr"
	"github.com/agrichain/agrichain/repository"
	"github.com/agrichain/agrichain/server"
	"github.com/agrichain/agrichain/session"
	"github.com/agrichain/agrichain/srvreg"

	cmtcfg "github.com/cometbft/cometbft/config"
	cmtflags "github.com/cometbft/cometbft/libs/cli/flags"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/dgraph-io/badger/v4"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "config", "", "Path to a TOML or YAML config file")
}

func main() {
	// Parse command line flags
	flag.Parse()

	log.Println("=== Starting AgriChain ===")

	// Load configuration
	conf, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Reading config: %v", err)
	}
	if err := conf.Validate(); err != nil {
		log.Fatalf("Invalid configuration data: %v", err)
	}
	log.Printf("HTTP Port: %s", conf.HTTPPort)
	log.Printf("Database Driver: %s", conf.Database.Driver)

	// Create logger
	logger := cmtlog.NewTMLogger(cmtlog.NewSyncWriter(os.Stdout))
	logger, err = cmtflags.ParseLogLevel(conf.LogLevel, logger, cmtcfg.DefaultLogLevel)
	if err != nil {
		log.Fatalf("Failed to parse log level: %v", err)
	}

	// Connect to the registration database
	repo := repository.NewRepository(logger)
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), time.Minute)
	err = repo.ConnectDB(connectCtx, conf.Database.Driver, conf.GetDSN())
	cancelConnect()
	if err != nil {
		log.Fatalf("Connecting to database: %v", err)
	}
	defer repo.Close()

	if err := repo.Migrate(); err != nil {
		log.Fatalf("Migrating database: %v", err)
	}
	if err := repo.Seed(); err != nil {
		log.Fatalf("Seeding database: %v", err)
	}

	// Initialize Badger DB for session storage
	badgerOpts := badger.DefaultOptions(conf.Storage.BadgerPath).WithLogger(nil)
	if conf.Storage.BadgerPath == "" {
		badgerOpts = badgerOpts.WithInMemory(true)
	}
	db, err := badger.Open(badgerOpts)
	if err != nil {
		log.Fatalf("Opening badger database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Closing badger database: %v", err)
		}
	}()

	translator, err := i18n.NewTranslator(conf.I18n.DefaultLanguage)
	if err != nil {
		log.Fatalf("Loading translations: %v", err)
	}
	access, err := accesscontrol.NewEnforcer()
	if err != nil {
		log.Fatalf("Loading access policy: %v", err)
	}

	// Sessions and their workspaces
	sessions := session.NewService(session.NewBadgerStore(db), logger)
	workspaces := dashboard.NewWorkspaces(conf.Workspace.CacheSize, conf.Workspace.TTL, logger)

	followCtx, stopFollow := context.WithCancel(context.Background())
	defer stopFollow()
	events, unsubscribe := sessions.Subscribe()
	defer unsubscribe()
	go workspaces.Follow(followCtx, events)

	// Initialize Service Registry
	admin := dashboard.NewAdmin(repo)
	serviceRegistry := srvreg.NewServiceRegistry(srvreg.Services{
		Sessions:   sessions,
		Workspaces: workspaces,
		Router:     dashboard.NewRouter(workspaces, admin, translator),
		Admin:      admin,
		Repository: repo,
		Generator:  qr.NewGenerator(),
		Translator: translator,
		Access:     access,
	}, logger)
	serviceRegistry.RegisterDefaultServices()

	// Start Web Server
	webserver := server.NewWebServer(conf.HTTPPort, logger, serviceRegistry, sessions, translator)
	if err := webserver.Start(); err != nil {
		log.Fatalf("Starting HTTP server: %v", err)
	}

	logger.Info("=== AgriChain Successfully Started ===")
	logger.Info("HTTP API", "url", fmt.Sprintf("http://localhost:%s", conf.HTTPPort))
	logger.Info("Metrics", "url", fmt.Sprintf("http://localhost:%s/metrics", conf.HTTPPort))
	logger.Info("Default language", "lang", conf.I18n.DefaultLanguage)

	// Wait for interrupt signal to gracefully shut down
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info("Received shutdown signal, shutting down gracefully...")

	// Create deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := webserver.Shutdown(ctx); err != nil {
		logger.Error("Error shutting down HTTP web server", "err", err)
	}
	logger.Info("AgriChain gracefully stopped")
}
