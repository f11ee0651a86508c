package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/portfolio/internal/buildinfo"
	"github.com/dmitrijs2005/portfolio/internal/client/cli"
	"github.com/dmitrijs2005/portfolio/internal/client/client"
	"github.com/dmitrijs2005/portfolio/internal/client/config"
	"github.com/dmitrijs2005/portfolio/internal/client/media"
	"github.com/dmitrijs2005/portfolio/internal/client/nav"
	"github.com/dmitrijs2005/portfolio/internal/client/services"
	"github.com/dmitrijs2005/portfolio/internal/client/session"
	"github.com/dmitrijs2005/portfolio/internal/client/storage"
	"github.com/dmitrijs2005/portfolio/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  10,
		MaxBackups: 3,
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	store, err := storage.Open(ctx, cfg, cfg.APIBaseURL)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	sess := session.New(store.Metadata, logger)
	if err := sess.Init(ctx); err != nil {
		log.Fatalf("load session: %v", err)
	}

	router := nav.NewRouter(nav.NewGuard(sess))
	api := client.New(client.NewTransport(cfg.APIBaseURL,
		client.WithCredentials(sess),
		client.WithUnauthorizedHandler(func(context.Context) { router.RedirectToLogin() }),
		client.WithLogger(logger),
		client.WithTimeout(cfg.RequestTimeout),
	))

	uploader, err := media.New(ctx, cfg.Media)
	if err != nil && !errors.Is(err, media.ErrDisabled) {
		log.Fatalf("media: %v", err)
	}

	app := cli.NewApp(cli.Deps{
		API:     api,
		Session: sess,
		Router:  router,
		Auth:    services.NewAuthService(api.Auth, sess, router, logger),
		Media:   uploader,
		Log:     logger,
	}, os.Stdin, os.Stdout)

	app.Run(ctx)

}
