package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"shopservice/pkg/domain/service"
	"shopservice/pkg/infrastructure/auth"
	"shopservice/pkg/infrastructure/mysql"
	"shopservice/pkg/transport"
)

const appID = "shopservice"

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	app := &cli.App{
		Name:   appID,
		Usage:  "order management backend",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run migrations and start the HTTP API",
				Action: serve,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("service terminated")
	}
}

type config struct {
	DBHost     string `envconfig:"db_host" default:"127.0.0.1"`
	DBPort     string `envconfig:"db_port" default:"3306"`
	DBName     string `envconfig:"db_name" default:"shop"`
	DBUser     string `envconfig:"db_user" default:"shop"`
	DBPassword string `envconfig:"db_password"`

	ServeRESTAddress string        `envconfig:"serve_rest_address" default:":8000"`
	JWTSecret        string        `envconfig:"jwt_secret" required:"true"`
	TokenTTL         time.Duration `envconfig:"token_ttl" default:"30m"`
}

func (c *config) dsn() string {
	// clientFoundRows makes conditional updates report matched rows, which
	// the repositories rely on to tell "row absent" from "value unchanged".
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&clientFoundRows=true",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func parseConfig() (*config, error) {
	c := new(config)
	if err := envconfig.Process(appID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func serve(_ *cli.Context) error {
	cfg, err := parseConfig()
	if err != nil {
		return err
	}

	db, err := mysql.NewClient(cfg.dsn())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := mysql.ApplyMigrations(db); err != nil {
		return err
	}

	uow := mysql.NewUnitOfWork(db)
	passwords := auth.NewPasswordManager()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	users := service.NewUserService(uow, passwords)
	products := service.NewProductService(uow)
	orders := service.NewOrderService(uow)

	srv := &http.Server{
		Addr:    cfg.ServeRESTAddress,
		Handler: transport.Router(users, products, orders, tokens),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.WithField("address", cfg.ServeRESTAddress).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
