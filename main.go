package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/beldeveloper/repo-keeper/controller"
	"github.com/beldeveloper/repo-keeper/model"
	"github.com/beldeveloper/repo-keeper/provider/rest"
	"github.com/beldeveloper/repo-keeper/service/scheduler"
	"github.com/beldeveloper/repo-keeper/service/task"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// App bundles the wired entry points of the daemon.
type App struct {
	Controller controller.Service
	Executor   task.Executor
	Cron       scheduler.Cron
}

func newApp(c controller.Controller, queue task.Service, cfg model.Config) App {
	return App{
		Controller: c,
		Executor:   task.NewExecutor(queue, c.Runners(), cfg),
		Cron:       scheduler.NewCron(),
	}
}

func main() {
	configureViper()
	setupLogger()
	app, err := InitializeApp()
	if err != nil {
		log.Fatal().Err(err).Msg("main: initialize")
	}
	ctx := context.Background()
	err = app.Cron.Register(ctx, app.Controller.Schedule())
	if err != nil {
		log.Fatal().Err(err).Msg("main: register schedule")
	}
	app.Cron.Start()
	go app.Executor.Run(ctx)
	runHTTPServer(app.Controller)
	app.Cron.Stop()
}

func configureViper() {
	viper.SetEnvPrefix("REPO_KEEPER")
	viper.AutomaticEnv()
	viper.SetDefault("http_port", "8080")
	viper.SetDefault("db_port", "5432")
	viper.SetDefault("db_schema", "public")
	viper.SetDefault("workers", 4)
	viper.SetDefault("auto_update", model.AutoUpdateRemote)
	viper.SetDefault("alert_threshold", model.DefaultAlertThreshold)
	viper.SetDefault("lock_timeout", "2m")
	viper.SetDefault("reaper_grace", "24h")
	viper.SetDefault("suggestion_retention_days", 0)
	viper.SetDefault("comment_retention_days", 0)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_pretty", false)
}

func setupLogger() {
	level, err := zerolog.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if viper.GetBool("log_pretty") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func appConfig() model.Config {
	return model.Config{
		ReposDir:                reposDir(),
		Workers:                 viper.GetInt("workers"),
		AutoUpdate:              viper.GetString("auto_update"),
		AlertThreshold:          viper.GetInt("alert_threshold"),
		LockTimeout:             viper.GetDuration("lock_timeout"),
		ReaperGrace:             viper.GetDuration("reaper_grace"),
		SuggestionRetentionDays: viper.GetInt("suggestion_retention_days"),
		CommentRetentionDays:    viper.GetInt("comment_retention_days"),
	}
}

func postgresConn() (*pgxpool.Pool, error) {
	pgs := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		viper.GetString("db_host"),
		viper.GetString("db_port"),
		viper.GetString("db_user"),
		viper.GetString("db_password"),
		viper.GetString("db_name"),
	)
	return pgxpool.Connect(context.Background(), pgs)
}

func postgresSchema() model.PgSchema {
	return model.PgSchema(viper.GetString("db_schema"))
}

func reposDir() model.FilePath {
	return model.FilePath(strings.TrimRight(viper.GetString("repos_dir"), "/"))
}

func runHTTPServer(c controller.Service) {
	httpPort := viper.GetString("http_port")
	crtFile := viper.GetString("https_crt")
	keyFile := viper.GetString("https_key")
	srv := &http.Server{
		Addr:    ":" + httpPort,
		Handler: rest.CreateRouter(c),
	}
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		var err error
		if len(crtFile) > 0 {
			err = srv.ListenAndServeTLS(crtFile, keyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Str("port", httpPort).Msg("main: serve http")
		}
	}()
	log.Info().Str("port", httpPort).Msg("listening for HTTP connections")
	<-done
	log.Info().Msg("stopping the application")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("main: server shutdown")
	}
}
