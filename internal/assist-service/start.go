package assistservice

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"road-assist/internal/assist-service/adapters/driver/myhttp"
	"road-assist/internal/config"
	"road-assist/internal/mylogger"
)

type Service struct{}

func New() *Service {
	return &Service{}
}

func (s *Service) Run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	mylog, err := mylogger.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	mylog = mylog.With("service", "assist-service")

	ctx := context.Background()
	newCtx, stop := signal.NotifyContext(ctx, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := myhttp.NewServer(newCtx, ctx, mylog, cfg)

	runErrCh := make(chan error, 1)
	go func() {
		runErrCh <- server.Run()
	}()

	select {
	case <-newCtx.Done():
		mylog.Info("Shutdown signal received")
		return server.Stop(context.Background())
	case err := <-runErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			mylog.Error("Server failed unexpectedly", err)
			return err
		}
		mylog.Info("Server exited normally")
		return nil
	}
}
