package bootstrap

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fulldump/box"
	"go.uber.org/zap"

	"github.com/fulldump/farmgrid/api"
	"github.com/fulldump/farmgrid/configuration"
	"github.com/fulldump/farmgrid/database"
	"github.com/fulldump/farmgrid/service"
)

var VERSION = "dev"

func Bootstrap(c *configuration.Configuration, logger *zap.Logger) (start, stop func(), err error) {

	db := database.NewDatabase(&database.Config{
		Dir:    c.Dir,
		Logger: logger.Named("database"),
	})

	s, err := service.NewService(db, logger.Named("service"))
	if err != nil {
		return nil, nil, err
	}

	b := api.Build(s, VERSION, c.ApiKey, c.ApiSecret)
	if c.EnableCompression {
		b.WithInterceptors(api.Compression)
	}
	b.WithInterceptors(
		api.AccessLog(logger.Named("access")),
		api.PrettyErrorInterceptor,
		api.RecoverFromPanic,
		api.InterceptorUnavailable(db),
	)

	server := &http.Server{
		Addr:    c.HttpAddr,
		Handler: box.Box2Http(b),
	}

	ln, err := net.Listen("tcp", c.HttpAddr)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("listening", zap.String("addr", c.HttpAddr))

	stop = func() {
		err := db.Stop()
		if err != nil {
			logger.Error("stop database", zap.Error(err))
		}
		server.Shutdown(context.Background())
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		for {
			sig := <-signalChan
			logger.Info("signal received", zap.String("signal", sig.String()))
			stop()
		}
	}()

	start = func() {

		wg := &sync.WaitGroup{}

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.Start()
			if err != nil {
				logger.Error("database", zap.Error(err))
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := server.Serve(ln)
			if err != nil && err != http.ErrServerClosed {
				logger.Error("http server", zap.Error(err))
			}
		}()

		wg.Wait()
	}

	return
}
