package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

/**
 * @file: http.go
 * @description: http server
 */

type Http struct {
	Host            string
	Port            int
	Mode            string
	AccessLog       bool
	ExposeMetrics   bool
	ReadTimeout     int
	WriteTimeout    int
	IdleTimeout     int
	ShutdownTimeout int
	UploadDir       string
	UploadTmpDir    string
	TLS             TLS
	Auth            Auth
}

type TLS struct {
	CertFile string
	KeyFile  string
}

type Auth struct {
	SecretKey      string
	AccessExpire   time.Duration // minutes
	RefreshExpire  time.Duration // minutes
	RedisKeyPrefix string
}

func NewHttp(cfg Http, engine *gin.Engine) func() {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}

	go func() {
		fmt.Printf("[Init] http server start at: %s\n", srv.Addr)
		var err error
		if cfg.TLS.CertFile != "" && cfg.TLS.KeyFile != "" {
			err = srv.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Printf("[Error] HTTP server error: %v\n", err)
			os.Exit(1)
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	return createShutdownHook(srv, cfg.ShutdownTimeout, sc)
}

func createShutdownHook(server *http.Server, shutdownTimeout int, signalChan chan os.Signal) func() {
	return func() {
		<-signalChan
		fmt.Println("[Shutdown] HTTP server shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownTimeout)*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("[Error] Server shutdown error: %v\n", err)
		} else {
			fmt.Println("[Shutdown] HTTP server shut down gracefully.")
		}
	}
}
