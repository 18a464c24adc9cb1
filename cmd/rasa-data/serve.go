package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aryaman4/rasa"
	httpadapter "github.com/aryaman4/rasa/internal/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assembled training data over HTTP",
	Long:  `Starts a JSON debug server exposing the merged domain, stories, configuration and NLU data.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Serve failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().String("port", "8080", "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command) error {
	logger := newLogger(cmd)
	configPath, domainPath, dataPaths := importerPaths(cmd)
	port, _ := cmd.Flags().GetString("port")

	importer, err := rasa.LoadFromConfig(configPath, domainPath, dataPaths, rasa.WithLogger(logger))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: httpadapter.NewHandler(importer, logger),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("serving training data", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-shutdown:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			srv.Close()
			return err
		}
	}
	return nil
}
