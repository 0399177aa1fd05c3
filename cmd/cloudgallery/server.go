package main

import (
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/mux"
	"github.com/adampresley/cloudgallery/cmd/cloudgallery/internal/configuration"
)

/*
serve runs a preview server for an already built gallery until the process
is interrupted.
*/
func serve(config configuration.Config) {
	files := http.FileServer(http.Dir(config.OutputDir))

	routes := []mux.Route{
		{Path: "GET /heartbeat", HandlerFunc: heartbeat},
		{Path: "GET /", HandlerFunc: files.ServeHTTP},
	}

	routerConfig := mux.RouterConfig{
		Address:          config.Host,
		Debug:            Version == "development",
		HttpWriteTimeout: 60,
	}

	m := mux.SetupRouter(routerConfig, routes)
	httpServer, quit := mux.SetupServer(routerConfig, m)

	slog.Info("preview server started", "host", config.Host, "output", config.OutputDir)

	<-quit

	mux.Shutdown(httpServer)
	slog.Info("preview server stopped")
}

func heartbeat(w http.ResponseWriter, r *http.Request) {
	httphelpers.TextOK(w, "OK")
}
