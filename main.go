package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/strikepick/strikepick/src/dbutils"
	"github.com/strikepick/strikepick/src/eventpubsub"
	"github.com/strikepick/strikepick/src/handler"
	"github.com/strikepick/strikepick/src/models"
	"github.com/strikepick/strikepick/src/selector"
	"github.com/strikepick/strikepick/src/services"
	"github.com/strikepick/strikepick/src/sink"
	"github.com/strikepick/strikepick/src/utils"
)

const sinkFlushTimeout = 5 * time.Second

func main() {
	if err := utils.InitEnvironmentVariables(); err != nil {
		log.Warnf("main: %v", err)
	}

	policy := models.DefaultSelectionPolicy()
	if path := os.Getenv("SELECTION_POLICY_FILE"); path != "" {
		loaded, err := models.LoadSelectionPolicy(path)
		if err != nil {
			log.Fatalf("main: failed to load selection policy: %v", err)
		}

		policy = loaded
	}

	dbURL, err := utils.GetEnv("DATABASE_URL")
	if err != nil {
		log.Fatalf("main: %v", err)
	}

	db, err := dbutils.InitPostgresWithUrl(dbURL)
	if err != nil {
		log.Fatalf("main: failed to init database: %v", err)
	}

	recordSink := sink.NewPostgresSink(db, 0)

	eventpubsub.Init()
	if err := eventpubsub.Subscribe(eventpubsub.TopicSelectionCompleted, func(result *models.SelectionResult) {
		log.WithFields(log.Fields{
			"request_id": result.RequestID,
			"ticker":     result.Ticker,
			"selected":   result.Selected,
			"symbol":     result.OptionSymbol,
			"elapsed_ms": result.SelectionTimeMs,
		}).Info("selection completed")
	}); err != nil {
		log.Fatalf("main: failed to subscribe: %v", err)
	}

	contractSelector := selector.NewContractSelector(policy, recordSink)

	var chainSource handler.ChainSource
	if token := os.Getenv("TRADIER_BEARER_TOKEN"); token != "" {
		chainSource = services.NewTradierChainFetcher(
			os.Getenv("TRADIER_CHAIN_URL"),
			os.Getenv("TRADIER_EXPIRATIONS_URL"),
			os.Getenv("TRADIER_QUOTES_URL"),
			token,
		)
	}

	selectionHandler := &handler.SelectionHandler{Selector: contractSelector, ChainSource: chainSource}
	recordsHandler := &handler.RecordsHandler{DB: db}

	router := mux.NewRouter()
	router.HandleFunc("/selection", selectionHandler.HandleSelect).Methods(http.MethodPost)
	router.HandleFunc("/records", recordsHandler.HandleRecords).Methods(http.MethodGet)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Infof("listening on :%s", port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("main: server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("main: shutdown: %v", err)
	}

	if err := recordSink.Close(sinkFlushTimeout); err != nil {
		log.Errorf("main: %v", err)
	}
}
