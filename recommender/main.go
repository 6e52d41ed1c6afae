package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imkonsowa/takeout-recommender/config"
	"github.com/imkonsowa/takeout-recommender/llm"
	"golang.org/x/sync/errgroup"
)

type Agent struct {
	config  *config.Config
	handler *Handler
}

func main() {
	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := llm.New(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}

	var restaurants RestaurantSource
	if cfg.Recommender.UseRestaurants {
		restaurants = NewRestaurantsClient(cfg.Recommender.RestaurantsURL)
	}

	agent := &Agent{
		config:  cfg,
		handler: NewHandler(client, restaurants, cfg.Recommender.OutputMode),
	}

	runErr := agent.Run(ctx)

	if err := client.Close(); err != nil {
		slog.Warn("failed to close llm client", "err", err)
	}

	if runErr != nil {
		log.Fatalf("failed to run the agent: %v", runErr)
	}
}

func (a *Agent) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "Hello from the LLM integration endpoint!"})
	})

	r.POST("/recommendations", func(ctx *gin.Context) {
		var req RecommendationRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		recommendations, err := a.handler.Recommend(ctx.Request.Context(), req.Preferences)
		if err != nil {
			slog.Error("recommendation failed", "err", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusOK, RecommendationResponse{Recommendations: recommendations})
	})

	r.GET("/test-llm", func(ctx *gin.Context) {
		res, err := a.handler.TestLLM(ctx.Request.Context())
		if err != nil {
			slog.Error("test llm failed", "err", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusOK, res)
	})

	return r
}

// Run serves until ctx is cancelled, then gives in-flight requests five
// seconds to finish.
func (a *Agent) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    a.config.Recommender.Address(),
		Handler: a.Router(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("recommendation service listening", "addr", srv.Addr, "provider", a.config.LLM.Provider, "mode", a.config.Recommender.OutputMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
