package main

import (
	"log"
	"time"

	"github.com/fasthttp/router"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"

	"reviewpulse/internal/config"
	"reviewpulse/internal/db"
	"reviewpulse/internal/http/handlers"
	appmw "reviewpulse/internal/http/middleware"
	"reviewpulse/internal/sentiment"
	ui "reviewpulse/web"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	sqlDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	handlers.InitPrometheusMetrics()

	fallback := sentiment.NewKeywordClassifier()
	var remote sentiment.Classifier
	if cfg.OpenAIAPIKey != "" {
		remote = sentiment.NewOpenAIClassifier(
			cfg.OpenAIAPIKey,
			cfg.OpenAIModel,
			time.Duration(cfg.OpenAITimeoutSeconds)*time.Second,
			fallback,
		)
		log.Printf("remote classifier enabled (model=%s)", cfg.OpenAIModel)
	} else {
		log.Printf("no OPENAI_API_KEY configured, using keyword classifier only")
	}
	analyzer := sentiment.NewAnalyzer(remote, fallback)

	r := router.New()

	r.GET("/healthz", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	})

	r.ServeFS("/static/{filepath:*}", ui.StaticFS())

	r.GET("/", handlers.IndexHandler(sqlDB, cfg))
	r.GET("/usage", handlers.UsageHandler(sqlDB, cfg))
	r.POST("/analyze", handlers.AnalyzeHandler(sqlDB, cfg, analyzer))
	r.GET("/metrics", handlers.MetricsHandler())

	// Global middleware chain: request logger, then client identity, then router.
	handler := handlers.RequestLogger(appmw.ClientIdentity(r.Handler))

	log.Printf("reviewpulse listening on %s", cfg.ListenAddr)
	if err := fasthttp.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
