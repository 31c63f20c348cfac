package main

import (
	"context"
	"database/sql"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/msituguard/msituguard/internal/api"
	"github.com/msituguard/msituguard/internal/classifier"
	"github.com/msituguard/msituguard/internal/engine"
	"github.com/msituguard/msituguard/internal/llm"
	"github.com/msituguard/msituguard/internal/store"
	"github.com/msituguard/msituguard/internal/weather"
)

type cli struct {
	DB              string `name:"db" default:"data/msituguard.db" help:"Path to SQLite database."`
	Port            string `name:"port" default:"8080" help:"HTTP server port."`
	WeatherAPIKey   string `name:"weather-api-key" env:"WEATHER_API_KEY" help:"OpenWeatherMap API key. Empty disables live weather."`
	WeatherCacheTTL int    `name:"weather-cache-ttl-s" env:"WEATHER_CACHE_TTL_S" default:"3600" help:"Per-coordinate weather cache lifetime in seconds."`
	ModelPath       string `name:"model-path" env:"MODEL_PATH" help:"Path to the exported classifier artifact. Empty disables ML."`
	ModelVersion    string `name:"model-version" env:"MODEL_VERSION" default:"v2.0.0" help:"Version label recorded with predictions."`
	Reseed          bool   `name:"reseed" help:"Reseed the playbook and exit."`
}

func main() {
	// Optional; real deployments set the environment directly.
	godotenv.Load()

	var flags cli
	kong.Parse(&flags,
		kong.Name("msituguard"),
		kong.Description("Tree survival prediction engine and reward ledger for Kenyan counties."))

	db, err := sql.Open("sqlite", flags.DB)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("database migrated")

	if err := st.SeedPlaybook(); err != nil {
		log.Fatalf("seed playbook: %v", err)
	}
	log.Println("playbook seeded")
	if flags.Reseed {
		return
	}

	var weatherSvc engine.Weather
	if flags.WeatherAPIKey != "" {
		ttl := time.Duration(flags.WeatherCacheTTL) * time.Second
		weatherSvc = weather.NewService(weather.NewClient(flags.WeatherAPIKey), ttl)
		log.Printf("live weather enabled (cache ttl %s)", ttl)
	} else {
		log.Println("live weather disabled: no WEATHER_API_KEY")
	}

	var model engine.Classifier
	if flags.ModelPath != "" {
		m, err := classifier.Load(flags.ModelPath)
		if err != nil {
			log.Printf("classifier disabled: %v", err)
		} else {
			model = m
			log.Printf("classifier loaded: %s", m.Version())
		}
	} else {
		log.Println("classifier disabled: no MODEL_PATH")
	}

	var adviser engine.Adviser
	if a, err := llm.NewAdviser(); err != nil {
		log.Printf("llm adviser disabled: %v", err)
	} else {
		adviser = a
		log.Println("llm adviser enabled")
	}

	eng := engine.New(st, weatherSvc, model, adviser, flags.ModelVersion)
	server := api.NewServer(st, eng, flags.Port)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("starting server on :%s", flags.Port)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
