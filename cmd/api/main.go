package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"email-assistant/cmd"
	"email-assistant/internal/api"
	"email-assistant/internal/assistant"
	"email-assistant/internal/database"
	"email-assistant/internal/extractor"
	"email-assistant/internal/fetcher"
	"email-assistant/internal/llm"
	"email-assistant/internal/mailer"
	"email-assistant/internal/store"
	"email-assistant/internal/twilio"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type APIConfig struct {
	DatabaseURL string `env:"DATABASE_URL" envDefault:"sqlite://email_assistant.db"`
	APIPort     string `env:"API_PORT" envDefault:"8001"`

	TwilioAccountSID     string `env:"TWILIO_ACCOUNT_SID,notEmpty,required"`
	TwilioAuthToken      string `env:"TWILIO_AUTH_TOKEN,notEmpty,required"`
	TwilioWhatsAppNumber string `env:"TWILIO_WHATSAPP_NUMBER" envDefault:"+14155238886"`
	TwilioMockMode       bool   `env:"TWILIO_MOCK_MODE" envDefault:"false"`

	OpenAIModel string  `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAITemp  float64 `env:"OPENAI_TEMPERATURE" envDefault:"0.7"`

	SMTPHost      string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort      int    `env:"SMTP_PORT" envDefault:"465"`
	SenderEmail   string `env:"SENDER_EMAIL,notEmpty,required"`
	SenderName    string `env:"SENDER_NAME,notEmpty,required"`
	SenderPasskey string `env:"SENDER_PASSKEY,notEmpty,required"`

	DownloadDir   string `env:"DOWNLOAD_DIR" envDefault:"/tmp"`
	SeedDemoUsers bool   `env:"SEED_DEMO_USERS" envDefault:"false"`
}

func main() {
	log.Println("Starting Email Assistant server...")

	cmd.LoadEnvFile()

	var cfg APIConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if cfg.SeedDemoUsers {
		cmd.SeedDemoUsers(db)
	}

	sessions := store.NewStore(db)

	messenger := twilio.NewClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber,
		twilio.WithMockMode(cfg.TwilioMockMode))

	composer := llm.NewComposer(llm.NewOpenAI(cfg.OpenAIModel, cfg.OpenAITemp), cfg.SenderName)

	sender := mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SenderEmail, cfg.SenderName, cfg.SenderPasskey)

	bot := assistant.New(
		sessions,
		fetcher.New(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.DownloadDir),
		extractor.New(),
		composer,
		sender,
	)

	// --- Chi Router Setup ---
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	apiHandler := api.NewService(sessions, bot, messenger)
	apiHandler.AddRoutes(r)

	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: r,
	}

	// Goroutine for graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("API server listening on port %s", cfg.APIPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
	}

	log.Println("Server stopped.")
}
