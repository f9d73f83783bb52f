package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	mailerAdapter "github.com/shuerry/Connectify-sub000/internal/infrastructure/mailer/adapter"
	queueAdapter "github.com/shuerry/Connectify-sub000/internal/infrastructure/queue/adapter"
	"github.com/shuerry/Connectify-sub000/internal/pkg/chat/application/task"
)

// The worker consumes queued background tasks, currently just the email
// digest. It runs separately from the API so slow SMTP dials never compete
// with request handling.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	srv, err := queueAdapter.NewAsynqServer()
	if err != nil {
		log.Fatalf("failed to create queue server: %v", err)
	}

	mailer, err := mailerAdapter.NewSMTPMailerFromEnv()
	if err != nil {
		log.Fatalf("failed to create mailer: %v", err)
	}

	task.RegisterEmailDigestTask(srv, mailer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("worker: consuming tasks")
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("worker stopped with error: %v", err)
	}
}
