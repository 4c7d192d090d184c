package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/joho/godotenv"
	"github.com/muhammadolammi/resumetailor/internal/database"
	"github.com/streadway/amqp"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
)

const defaultWorkerCount = 3

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("empty %s in environment", key)
	}
	return v
}

func workerCount() int {
	raw := os.Getenv("WORKER_COUNT")
	if raw == "" {
		return defaultWorkerCount
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		log.Printf("⚠️ invalid WORKER_COUNT %q, using %d", raw, defaultWorkerCount)
		return defaultWorkerCount
	}
	return n
}

func main() {
	_ = godotenv.Load()
	dbUrl := mustEnv("DB_URL")
	rabbitmqUrl := mustEnv("RABBITMQ_URL")

	db, err := sql.Open("postgres", dbUrl)
	if err != nil {
		log.Fatal("error opening db. err: ", err)
	}
	defer db.Close()

	dbqueries := database.New(db)

	r2Config := R2Config{
		AccountID: mustEnv("R2_ACCOUNT_ID"),
		AccessKey: mustEnv("R2_ACCESS_KEY"),
		SecretKey: mustEnv("R2_SECRET_KEY"),
		Bucket:    mustEnv("R2_BUCKET"),
	}
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r2Config.AccessKey, r2Config.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		log.Fatal("error creating aws config", err)
	}

	googleApiKey := mustEnv("GOOGLE_API_KEY")
	agentName := "resume_tailor"
	tailor, err := GetAgent(googleApiKey, os.Getenv("GEMINI_MODEL"), agentName)
	if err != nil {
		log.Fatalf("failed to create agent: %v", err)
	}

	inMemoryService := session.InMemoryService()

	r, err := runner.New(runner.Config{
		AppName:        tailor.Name(),
		Agent:          tailor,
		SessionService: inMemoryService,
	})
	if err != nil {
		log.Fatalf("failed to create runner: %v", err)
	}

	conn, err := amqp.Dial(rabbitmqUrl)
	if err != nil {
		log.Fatalf("error connecting to RabbitMQ. err:  %v", err)
	}
	defer conn.Close()

	workerConfig := WorkerConfig{
		AgentName:           agentName,
		AgentRunner:         r,
		AgentSessionService: inMemoryService,
		DB:                  dbqueries,
		R2:                  &r2Config,
		S3Client:            newR2Client(awsConfig, &r2Config),
		RABBITMQUrl:         rabbitmqUrl,
		RabbitConn:          conn,
	}

	n := workerCount()
	fmt.Printf("Starting %d workers consumer pool\n", n)
	workerConfig.StartConsumerWorkerPool(n)
}
