package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/muhammadolammi/resumetailor/internal/database"
	"github.com/muhammadolammi/resumetailor/internal/handlers"
)

func main() {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	var sessionHandler *handlers.SessionHandler
	if dbUrl := os.Getenv("DB_URL"); dbUrl != "" {
		db, err := sql.Open("postgres", dbUrl)
		if err != nil {
			log.Fatal("error opening db. err: ", err)
		}
		defer db.Close()
		sessionHandler = handlers.NewSessionHandler(database.New(db))
	} else {
		log.Println("⚠️ empty DB_URL in environment, session results disabled")
	}

	r := handlers.NewRouter(handlers.NewDiffHandler(), sessionHandler)

	log.Printf("Server starting on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
