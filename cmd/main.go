package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/sndpbag/Library-Management-API/configs"
	"github.com/sndpbag/Library-Management-API/internal/db"
	"github.com/sndpbag/Library-Management-API/internal/handlers"
	"github.com/sndpbag/Library-Management-API/internal/middleware"
	"github.com/sndpbag/Library-Management-API/internal/utils"
)

func main() {
	cfg := configs.LoadConfig()

	if err := db.Connect(cfg.MongoURI); err != nil {
		log.Fatalf("Storage init failed: %v", err)
	}

	bookColl := db.GetCollection(cfg.DBName, "books")
	borrowColl := db.GetCollection(cfg.DBName, "borrows")
	auditColl := db.GetCollection(cfg.DBName, "audit_logs")
	auditLogger := utils.Logger{Collection: auditColl}

	var ensureOnce sync.Once
	verifyStorage := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			return err
		}
		var indexErr error
		ensureOnce.Do(func() {
			indexErr = db.EnsureIndexes(ctx, bookColl)
		})
		return indexErr
	}

	r := mux.NewRouter()
	r.Use(middleware.JSONMiddleware)

	healthHandler := &handlers.HealthHandler{Ping: db.Ping}
	r.HandleFunc("/health", healthHandler.GetHealth).Methods("GET")

	api := r.PathPrefix("/").Subrouter()
	if cfg.IsProduction() {
		// Listen first, reach the database lazily per request.
		api.Use(middleware.EnsureStorage(verifyStorage))
	} else {
		if err := verifyStorage(); err != nil {
			log.Fatalf("MongoDB connection error: %v", err)
		}
		log.Println("MongoDB connected successfully")
	}

	bookHandler := handlers.NewBookHandler(bookColl, auditLogger)
	api.HandleFunc("/books", bookHandler.CreateBook).Methods("POST")
	api.HandleFunc("/books", bookHandler.GetBooks).Methods("GET")
	api.HandleFunc("/books/{bookId}", bookHandler.GetBook).Methods("GET")
	api.HandleFunc("/books/{bookId}", bookHandler.UpdateBook).Methods("PUT")
	api.HandleFunc("/books/{bookId}", bookHandler.DeleteBook).Methods("DELETE")

	borrowHandler := handlers.NewBorrowHandler(borrowColl, bookColl, auditLogger)
	api.HandleFunc("/borrow", borrowHandler.BorrowBook).Methods("POST")
	api.HandleFunc("/borrow", borrowHandler.GetBorrowSummary).Methods("GET")

	server := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Println("Server starting on port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	log.Println("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}
	if err := db.Disconnect(ctx); err != nil {
		log.Printf("Storage disconnect failed: %v", err)
	}
	log.Println("Server shut down.")
}
