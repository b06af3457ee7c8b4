package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/newsroomhq/newsroom-backend/internal/auth"
	"github.com/newsroomhq/newsroom-backend/internal/comments"
	"github.com/newsroomhq/newsroom-backend/internal/config"
	"github.com/newsroomhq/newsroom-backend/internal/db"
	"github.com/newsroomhq/newsroom-backend/internal/httperr"
	"github.com/newsroomhq/newsroom-backend/internal/middleware"
	"github.com/newsroomhq/newsroom-backend/internal/news"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := auth.Init(gdb); err != nil {
		log.Fatal("Failed to migrate accounts tables: ", err)
	}
	if err := news.Init(gdb); err != nil {
		log.Fatal("Failed to migrate news table: ", err)
	}
	if err := comments.Init(gdb); err != nil {
		log.Fatal("Failed to migrate comments table: ", err)
	}

	sessions := auth.NewSessionStore(gdb, cfg.SessionTTL)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Session(sessions, cfg.SessionTTL))

	r.Get("/", RootHandler)
	r.Mount("/users", auth.SetupRoutes(
		auth.NewHandlers(gdb, sessions),
		middleware.RateLimit(cfg.LoginRPS, cfg.LoginBurst),
	))
	r.Mount("/news", news.SetupRoutes(news.NewHandlers(gdb)))
	r.Mount("/comments", comments.SetupRoutes(comments.NewHandlers(gdb)))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperr.Respond(w, httperr.NotFound("Endpoint not found"))
	})

	log.Println("Server listening on port :" + cfg.Port + "...")
	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
