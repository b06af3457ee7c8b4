// Command seed creates an editor account. There is no registration
// endpoint; accounts exist only through this tool.
//
//	go run ./cmd/seed -email editor@example.com -username editor -password secret
package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/newsroomhq/newsroom-backend/internal/auth"
	"github.com/newsroomhq/newsroom-backend/internal/config"
	"github.com/newsroomhq/newsroom-backend/internal/db"
	"github.com/newsroomhq/newsroom-backend/internal/ident"
)

func main() {
	email := flag.String("email", "", "account email (unique)")
	username := flag.String("username", "", "display username")
	password := flag.String("password", "", "plaintext password, hashed before storage")
	flag.Parse()

	if *email == "" || *username == "" || *password == "" {
		log.Fatal("-email, -username and -password are all required")
	}

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

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password: ", err)
	}

	user := auth.User{
		ID:             ident.New(),
		Email:          *email,
		Username:       *username,
		HashedPassword: string(hashed),
	}
	if err := gdb.Create(&user).Error; err != nil {
		log.Fatal("Failed to create user: ", err)
	}

	log.Printf("Created user %s (%s)", user.Username, user.ID)
}
