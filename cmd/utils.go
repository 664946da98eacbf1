package cmd

import (
	"flag"
	"log"

	"email-assistant/internal/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func LoadEnvFile() {
	var configPath string

	flag.StringVar(&configPath, "env", "", "path to load env from")
	flag.Parse()

	if configPath == "" {
		log.Printf("no env file specified, using os.Environ only")
		return
	}

	log.Printf("loading env from file %s", configPath)
	err := godotenv.Load(configPath)
	if err != nil {
		log.Fatalf("error loading .env file '%s': %v", configPath, err)
	}
}

// SeedDemoUsers inserts a small fixed user set for local runs, including one
// non-member to exercise the rejection path. Idempotent on phone number.
func SeedDemoUsers(db *gorm.DB) {
	demoUsers := []database.User{
		{Name: "Zain Raza", Phone: "+923065187343", Email: "zainxaidi2003@gmail.com", IsMember: true},
		{Name: "John Doe", Phone: "+12345678901", Email: "john@example.com", IsMember: true},
		{Name: "Jane Smith", Phone: "+12345678902", Email: "jane@example.com", IsMember: false},
	}

	for _, u := range demoUsers {
		var user database.User
		if err := db.Where(database.User{Phone: u.Phone}).Attrs(database.User{
			Id:       uuid.New(),
			Name:     u.Name,
			Email:    u.Email,
			IsMember: u.IsMember,
		}).FirstOrCreate(&user).Error; err != nil {
			log.Fatalf("Failed to seed user %s: %v", u.Phone, err)
		}
	}
}
