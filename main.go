package main

import (
	"fmt"
	"log"
	"os"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/routes"
	"salonbook-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Appointment{},
		&models.ReminderConfig{},
		&models.MessageTemplate{},
		&models.DispatchRecord{},
	)
}

func main() {
	// Daily 9 AM run over the default namespace; tenant runs are
	// triggered through the API.
	if os.Getenv("REMINDER_CRON") == "1" {
		store := services.NewStore(config.DB, "")
		services.NewDispatchService(store, services.DispatchConfigFromEnv()).StartScheduler()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
