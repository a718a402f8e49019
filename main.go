package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/campushq/campus-events-api/cmd/app"
)

// @contact.name   API Support
// @contact.email  support@campushq.dev
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
