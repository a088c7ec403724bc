package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/lctp-br/lctp-api/cmd/app"
)

// @title           LCTP Trio Competition API
// @description     Team roping ("trio") competition management: categories, eligibility, runs and CONTEP scoring.
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
