package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/trainly/trainly/internal/server"
)

// @title           TRAINLY API
// @version         1.0
// @description     Backend API for the TRAINLY learning platform. Students enroll in courses, instructors certify completion, administrators run the platform.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  support@trainly.app

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	srv, err := server.NewServer()
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		os.Exit(1)
	}
}
