// @title Online Voting API
// @version 1.0
// @description Backend API for voters, elections, candidates and ballots

// @securityDefinitions.apikey BearerToken
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token returned by login.
package main

import (
	"errors"
	"io/fs"
	"strings"

	_ "github.com/miracool-ctrl/backend-voteapp/docs"

	"github.com/joho/godotenv"
	"github.com/miracool-ctrl/backend-voteapp/api"
	"github.com/miracool-ctrl/backend-voteapp/logging"
	"github.com/spf13/viper"
)

func main() {
	// .env is optional, real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("Failed to load .env file: " + err.Error())
	}

	// Load env
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("auth.JWTSecret", "JWT_SECRET")

	if err := viper.ReadInConfig(); err != nil {
		panic("Failed to read config file: " + err.Error())
	}

	logging.BootstrapLogger(viper.GetString("server.LogLevel"))

	// Read config
	config := api.ReadConfig()

	// Start the service (inside the lambda)
	service := api.NewServer(config)
	service.Start()
}
