package api

import (
	"strings"
	"sync"
	"time"

	"github.com/miracool-ctrl/backend-voteapp/api/models"
	"github.com/miracool-ctrl/backend-voteapp/logging"
	"github.com/spf13/viper"
)

const (
	DriverDynamo = "dynamo"
	DriverMemory = "memory"
	DriverS3     = "s3"
)

type Config struct {
	StorageConfig
	ServerConfig
	AuthConfig
	AssetsConfig
	AdminConfig
	UploadConfig
}

type StorageConfig struct {
	Driver                  string
	TableNameVoters         string
	TableNameVoterEmails    string
	TableNameElections      string
	TableNameCandidates     string
	CandidatesElectionIndex string
}

type ServerConfig struct {
	Port           int
	AllowedOrigins []string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type AssetsConfig struct {
	Driver  string
	Bucket  string
	BaseURL string
}

type AdminConfig struct {
	Emails []string
}

type UploadConfig struct {
	MaxBytes int64
}

var settingsOnce sync.Once

func ReadConfig() *Config {
	storageDriver := strings.ToLower(getStringOrDefault("storage.Driver", DriverDynamo))
	assetsDriver := strings.ToLower(getStringOrDefault("assets.Driver", DriverS3))

	var conf = &Config{
		StorageConfig: StorageConfig{
			Driver:                  storageDriver,
			TableNameVoters:         getStringOrDefault("storage.TableNameVoters", "Voters"),
			TableNameVoterEmails:    getStringOrDefault("storage.TableNameVoterEmails", "VoterEmails"),
			TableNameElections:      getStringOrDefault("storage.TableNameElections", "Elections"),
			TableNameCandidates:     getStringOrDefault("storage.TableNameCandidates", "Candidates"),
			CandidatesElectionIndex: getStringOrDefault("storage.CandidatesElectionIndex", "ElectionIndex"),
		},
		ServerConfig: ServerConfig{
			Port:           getIntOrDefault("server.port", 8080),
			AllowedOrigins: getStringSliceOrDefault("server.AllowedOrigins", []string{"http://localhost:3000"}),
		},
		AuthConfig: AuthConfig{
			JWTSecret: getString("auth.JWTSecret"),
			TokenTTL:  getDurationOrDefault("auth.TokenTTL", 24*time.Hour),
		},
		AssetsConfig: AssetsConfig{
			Driver:  assetsDriver,
			BaseURL: getStringOrDefault("assets.BaseURL", "http://localhost:8080/assets"),
		},
		AdminConfig: AdminConfig{
			Emails: getStringSliceOrDefault("admin.Emails", nil),
		},
		UploadConfig: UploadConfig{
			MaxBytes: int64(getIntOrDefault("uploads.MaxBytes", models.DefaultMaxUploadBytes)),
		},
	}

	// The bucket only matters when uploads actually go to S3.
	if assetsDriver == DriverS3 {
		conf.AssetsConfig.Bucket = getString("assets.Bucket")
		conf.AssetsConfig.BaseURL = getString("assets.BaseURL")
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func getString(name string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Fatalf("required environment variable '%s' is missing", name)
	return ""
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getDurationOrDefault(name string, def time.Duration) time.Duration {
	if viper.IsSet(name) {
		v := viper.GetDuration(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

// getStringSliceOrDefault accepts a YAML list or, from the environment, a
// comma separated string.
func getStringSliceOrDefault(name string, def []string) []string {
	if !viper.IsSet(name) {
		logging.Log.Printf("could not find '%s' in viper! Returning default", name)
		return def
	}
	logging.Log.Printf("found '%s' in viper", name)

	var out []string
	for _, item := range viper.GetStringSlice(name) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
