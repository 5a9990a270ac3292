package config

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ISSUER = "ecovoiceapi"

	USERS_COLLECTION   = "users"
	REPORTS_COLLECTION = "reports"

	STATUS_UNATTENDED = "unattended"
	STATUS_SOLVED     = "solved"

	CLAIM_LOCK_DURATION      = 10 * time.Second
	LEADERBOARD_SNAPSHOT_KEY = "leaderboard:last"
	REVOKED_TOKEN_PREFIX     = "revoked:"
	IMAGE_UPLOAD_EXPIRES     = 15 * time.Minute
)

type Vars struct {
	ENV                 string
	PORT                string
	ORIGIN              string
	STORE               string
	MONGO_URI           string
	MONGO_DB            string
	REDIS_ADDR          string
	REDIS_USERNAME      string
	REDIS_PASSWORD      string
	JWT_SECRET          string
	GOOGLE_CLIENT_ID    string
	LEADERBOARD_REFRESH time.Duration
	R2_ENDPOINT         string
	R2_ACCESS_KEY       string
	R2_SECRET_KEY       string
	R2_BUCKET           string
	R2_PUBLIC_URL       string
}

var VAR *Vars

func init() {

	vars, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	VAR = vars

}

func (v *Vars) IsProd() bool {
	return v.ENV == "prod"
}

// Load reads .env, when present, and the process environment.
func Load() (*Vars, error) {

	// process environment wins over .env, ENV may come from either
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ORIGIN", "http://localhost:5173")
	v.SetDefault("STORE", "mongo")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("MONGO_DB", "EcoVoiceDev")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("LEADERBOARD_REFRESH", "5m")

	vars := &Vars{
		ENV:                 v.GetString("ENV"),
		PORT:                v.GetString("PORT"),
		ORIGIN:              v.GetString("ORIGIN"),
		STORE:               v.GetString("STORE"),
		MONGO_URI:           v.GetString("MONGO_URI"),
		MONGO_DB:            v.GetString("MONGO_DB"),
		REDIS_ADDR:          v.GetString("REDIS_ADDR"),
		REDIS_USERNAME:      v.GetString("REDIS_USERNAME"),
		REDIS_PASSWORD:      v.GetString("REDIS_PASSWORD"),
		JWT_SECRET:          v.GetString("JWT_SECRET"),
		GOOGLE_CLIENT_ID:    v.GetString("GOOGLE_CLIENT_ID"),
		LEADERBOARD_REFRESH: v.GetDuration("LEADERBOARD_REFRESH"),
		R2_ENDPOINT:         v.GetString("R2_ENDPOINT"),
		R2_ACCESS_KEY:       v.GetString("R2_ACCESS_KEY"),
		R2_SECRET_KEY:       v.GetString("R2_SECRET_KEY"),
		R2_BUCKET:           v.GetString("R2_BUCKET"),
		R2_PUBLIC_URL:       v.GetString("R2_PUBLIC_URL"),
	}

	if vars.IsProd() && vars.JWT_SECRET == "" {
		return nil, errors.New("JWT_SECRET must be set in prod")
	}

	return vars, nil

}
