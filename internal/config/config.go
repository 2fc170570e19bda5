package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strings"

    "github.com/joho/godotenv" // godotenv loads a local .env file into the environment
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database settings and the token secret are
// required; everything else falls back to the historical API behaviour
// (bcrypt cost 10, open routes, permissive reservations).
type Config struct {
    Env          string // application environment (e.g. "dev", "prod")
    Port         string // HTTP port to listen on
    APIPrefix    string // path prefix for every API route
    DBUser       string // database username
    DBPass       string // database password (optional)
    DBHost       string // database host address
    DBPort       string // database port number
    DBName       string // database name
    DBMigrate    bool   // create missing tables on startup
    JWTSecret    string // secret used to sign vendor access tokens
    AccessTTLMin int    // access token time‑to‑live in minutes
    AuthRequired bool   // require a bearer token on mutating vendor routes
    BcryptCost   int    // bcrypt cost for password hashing
    CORSOrigins  []string
    Policy       PolicyConfig
    Events       EventsConfig
}

// Load reads an optional .env file and then environment variables and
// returns a Config.  Required variables are enforced by must() and missing
// values cause the program to exit with a fatal log message.
func Load() Config {
    if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
        log.Printf("config: .env not loaded: %v", err)
    }
    return Config{
        Env:          envStr("APP_ENV", "dev"),
        Port:         envStr("APP_PORT", "3000"),
        APIPrefix:    envStr("API_PREFIX", "/api"),
        DBUser:       must("DB_USER"),
        DBPass:       os.Getenv("DB_PASS"),
        DBHost:       must("DB_HOST"),
        DBPort:       envStr("DB_PORT", "3306"),
        DBName:       must("DB_NAME"),
        DBMigrate:    envBool("DB_MIGRATE", true),
        JWTSecret:    must("JWT_SECRET"),
        AccessTTLMin: envInt("ACCESS_TOKEN_TTL_MIN", 60),
        AuthRequired: envBool("AUTH_REQUIRED", false),
        BcryptCost:   envInt("BCRYPT_COST", 10),
        CORSOrigins:  splitList(envStr("CORS_ORIGINS", "*")),
        Policy:       LoadPolicyConfig(),
        Events:       LoadEventsConfig(),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

func splitList(s string) []string {
    var out []string
    for _, p := range strings.Split(s, ",") {
        if p = strings.TrimSpace(p); p != "" {
            out = append(out, p)
        }
    }
    return out
}
