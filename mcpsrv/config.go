package mcpsrv

import (
	"os"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/lumina/config"
)

type Config struct {
	config.Config

	Port               string
	AllowedOrigins     []string
	Stateless          bool
	EnableGenerate     bool
	EnableAdmin        bool
	AuthKey            string
	RPS                float64
	Burst              int
	SessionTimeout     time.Duration
	CacheClearInterval time.Duration
}

func LoadConfig() Config {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	cfg := Config{
		Config:             config.Load(),
		Port:               port,
		AllowedOrigins:     config.ParseCSV(os.Getenv("LUMINA_MCP_ALLOWED_ORIGINS")),
		Stateless:          config.ParseBool(os.Getenv("LUMINA_MCP_STATELESS"), false),
		EnableGenerate:     config.ParseBool(os.Getenv("LUMINA_MCP_ENABLE_GENERATE"), false),
		EnableAdmin:        config.ParseBool(os.Getenv("LUMINA_MCP_ENABLE_ADMIN"), false),
		AuthKey:            strings.TrimSpace(os.Getenv("LUMINA_MCP_API_KEY")),
		RPS:                config.ParseFloat(os.Getenv("LUMINA_MCP_RPS"), 2),
		Burst:              config.ParseInt(os.Getenv("LUMINA_MCP_BURST"), 5),
		SessionTimeout:     config.ParseDuration(os.Getenv("LUMINA_MCP_SESSION_TIMEOUT"), 15*time.Minute),
		CacheClearInterval: config.ParseDuration(os.Getenv("LUMINA_MCP_CACHE_CLEAR_INTERVAL"), 30*time.Minute),
	}

	if cfg.RPS <= 0 {
		cfg.RPS = 2
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}

	return cfg
}

func StreamableOptions(cfg Config) *mcp.StreamableHTTPOptions {
	return &mcp.StreamableHTTPOptions{
		Stateless:      cfg.Stateless,
		SessionTimeout: cfg.SessionTimeout,
	}
}
