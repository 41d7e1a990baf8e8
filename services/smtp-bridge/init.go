package main

import (
	"os"

	"github.com/0himanshu3/CiviK-Link/pkg/utils"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	sc "github.com/0himanshu3/CiviK-Link/pkg/smtp-client"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	ENV_SMTP_BRIDGE_API_KEY = "SMTP_BRIDGE_API_KEY"
)

type SmtpBridgeConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`
	} `json:"gin_config" yaml:"gin_config"`

	ApiKeys []string `json:"api_keys" yaml:"api_keys"`

	SMTPServerConfig struct {
		HighPrio sc.SmtpServerList `json:"high_prio" yaml:"high_prio"`
		LowPrio  sc.SmtpServerList `json:"low_prio" yaml:"low_prio"`
	} `json:"smtp_server_config" yaml:"smtp_server_config"`
}

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(conf.Logging)

	// Override secrets from environment variables
	secretsOverride()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
}

func secretsOverride() {
	if apiKey := os.Getenv(ENV_SMTP_BRIDGE_API_KEY); apiKey != "" {
		conf.ApiKeys = append(conf.ApiKeys, apiKey)
	}
}
