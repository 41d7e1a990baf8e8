package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/0himanshu3/CiviK-Link/pkg/db"
	httpclient "github.com/0himanshu3/CiviK-Link/pkg/http-client"
	emailsending "github.com/0himanshu3/CiviK-Link/pkg/messaging/email-sending"
	"github.com/0himanshu3/CiviK-Link/pkg/user-management/pwhash"
	"github.com/0himanshu3/CiviK-Link/pkg/utils"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	accountDB "github.com/0himanshu3/CiviK-Link/pkg/db/account"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_ACCOUNT_DB_USERNAME = "ACCOUNT_DB_USERNAME"
	ENV_ACCOUNT_DB_PASSWORD = "ACCOUNT_DB_PASSWORD"

	ENV_SMTP_BRIDGE_API_KEY = "SMTP_BRIDGE_API_KEY"

	ENV_USER_JWT_SIGN_KEY = "USER_JWT_SIGN_KEY"
	ENV_ADMIN_EMAIL       = "ADMIN_EMAIL"
	ENV_ADMIN_PASSWORD    = "ADMIN_PASSWORD"
)

const environmentProduction = "production"

type UserApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`
	} `json:"gin_config" yaml:"gin_config"`

	// controls the Secure flag on the session cookie
	Environment string `json:"environment" yaml:"environment"`

	// user management configs
	UserManagementConfig struct {
		PWHashing struct {
			Argon2Memory      uint32 `json:"argon2_memory" yaml:"argon2_memory"`
			Argon2Iterations  uint32 `json:"argon2_iterations" yaml:"argon2_iterations"`
			Argon2Parallelism uint8  `json:"argon2_parallelism" yaml:"argon2_parallelism"`
		} `json:"pw_hashing" yaml:"pw_hashing"`
		UserJWTConfig struct {
			SignKey   string        `json:"sign_key" yaml:"sign_key"`
			ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
		} `json:"user_jwt_config" yaml:"user_jwt_config"`
		MaxNewUsersPer5Minutes int `json:"max_new_users_per_5_minutes" yaml:"max_new_users_per_5_minutes"`
	} `json:"user_management_config" yaml:"user_management_config"`

	AdminConfig struct {
		Email    string `json:"email" yaml:"email"`
		Password string `json:"password" yaml:"password"`
	} `json:"admin_config" yaml:"admin_config"`

	// base URL the password reset link points to
	FrontendURL string `json:"frontend_url" yaml:"frontend_url"`

	// DB configs
	DBConfigs struct {
		AccountDB db.DBConfigYaml `json:"account_db" yaml:"account_db"`
	} `json:"db_configs" yaml:"db_configs"`

	MessagingConfigs struct {
		SmtpBridgeConfig emailsending.SmtpBridgeConfig `json:"smtp_bridge_config" yaml:"smtp_bridge_config"`
	} `json:"messaging_configs" yaml:"messaging_configs"`
}

var (
	accountDBService *accountDB.AccountDBService
)

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

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// init argon2
	pwhash.InitArgonParams(
		conf.UserManagementConfig.PWHashing.Argon2Memory,
		conf.UserManagementConfig.PWHashing.Argon2Iterations,
		conf.UserManagementConfig.PWHashing.Argon2Parallelism,
	)

	// init message sending config
	initMessageSendingConfig()
}

func secretsOverride() {
	// Override secrets from environment variables
	if apiKey := os.Getenv(ENV_SMTP_BRIDGE_API_KEY); apiKey != "" {
		conf.MessagingConfigs.SmtpBridgeConfig.APIKey = apiKey
	}

	if dbUsername := os.Getenv(ENV_ACCOUNT_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.AccountDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_ACCOUNT_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.AccountDB.Password = dbPassword
	}

	if userJwtSignKey := os.Getenv(ENV_USER_JWT_SIGN_KEY); userJwtSignKey != "" {
		conf.UserManagementConfig.UserJWTConfig.SignKey = userJwtSignKey
	}

	if adminEmail := os.Getenv(ENV_ADMIN_EMAIL); adminEmail != "" {
		conf.AdminConfig.Email = adminEmail
	}

	if adminPassword := os.Getenv(ENV_ADMIN_PASSWORD); adminPassword != "" {
		conf.AdminConfig.Password = adminPassword
	}
}

func initMessageSendingConfig() {
	emailsending.InitMessageSendingVariables(
		loadEmailClientHTTPConfig(),
	)
}

func loadEmailClientHTTPConfig() *httpclient.ClientConfig {
	return &httpclient.ClientConfig{
		RootURL: conf.MessagingConfigs.SmtpBridgeConfig.URL,
		APIKey:  conf.MessagingConfigs.SmtpBridgeConfig.APIKey,
		Timeout: conf.MessagingConfigs.SmtpBridgeConfig.RequestTimeout,
	}
}

func initDBs() {
	var err error
	accountDBService, err = accountDB.NewAccountDBService(db.DBConfigFromYamlObj(conf.DBConfigs.AccountDB))
	if err != nil {
		slog.Error("Error connecting to Account DB", slog.String("error", err.Error()))
		return
	}
}
