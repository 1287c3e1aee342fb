package config

import (
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// 環境變數前綴，例如 PLANTS_SERVER_PORT
const envPrefix = "plants"

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" split_words:"true"`
	ReadTimeout     time.Duration `yaml:"read_timeout" split_words:"true"`
	WriteTimeout    time.Duration `yaml:"write_timeout" split_words:"true"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	Path            string        `yaml:"path"`
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	Database        string        `yaml:"database"`
	MaxOpenConns    int           `yaml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int           `yaml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" split_words:"true"`
	LogLevel        string        `yaml:"log_level" split_words:"true"`
}

type AuthConfig struct {
	Enabled        bool          `yaml:"enabled"`
	PublicKeyPath  string        `yaml:"public_key_path" split_words:"true"`
	PrivateKeyPath string        `yaml:"private_key_path" split_words:"true"`
	Issuer         string        `yaml:"issuer"`
	TokenTTL       time.Duration `yaml:"token_ttl" envconfig:"TOKEN_TTL"`
}

type Config struct {
	Environment string         `yaml:"environment"`
	LogLevel    string         `yaml:"log_level" split_words:"true"`
	Server      ServerConfig   `yaml:"server"`
	Database    DatabaseConfig `yaml:"database"`
	Auth        AuthConfig     `yaml:"auth"`
}

// Default 回傳未提供設定檔時使用的預設值
func Default() Config {
	return Config{
		Environment: "development",
		LogLevel:    "debug",
		Server: ServerConfig{
			Port:            5555,
			ShutdownTimeout: 10 * time.Second,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          DriverSQLite,
			Path:            "plants.db",
			Host:            "127.0.0.1",
			Port:            "3306",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
			LogLevel:        "warn",
		},
		Auth: AuthConfig{
			Issuer:   "plants",
			TokenTTL: time.Hour,
		},
	}
}

// LoadConfig 依序套用預設值、YAML設定檔、.env 與環境變數
func LoadConfig(filename string) (Config, error) {
	config := Default()

	file, err := os.Open(filename)
	switch {
	case err == nil:
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return config, errors.Wrapf(err, "decode %s", filename)
		}
	case os.IsNotExist(err):
		//沒有設定檔時只使用預設值與環境變數
	default:
		return config, errors.Wrapf(err, "open %s", filename)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return config, errors.Wrap(err, "load .env")
	}
	if err := envconfig.Process(envPrefix, &config); err != nil {
		return config, errors.Wrap(err, "process environment")
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("database.path is required for sqlite")
		}
	case DriverMySQL:
		if c.Database.Host == "" || c.Database.Database == "" {
			return errors.New("database.host and database.database are required for mysql")
		}
	default:
		return errors.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Auth.Enabled && c.Auth.PublicKeyPath == "" {
		return errors.New("auth.public_key_path is required when auth is enabled")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Addr 回傳HTTP伺服器監聽位址
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DSN 組出MySQL連線字串
func (d DatabaseConfig) DSN() string {
	mysqlConfig := mysql.NewConfig()
	mysqlConfig.User = d.Username
	mysqlConfig.Passwd = d.Password
	mysqlConfig.Net = "tcp"
	mysqlConfig.Addr = net.JoinHostPort(d.Host, d.Port)
	mysqlConfig.DBName = d.Database
	mysqlConfig.ParseTime = true
	mysqlConfig.Loc = time.Local
	mysqlConfig.Params = map[string]string{"charset": "utf8mb4"}
	return mysqlConfig.FormatDSN()
}
