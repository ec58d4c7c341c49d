package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMongoDB  = "mongodb"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Mongo          Mongo          `mapstructure:",squash"`
	Mail           Mail           `mapstructure:",squash"`
	Report         Report         `mapstructure:",squash"`
	ReportSchedule ReportSchedule `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
	Cors           Cors           `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Mongo struct {
	URI      string `mapstructure:"mongo_uri"`
	Database string `mapstructure:"mongo_database"`
}

// Mail configura o provedor de email transacional (SMTP autenticado por API key)
type Mail struct {
	Host     string        `mapstructure:"mail_host"`
	Port     int           `mapstructure:"mail_port"`
	Username string        `mapstructure:"mail_username"`
	APIKey   string        `mapstructure:"mail_api_key"`
	From     string        `mapstructure:"mail_from"`
	FromName string        `mapstructure:"mail_from_name"`
	Timeout  time.Duration `mapstructure:"mail_timeout"`
}

type Report struct {
	TempDir           string  `mapstructure:"report_temp_dir"`
	CurrencySymbol    string  `mapstructure:"report_currency_symbol"`
	CurrencyThreshold float64 `mapstructure:"report_currency_threshold"`
}

type ReportSchedule struct {
	CronSchedule string   `mapstructure:"report_schedule_cron"`
	Enabled      bool     `mapstructure:"report_schedule_enabled"`
	LookbackDays int      `mapstructure:"report_schedule_lookback_days"`
	Types        []string `mapstructure:"report_schedule_types"`
	Recipients   []string `mapstructure:"report_schedule_recipients"`
}

type Auth struct {
	SecretKey         string `mapstructure:"auth_secret_key"`
	ServiceAPIKeyHash string `mapstructure:"auth_service_api_key_hash"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// IsDevelopment indica se a aplicação roda em ambiente local
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.App.Env)
	return env == "" || env == "development" || env == "dev"
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_ENV", "development")

	viper.SetDefault("DATABASE_DRIVER", DriverPostgres)
	viper.SetDefault("DATABASE_URL", "localhost:5432/travellr?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "travellr")

	viper.SetDefault("MAIL_HOST", "smtp.sendgrid.net")
	viper.SetDefault("MAIL_PORT", 587)
	viper.SetDefault("MAIL_USERNAME", "apikey")
	viper.SetDefault("MAIL_API_KEY", "")
	viper.SetDefault("MAIL_FROM", "reports@travellr.com")
	viper.SetDefault("MAIL_FROM_NAME", "Travellr Reports")
	viper.SetDefault("MAIL_TIMEOUT", "30s")

	viper.SetDefault("REPORT_TEMP_DIR", os.TempDir())
	viper.SetDefault("REPORT_CURRENCY_SYMBOL", "$")
	viper.SetDefault("REPORT_CURRENCY_THRESHOLD", 1000)

	// Relatórios agendados
	viper.SetDefault("REPORT_SCHEDULE_CRON", "0 7 * * 1")    // Toda segunda-feira às 7h
	viper.SetDefault("REPORT_SCHEDULE_ENABLED", false)       // Desabilitado por padrão
	viper.SetDefault("REPORT_SCHEDULE_LOOKBACK_DAYS", 7)     // Última semana
	viper.SetDefault("REPORT_SCHEDULE_TYPES", "revenue,booking,vendor")
	viper.SetDefault("REPORT_SCHEDULE_RECIPIENTS", "")

	viper.SetDefault("AUTH_SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SERVICE_API_KEY_HASH", "")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.ReportSchedule.Types = compact(config.ReportSchedule.Types)
	config.ReportSchedule.Recipients = compact(config.ReportSchedule.Recipients)
	config.Cors.AllowedOrigins = compact(config.Cors.AllowedOrigins)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate verifica combinações de configuração que impediriam a inicialização
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMongoDB:
	default:
		return fmt.Errorf("config: driver de banco de dados não suportado: %q", c.Database.Driver)
	}

	if strings.TrimSpace(c.Auth.SecretKey) == "" {
		return fmt.Errorf("config: AUTH_SECRET_KEY é obrigatório")
	}

	if c.Report.CurrencyThreshold < 0 {
		return fmt.Errorf("config: REPORT_CURRENCY_THRESHOLD não pode ser negativo")
	}

	if c.ReportSchedule.Enabled && len(c.ReportSchedule.Recipients) == 0 {
		return fmt.Errorf("config: REPORT_SCHEDULE_RECIPIENTS é obrigatório quando o agendamento está habilitado")
	}

	return nil
}

// compact remove entradas vazias e espaços das listas separadas por vírgula
func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
