package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	AI       AIConfig
	Storage  StorageConfig
	Captcha  CaptchaConfig
	Google   GoogleConfig
	Activity ActivityConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env       string // development, staging, production
	Name      string
	PublicURL string // URL pública del frontend; se usa en el QR del recibo y en el sitemap
	LogLevel  string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	// ForceIPv4 marca con tcp4 las conexiones; para redes de contenedores sin ruta IPv6
	// hacia un host que publica registros AAAA.
	ForceIPv4 bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	BodyLimitMB int // debe cubrir 5 fotos de 20 MB más los campos del formulario
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AIConfig credenciales y modelos de los proveedores de chat.
type AIConfig struct {
	GeminiAPIKey    string
	GeminiModel     string
	GroqAPIKey      string
	GroqModel       string
	AnthropicAPIKey string
	AnthropicModel  string
	StaffProvider   string // gemini | groq | anthropic: proveedor del asistente manajemen-servis
}

// StorageConfig almacenamiento de archivos subidos (fotos de servicio, productos, avatares).
type StorageConfig struct {
	BaseDir       string
	PublicBaseURL string
	OrphanTTL     time.Duration // antigüedad mínima para considerar huérfano un archivo no referenciado
	SweepInterval time.Duration // 0 desactiva el barrido
}

// CaptchaConfig verificación reCAPTCHA.
type CaptchaConfig struct {
	SecretKey string  // vacío = verificación desactivada
	MinScore  float64 // solo aplica si Google devuelve score (reCAPTCHA v3)
}

// GoogleConfig inicio de sesión con Google.
type GoogleConfig struct {
	ClientID string
}

// ActivityConfig dónde se guarda el feed de actividad reciente.
type ActivityConfig struct {
	Store          string // postgres | dynamodb
	DynamoTable    string
	AWSRegion      string
	DynamoEndpoint string // opcional, p. ej. http://localhost:8000 para DynamoDB local
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, GEMINI_API_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:       getString(v, "APP_ENV", "development"),
			Name:      getString(v, "APP_NAME", "puscom-api"),
			PublicURL: strings.TrimRight(getString(v, "APP_PUBLIC_URL", "http://localhost:3000"), "/"),
			LogLevel:  getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "puscom"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),

			MaxConns:        int32(getInt(v, "DB_MAX_CONNS", 10)),
			MinConns:        int32(getInt(v, "DB_MIN_CONNS", 1)),
			MaxConnLifetime: getDuration(v, "DB_MAX_CONN_LIFETIME", time.Hour),
			MaxConnIdleTime: getDuration(v, "DB_MAX_CONN_IDLE_TIME", 15*time.Minute),
			ForceIPv4:       getBool(v, "DB_FORCE_IPV4", false),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60*24),
			Issuer:     getString(v, "JWT_ISSUER", "puscom"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			BodyLimitMB: getInt(v, "HTTP_BODY_LIMIT_MB", 110),
		},
		AI: AIConfig{
			GeminiAPIKey:    getString(v, "GEMINI_API_KEY", ""),
			GeminiModel:     getString(v, "GEMINI_MODEL", "gemini-1.5-flash"),
			GroqAPIKey:      getString(v, "GROQ_API_KEY", ""),
			GroqModel:       getString(v, "GROQ_MODEL", "llama-3.3-70b-versatile"),
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
			StaffProvider:   strings.ToLower(getString(v, "AI_STAFF_PROVIDER", "gemini")),
		},
		Storage: StorageConfig{
			BaseDir:       getString(v, "STORAGE_DIR", "./uploads"),
			PublicBaseURL: strings.TrimRight(getString(v, "STORAGE_PUBLIC_URL", "/uploads"), "/"),
			OrphanTTL:     getDuration(v, "STORAGE_ORPHAN_TTL", 24*time.Hour),
			SweepInterval: getDuration(v, "STORAGE_SWEEP_INTERVAL", time.Hour),
		},
		Captcha: CaptchaConfig{
			SecretKey: getString(v, "RECAPTCHA_SECRET_KEY", ""),
			MinScore:  getFloat(v, "RECAPTCHA_MIN_SCORE", 0.5),
		},
		Google: GoogleConfig{
			ClientID: getString(v, "GOOGLE_CLIENT_ID", ""),
		},
		Activity: ActivityConfig{
			Store:          strings.ToLower(getString(v, "ACTIVITY_STORE", "postgres")),
			DynamoTable:    getString(v, "ACTIVITY_DYNAMO_TABLE", "recent_activities"),
			AWSRegion:      getString(v, "AWS_REGION", "us-east-1"),
			DynamoEndpoint: getString(v, "DYNAMODB_ENDPOINT", ""),
		},
	}

	if cfg.DB.MaxConns < 1 || cfg.DB.MinConns < 0 || cfg.DB.MinConns > cfg.DB.MaxConns {
		return nil, fmt.Errorf("config: DB_MIN_CONNS/DB_MAX_CONNS inválidos (%d/%d)", cfg.DB.MinConns, cfg.DB.MaxConns)
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	switch cfg.Activity.Store {
	case "postgres", "dynamodb":
	default:
		return nil, fmt.Errorf("config: ACTIVITY_STORE inválido %q (postgres|dynamodb)", cfg.Activity.Store)
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(v.GetString(key), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}

// getDuration acepta "90m", "24h" o un número de segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
