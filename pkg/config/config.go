package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	Backend BackendConfig
	AI      AIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración del token de sesión local.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// BackendConfig configuración del remote store (API REST que persiste catálogo y entradas).
// El hub no tiene almacenamiento propio: todo lo durable vive detrás de BaseURL.
type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// AIConfig configuración del servicio de extracción por imagen (Gemini).
// Si GeminiAPIKey está vacío, el endpoint de escaneo responde con error descriptivo.
type AIConfig struct {
	GeminiAPIKey string
	GeminiModel  string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, JWT_SECRET, BACKEND_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// Bind de variables de entorno (Viper las lee automáticamente si AutomaticEnv está activo)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "omnistock-hub"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "omnistock-hub"),
		},
		Backend: BackendConfig{
			BaseURL:        getString(v, "BACKEND_BASE_URL", "https://inventry-mgmt-backend.onrender.com/api"),
			TimeoutSeconds: getInt(v, "BACKEND_TIMEOUT_SECONDS", 15),
		},
		AI: AIConfig{
			GeminiAPIKey: getString(v, "GEMINI_API_KEY", ""),
			GeminiModel:  getString(v, "GEMINI_MODEL", "gemini-1.5-flash"),
		},
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
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
