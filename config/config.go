package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config armazena todas as configurações do GoCorretora.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Banco de Dados (PostgreSQL)
	DatabaseURL string
	DBTimeout   time.Duration // 0 desativa o timeout por unidade de trabalho
	AutoMigrate bool

	// Segurança (JWT + senhas)
	JWTSecretKey string
	JWTAlgorithm string
	TokenExpiry  time.Duration
	BcryptCost   int
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
// DATABASE_URL e JWT_SECRET_KEY são obrigatórias.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Banco de Dados (PostgreSQL)
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second, // 5s padrão
		AutoMigrate: getBoolEnv("AUTO_MIGRATE", true),

		// 3. Segurança
		JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
		JWTAlgorithm: strings.ToUpper(getEnv("JWT_ALGORITHM", "HS256")),
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_MIN", 20) * time.Minute, // 20 min padrão
		BcryptCost:   getIntEnv("BCRYPT_COST", bcrypt.DefaultCost),
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecretKey == "" {
		missing = append(missing, "JWT_SECRET_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("erro de configuração: variáveis obrigatórias ausentes: %s", strings.Join(missing, ", "))
	}
	if cfg.TokenExpiry <= 0 {
		return nil, fmt.Errorf("erro de configuração: JWT_EXPIRY_MIN deve ser positivo")
	}

	return cfg, nil
}

// DatabaseURL lê apenas DATABASE_URL; usado pelo utilitário de migração,
// que não precisa das credenciais de JWT.
func DatabaseURL() (string, error) {
	dsn := getEnv("DATABASE_URL", "")
	if dsn == "" {
		return "", fmt.Errorf("erro de configuração: variáveis obrigatórias ausentes: DATABASE_URL")
	}
	return dsn, nil
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getBoolEnv aceita os formatos de strconv.ParseBool ("1", "true", "false", ...).
func getBoolEnv(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um booleano válido. Usando padrão (%t).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
