package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	Store  StoreConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	store, err := loadStoreConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Store: store}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "3000"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":3000" 或 "127.0.0.1:3000"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// StoreConfig 描述 tour 数据存储配置。
type StoreConfig struct {
	Driver     string
	DataFile   string
	SQLitePath string
	SeedSQLite bool
}

func loadStoreConfig() (StoreConfig, error) {
	driver := strings.ToLower(getEnvOrDefault("TOURS_STORE", StoreFile))
	if driver != StoreFile && driver != StoreSQLite {
		return StoreConfig{}, fmt.Errorf("invalid TOURS_STORE value %q: want %q or %q", driver, StoreFile, StoreSQLite)
	}

	seed, err := parseBoolEnv("TOURS_SQLITE_SEED", true)
	if err != nil {
		return StoreConfig{}, err
	}

	return StoreConfig{
		Driver:     driver,
		DataFile:   getEnvOrDefault("TOURS_DATA_FILE", "dev-data/data/tours-simple.json"),
		SQLitePath: getEnvOrDefault("TOURS_SQLITE_PATH", "./data/tours.db"),
		SeedSQLite: seed,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}
