package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/sdsdsdw/shunting-yard-algo/pkg/config/env"
	"github.com/sdsdsdw/shunting-yard-algo/pkg/utils"
)

const DefaultMaxExpressionLength = 4096

type Config struct {
	Port                string
	UseHttp2            bool
	CorsOrigins         []string
	MaxExpressionLength int
}

func LoadConfig() (*Config, error) {
	err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/calc_api/.env")
	if err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	useHttp2Str := os.Getenv("USE_HTTP2")
	useHttp2 := useHttp2Str == "true"

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	origins := utils.RemoveEmptyStrings(utils.SplitAndTrim(os.Getenv("CORS_ORIGINS"), ","))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	maxLen := DefaultMaxExpressionLength
	if v := os.Getenv("MAX_EXPRESSION_LENGTH"); v != "" {
		maxLen, err = strconv.Atoi(v)
		if err != nil || maxLen < 1 {
			return nil, fmt.Errorf("invalid MAX_EXPRESSION_LENGTH %q: must be a positive integer", v)
		}
	}

	return &Config{
		Port:                port,
		UseHttp2:            useHttp2,
		CorsOrigins:         origins,
		MaxExpressionLength: maxLen,
	}, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
