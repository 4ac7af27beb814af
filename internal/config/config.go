package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name, e.g. LEDGER_ACCOUNTS_FILE.
const Prefix = "LEDGER"

type Config struct {
	AccountsFile     string `envconfig:"ACCOUNTS_FILE" default:"accounts.txt"`
	TransactionsFile string `envconfig:"TRANSACTIONS_FILE" default:"transactions.txt"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	MaxAllocationAttempts int `envconfig:"MAX_ALLOCATION_ATTEMPTS" default:"1000"`
	MiniStatementSize     int `envconfig:"MINI_STATEMENT_SIZE" default:"10"`

	OperatorWorkers   int `envconfig:"OPERATOR_WORKERS" default:"1"`
	OperatorQueueSize int `envconfig:"OPERATOR_QUEUE_SIZE" default:"1000"`
}

// ProcessEnvironmentVariables reads the configuration from the environment.
// A .env file in the working directory (or the given files) is loaded first
// when present; variables already set in the environment win.
func ProcessEnvironmentVariables(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	// In all cases the defaults describe a ledger in the working directory
	var env Config
	if err := envconfig.Process(Prefix, &env); err != nil {
		return nil, err
	}

	if err := env.Validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.AccountsFile) == "" {
		return errors.New("config: accounts file is empty")
	}
	if strings.TrimSpace(c.TransactionsFile) == "" {
		return errors.New("config: transactions file is empty")
	}
	if c.AccountsFile == c.TransactionsFile {
		return errors.New("config: accounts and transactions files must differ")
	}

	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}

	for name, v := range map[string]int{
		"max allocation attempts": c.MaxAllocationAttempts,
		"mini statement size":     c.MiniStatementSize,
		"operator workers":        c.OperatorWorkers,
		"operator queue size":     c.OperatorQueueSize,
	} {
		if v < 1 {
			return fmt.Errorf("config: %s must be positive, got %d", name, v)
		}
	}
	return nil
}
