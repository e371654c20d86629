package cmd

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"struct-sync/internal/dialect"
	"struct-sync/internal/snapshot"
)

// Roles a database entry can play in a comparison.
const (
	RoleSource = "source"
	RoleTarget = "target"
)

type DBConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Role   string `mapstructure:"role"`
	Active bool   `mapstructure:"active"`
}

func loadDBConfigs() ([]DBConfig, error) {
	var configs []DBConfig
	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}
	return configs, nil
}

// GetActiveDBConfig returns the currently active database configuration.
func GetActiveDBConfig() (*DBConfig, error) {
	configs, err := loadDBConfigs()
	if err != nil {
		return nil, err
	}
	return pickActive(configs, "")
}

// GetDBConfig selects a database entry by name, else by role, else the
// active one. Among several entries with the same role the active one wins.
func GetDBConfig(role, name string) (*DBConfig, error) {
	configs, err := loadDBConfigs()
	if err != nil {
		return nil, err
	}

	if name != "" {
		for i := range configs {
			if strings.EqualFold(configs[i].Name, name) {
				return &configs[i], nil
			}
		}
		return nil, fmt.Errorf("no database named %q in config", name)
	}

	if role == "" {
		return pickActive(configs, "")
	}

	var withRole []DBConfig
	for _, c := range configs {
		if strings.EqualFold(c.Role, role) {
			withRole = append(withRole, c)
		}
	}
	switch len(withRole) {
	case 0:
		return nil, fmt.Errorf("no database with role %q in config", role)
	case 1:
		return &withRole[0], nil
	default:
		return pickActive(withRole, role)
	}
}

func pickActive(configs []DBConfig, role string) (*DBConfig, error) {
	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	scope := "database"
	if role != "" {
		scope = role + " database"
	}
	if count == 0 {
		return nil, fmt.Errorf("no active %s found in config (set active: true)", scope)
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active %ss found (only one can be active)", scope)
	}

	return activeConfig, nil
}

// openDB opens cfg with the driver its dialect registers. The caller closes
// the handle.
func openDB(cfg *DBConfig) (*sql.DB, dialect.Dialect, error) {
	d := dialect.GetDialect(cfg.Driver)
	db, err := sql.Open(d.DriverName(), cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	return db, d, nil
}

// dumperFor prepares a pg_dump run for cfg.
func dumperFor(cfg *DBConfig) (*snapshot.Dumper, error) {
	d := dialect.GetDialect(cfg.Driver)
	if !d.SupportsSnapshot() {
		return nil, fmt.Errorf("%s (%s): %w", cfg.Name, d.Name(), snapshot.ErrDumpUnsupported)
	}
	params, err := snapshot.ParseConnParams(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Name, err)
	}
	return snapshot.NewDumper(viper.GetString("settings.pg_dump"), params), nil
}
