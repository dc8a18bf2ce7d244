package config

import (
	"os"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "standard configuration",
			cfg: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "postgres",
				Password: "0000",
				Database: "education_db",
				SSLMode:  "disable",
			},
			want: "host=localhost port=5432 user=postgres password=0000 dbname=education_db sslmode=disable",
		},
		{
			name: "production configuration",
			cfg: DatabaseConfig{
				Host:     "db.example.com",
				Port:     5433,
				User:     "produser",
				Password: "securepass123",
				Database: "proddb",
				SSLMode:  "require",
			},
			want: "host=db.example.com port=5433 user=produser password=securepass123 dbname=proddb sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ConnectionString(); got != tt.want {
				t.Errorf("DatabaseConfig.ConnectionString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDatabaseConfig_Address(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "postgres hides password",
			cfg: DatabaseConfig{
				Driver:   DriverPostgres,
				Host:     "localhost",
				Port:     5432,
				User:     "postgres",
				Password: "secret",
				Database: "education_db",
			},
			want: "postgres@localhost:5432/education_db",
		},
		{
			name: "sqlite",
			cfg:  DatabaseConfig{Driver: DriverSQLite, Path: "/var/lib/edurecords.db"},
			want: "sqlite:/var/lib/edurecords.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Address(); got != tt.want {
				t.Errorf("DatabaseConfig.Address() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInitConfig(t *testing.T) {
	originalWd, _ := os.Getwd()
	defer os.Chdir(originalWd)

	tests := []struct {
		name    string
		env     string
		wantErr bool
	}{
		{
			name:    "default dev environment",
			env:     "",
			wantErr: false,
		},
		{
			name:    "test environment",
			env:     "test",
			wantErr: false,
		},
		{
			name:    "prod environment",
			env:     "prod",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()

			err := InitConfig(tt.env)
			if (err != nil) != tt.wantErr {
				t.Errorf("InitConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if viper.GetString("SERVER_HOST") == "" {
				t.Error("InitConfig() SERVER_HOST should have a default")
			}
			if viper.GetInt("SERVER_PORT") == 0 {
				t.Error("InitConfig() SERVER_PORT should have a default")
			}
			if viper.GetString("DB_DRIVER") == "" {
				t.Error("InitConfig() DB_DRIVER should have a default")
			}
			if viper.GetString("LOG_LEVEL") == "" {
				t.Error("InitConfig() LOG_LEVEL should have a default")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func()
		wantErr     bool
		wantErrMsg  string
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "postgres with password",
			setupEnv: func() {
				viper.Set("DB_PASSWORD", "0000")
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				if cfg.Server.Host != "0.0.0.0" {
					t.Errorf("Load() Server.Host = %v, want 0.0.0.0", cfg.Server.Host)
				}
				if cfg.Server.Port != 50051 {
					t.Errorf("Load() Server.Port = %v, want 50051", cfg.Server.Port)
				}
				if cfg.Database.Driver != DriverPostgres {
					t.Errorf("Load() Database.Driver = %v, want postgres", cfg.Database.Driver)
				}
				if cfg.Database.Port != 5432 {
					t.Errorf("Load() Database.Port = %v, want 5432", cfg.Database.Port)
				}
				if cfg.Database.Database != "education_db" {
					t.Errorf("Load() Database.Database = %v, want education_db", cfg.Database.Database)
				}
				if cfg.Database.Password != "0000" {
					t.Errorf("Load() Database.Password = %v, want 0000", cfg.Database.Password)
				}
				if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
					t.Errorf("Load() Log = %+v, want info/json", cfg.Log)
				}
			},
		},
		{
			name:       "postgres without password",
			setupEnv:   func() {},
			wantErr:    true,
			wantErrMsg: "DB_PASSWORD is required (set via environment variable or .env file)",
		},
		{
			name: "sqlite without password",
			setupEnv: func() {
				viper.Set("DB_DRIVER", DriverSQLite)
				viper.Set("DB_PATH", "/tmp/roster.db")
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				if cfg.Database.Driver != DriverSQLite {
					t.Errorf("Load() Database.Driver = %v, want sqlite", cfg.Database.Driver)
				}
				if cfg.Database.Path != "/tmp/roster.db" {
					t.Errorf("Load() Database.Path = %v, want /tmp/roster.db", cfg.Database.Path)
				}
			},
		},
		{
			name: "sqlite without path",
			setupEnv: func() {
				viper.Set("DB_DRIVER", DriverSQLite)
				viper.Set("DB_PATH", "")
			},
			wantErr: true,
		},
		{
			name: "unknown driver",
			setupEnv: func() {
				viper.Set("DB_DRIVER", "oracle")
				viper.Set("DB_PASSWORD", "0000")
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			setupEnv: func() {
				viper.Set("DB_PASSWORD", "0000")
				viper.Set("LOG_LEVEL", "verbose")
			},
			wantErr: true,
		},
		{
			name: "server port out of range",
			setupEnv: func() {
				viper.Set("DB_PASSWORD", "0000")
				viper.Set("SERVER_PORT", 70000)
			},
			wantErr: true,
		},
		{
			name: "custom server config",
			setupEnv: func() {
				viper.Set("DB_PASSWORD", "pass123")
				viper.Set("SERVER_HOST", "custom.host")
				viper.Set("SERVER_PORT", 8080)
				viper.Set("METRICS_PORT", 0)
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				if cfg.Server.Host != "custom.host" {
					t.Errorf("Load() Server.Host = %v, want custom.host", cfg.Server.Host)
				}
				if cfg.Server.Port != 8080 {
					t.Errorf("Load() Server.Port = %v, want 8080", cfg.Server.Port)
				}
				if cfg.Server.MetricsPort != 0 {
					t.Errorf("Load() Server.MetricsPort = %v, want 0", cfg.Server.MetricsPort)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()
			setDefaults()
			tt.setupEnv()

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if tt.wantErrMsg != "" && err.Error() != tt.wantErrMsg {
					t.Errorf("Load() error = %v, want %v", err.Error(), tt.wantErrMsg)
				}
				if tt.wantErrMsg == "" && !strings.HasPrefix(err.Error(), "invalid configuration:") {
					t.Errorf("Load() error = %v, want validation error", err)
				}
				return
			}

			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root, err := findProjectRoot()
	if err != nil {
		t.Errorf("findProjectRoot() error = %v, want nil", err)
		return
	}

	goModPath := root + "/go.mod"
	if _, err := os.Stat(goModPath); os.IsNotExist(err) {
		t.Errorf("findProjectRoot() returned %v, but go.mod does not exist at %v", root, goModPath)
	}
}
