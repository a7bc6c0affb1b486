package confs

import (
	"log/slog"
	"reflect"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")
	t.Setenv("AMQP_EXCHANGE", "")
	t.Setenv("MONGO_COLLECTION_PROPERTIES", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "3536" || cfg.Store != StoreMongo || cfg.LogLevel != slog.LevelInfo {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.AMQP.Exchange != "listings" || cfg.Mongo.PropertiesCollection != "properties" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.AllowOrigins != nil {
		t.Errorf("expected no origin list, got %v", cfg.AllowOrigins)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store != StorePostgres || cfg.LogLevel != slog.LevelDebug || !cfg.LogJSON {
		t.Errorf("unexpected config %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.AllowOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("unexpected origins %v", cfg.AllowOrigins)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := LoadConfig(); err == nil {
		t.Errorf("expected missing secret to fail")
	}

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "sqlite")
	if _, err := LoadConfig(); err == nil {
		t.Errorf("expected unknown store to fail")
	}
}
