package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":              "s3cret",
		"REGISTRATION_CODE":       "member",
		"ADMIN_REGISTRATION_CODE": "board",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "5001" {
		t.Fatalf("expected default port 5001, got %q", cfg.Port)
	}
	if cfg.Auth.LoginLockout != 15*time.Minute || cfg.Auth.LoginMaxAttempts != 5 {
		t.Fatalf("unexpected throttle defaults: %+v", cfg.Auth)
	}
	if cfg.Mongo.Database != "tcmosque" {
		t.Fatalf("unexpected mongo db %q", cfg.Mongo.Database)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"REGISTRATION_CODE":       "member",
		"ADMIN_REGISTRATION_CODE": "board",
	}))
	if err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected missing JWT_SECRET error, got %v", err)
	}
}

func TestLoad_IdenticalCodes(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":              "s3cret",
		"REGISTRATION_CODE":       "same",
		"ADMIN_REGISTRATION_CODE": "same",
	}))
	if err == nil {
		t.Fatalf("expected error for identical registration codes")
	}
}
