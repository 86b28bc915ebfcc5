package config

import (
	"os"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{
			name:     "true value",
			key:      "TEST_BOOL",
			value:    "true",
			def:      false,
			expected: true,
		},
		{
			name:     "false value",
			key:      "TEST_BOOL_FALSE",
			value:    "false",
			def:      true,
			expected: false,
		},
		{
			name:     "invalid value uses default",
			key:      "TEST_BOOL_INVALID",
			value:    "invalid",
			def:      true,
			expected: true,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_BOOL_MISSING",
			value:    "",
			def:      false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []string
	}{
		{name: "empty", in: "", expected: nil},
		{name: "single", in: "nav.domain.ext", expected: []string{"nav.domain.ext"}},
		{name: "spaces and quotes", in: ` "a.ext" , 'b.ext',, c.ext `, expected: []string{"a.ext", "b.ext", "c.ext"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.in)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndTrim() = %v, want %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLoadMemoryStoreDefaults(t *testing.T) {
	t.Setenv("NAVBOARD_STORE", "memory")
	t.Setenv("NAVBOARD_REDIS_ADDR", "")

	cfg := Load()

	if cfg.Store != StoreMemory {
		t.Errorf("Store = %q, want %q", cfg.Store, StoreMemory)
	}
	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.DocumentKey != "data" {
		t.Errorf("DocumentKey = %q, want data", cfg.DocumentKey)
	}
	if cfg.MaxBodyBytes != 64<<10 {
		t.Errorf("MaxBodyBytes = %d, want %d", cfg.MaxBodyBytes, 64<<10)
	}
	if cfg.UpdateMaxRetries != 5 {
		t.Errorf("UpdateMaxRetries = %d, want 5", cfg.UpdateMaxRetries)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %q, want empty for memory store", cfg.RedisAddr)
	}
	if cfg.TrustProxy {
		t.Error("TrustProxy should default to false")
	}
}

func TestLoadRedisStore(t *testing.T) {
	t.Setenv("NAVBOARD_STORE", "REDIS")
	t.Setenv("NAVBOARD_REDIS_ADDR", "localhost:6379")
	t.Setenv("NAVBOARD_REDIS_DB", "2")
	t.Setenv("NAVBOARD_DOCUMENT_KEY", "nav:data")
	t.Setenv("NAVBOARD_ALLOWED_HOSTS", "nav.domain.ext, *.lan")

	cfg := Load()

	if cfg.Store != StoreRedis {
		t.Errorf("Store = %q, want %q", cfg.Store, StoreRedis)
	}
	if cfg.RedisAddr != "localhost:6379" || cfg.RedisDB != 2 {
		t.Errorf("redis = %s/%d, want localhost:6379/2", cfg.RedisAddr, cfg.RedisDB)
	}
	if cfg.DocumentKey != "nav:data" {
		t.Errorf("DocumentKey = %q, want nav:data", cfg.DocumentKey)
	}
	if len(cfg.AllowedHosts) != 2 || cfg.AllowedHosts[1] != "*.lan" {
		t.Errorf("AllowedHosts = %v", cfg.AllowedHosts)
	}
	if cfg.RedisConnectTimeout != 30*time.Second {
		t.Errorf("RedisConnectTimeout = %v, want 30s", cfg.RedisConnectTimeout)
	}
}

func TestLoadPanics(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "unknown store",
			env:  map[string]string{"NAVBOARD_STORE": "etcd"},
		},
		{
			name: "redis without address",
			env:  map[string]string{"NAVBOARD_STORE": "redis", "NAVBOARD_REDIS_ADDR": ""},
		},
		{
			name: "required password missing",
			env: map[string]string{
				"NAVBOARD_STORE":                   "redis",
				"NAVBOARD_REDIS_ADDR":              "localhost:6379",
				"NAVBOARD_REDIS_PASSWORD_REQUIRED": "true",
				"NAVBOARD_REDIS_PASSWORD":          "",
			},
		},
		{
			name: "non-positive body limit",
			env:  map[string]string{"NAVBOARD_STORE": "memory", "NAVBOARD_MAX_BODY_BYTES": "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Load() should have panicked")
				}
			}()
			Load()
		})
	}
}
