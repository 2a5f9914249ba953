package main

import (
	"reflect"
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	config, rest, err := ParseConfig([]string{"appendix"}, "example.config", []string{"--debug", "search", "Inception"})
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	want := &Config{}
	want.Server.Network = "tcp"
	want.Server.Host = "media.example.com"
	want.Server.Port = 4000
	want.Server.Timeout = 3 * time.Second
	want.Server.DialTimeout = time.Second
	want.Server.ReconnectionInterval = 10 * time.Second
	want.Lang = "fr"
	want.Debug = true
	if !reflect.DeepEqual(config, want) {
		t.Errorf("got %+v; want %+v", config, want)
	}
	if w := []string{"search", "Inception"}; !reflect.DeepEqual(rest, w) {
		t.Errorf("got args %v; want %v", rest, w)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("config validate failed: %v", err)
	}
}

func TestParseConfigDefault(t *testing.T) {
	config, rest, err := ParseConfig(nil, "example.config", nil)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	want := &Config{}
	want.Server.Network = "tcp"
	want.Server.Host = "localhost"
	want.Server.Port = 3331
	want.Server.DialTimeout = 5 * time.Second
	if !reflect.DeepEqual(config, want) {
		t.Errorf("got %+v; want %+v", config, want)
	}
	if len(rest) != 0 {
		t.Errorf("got args %v; want none", rest)
	}
	if got := config.Address().String(); got != "localhost:3331" {
		t.Errorf("got address %s; want localhost:3331", got)
	}
}

func TestParseConfigPriority(t *testing.T) {
	t.Setenv("MEDIAREMOTE_SERVER_PORT", "5000")
	t.Setenv("MEDIAREMOTE_SERVER_HOST", "env.example.com")
	config, _, err := ParseConfig([]string{"appendix"}, "example.config", []string{"--server.host", "127.0.0.1", "--server.timeout=250ms"})
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if config.Server.Host != "127.0.0.1" {
		t.Errorf("got host %s; want flag value", config.Server.Host)
	}
	if config.Server.Port != 5000 {
		t.Errorf("got port %d; want env value", config.Server.Port)
	}
	if config.Server.Timeout != 250*time.Millisecond {
		t.Errorf("got timeout %v; want flag value", config.Server.Timeout)
	}
	if config.Server.ReconnectionInterval != 10*time.Second {
		t.Errorf("got reconnection interval %v; want config file value", config.Server.ReconnectionInterval)
	}
}

func TestConfigValidate(t *testing.T) {
	for label, tt := range map[string]struct {
		edit func(*Config)
		err  bool
	}{
		"default":          {edit: func(c *Config) {}},
		"websocket":        {edit: func(c *Config) { c.Server.Network = "ws" }},
		"proxy":            {edit: func(c *Config) { c.Server.Proxy = "127.0.0.1:1080" }},
		"unknown network":  {edit: func(c *Config) { c.Server.Network = "udp" }, err: true},
		"empty host":       {edit: func(c *Config) { c.Server.Host = "" }, err: true},
		"zero port":        {edit: func(c *Config) { c.Server.Port = 0 }, err: true},
		"too large port":   {edit: func(c *Config) { c.Server.Port = 65536 }, err: true},
		"negative timeout": {edit: func(c *Config) { c.Server.Timeout = -time.Second }, err: true},
		"invalid proxy":    {edit: func(c *Config) { c.Server.Proxy = "proxy" }, err: true},
	} {
		t.Run(label, func(t *testing.T) {
			c, _, err := ParseConfig(nil, "", nil)
			if err != nil {
				t.Fatalf("failed to parse: %v", err)
			}
			tt.edit(c)
			err = c.Validate()
			if tt.err && err == nil {
				t.Errorf("got nil; want error")
			}
			if !tt.err && err != nil {
				t.Errorf("got %v; want nil", err)
			}
		})
	}
}
