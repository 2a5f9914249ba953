package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/meiraka/mediaremote/internal/remote"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is mediaremote application config struct.
type Config struct {
	Server struct {
		Network              string        `mapstructure:"network"`
		Host                 string        `mapstructure:"host"`
		Port                 int           `mapstructure:"port"`
		Path                 string        `mapstructure:"path"`
		Proxy                string        `mapstructure:"proxy"`
		Timeout              time.Duration `mapstructure:"timeout"`
		DialTimeout          time.Duration `mapstructure:"dial_timeout"`
		ReconnectionInterval time.Duration `mapstructure:"reconnection_interval"`
	} `mapstructure:"server"`
	Lang  string `mapstructure:"lang"`
	Debug bool   `mapstructure:"debug"`
}

// ParseConfig parses yaml config, environment variables and flags.
// It returns the positional arguments left after flags.
func ParseConfig(dir []string, name string, args []string) (*Config, []string, error) {
	v := viper.New()
	v.SetDefault("server.network", "tcp")
	v.SetDefault("server.host", remote.DefaultHost)
	v.SetDefault("server.port", remote.DefaultPort)
	v.SetDefault("server.path", "")
	v.SetDefault("server.proxy", "")
	v.SetDefault("server.timeout", time.Duration(0))
	v.SetDefault("server.dial_timeout", 5*time.Second)
	v.SetDefault("server.reconnection_interval", time.Duration(0))
	v.SetDefault("lang", "")
	v.SetDefault("debug", false)

	if len(dir) != 0 {
		v.SetConfigName(name)
		v.SetConfigType("yaml")
		for _, d := range dir {
			v.AddConfigPath(d)
		}
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, nil, err
			}
		}
	}
	v.SetEnvPrefix("mediaremote")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	flagset := pflag.NewFlagSet(filepath.Base(os.Args[0]), pflag.ContinueOnError)
	flagset.String("server.network", "", "media server network: tcp, tcp4, tcp6, ws or wss")
	flagset.String("server.host", "", "media server host to connect")
	flagset.Int("server.port", 0, "media server port to connect")
	flagset.String("server.path", "", "websocket path for ws and wss network")
	flagset.String("server.proxy", "", "SOCKS5 proxy address")
	flagset.Duration("server.timeout", 0, "maximum time to wait for a reply; 0 waits forever")
	flagset.Duration("server.dial_timeout", 0, "maximum time to wait for a connection")
	flagset.Duration("server.reconnection_interval", 0, "reconnect in background after a failure; 0 disables")
	flagset.String("lang", "", "message language, defaults to $LANG")
	flagset.BoolP("debug", "d", false, "print debug logs")
	if err := flagset.Parse(args); err != nil {
		return nil, nil, err
	}
	if err := v.BindPFlags(flagset); err != nil {
		return nil, nil, err
	}
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, nil, err
	}
	return c, flagset.Args(), nil
}

// Validate validates config data.
func (c *Config) Validate() error {
	return validation.ValidateStruct(&c.Server,
		validation.Field(&c.Server.Network, validation.Required, validation.In("tcp", "tcp4", "tcp6", "ws", "wss")),
		validation.Field(&c.Server.Host, validation.Required, is.Host),
		validation.Field(&c.Server.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.Server.Proxy, is.DialString),
		validation.Field(&c.Server.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&c.Server.DialTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.Server.ReconnectionInterval, validation.Min(time.Duration(0))),
	)
}

// Address returns media server address.
func (c *Config) Address() remote.Address {
	return remote.Address{Host: c.Server.Host, Port: c.Server.Port}
}

// ClientOptions returns remote client options.
func (c *Config) ClientOptions() *remote.ClientOptions {
	return &remote.ClientOptions{
		Timeout:              c.Server.Timeout,
		DialTimeout:          c.Server.DialTimeout,
		ReconnectionInterval: c.Server.ReconnectionInterval,
		Path:                 c.Server.Path,
		Proxy:                c.Server.Proxy,
	}
}
