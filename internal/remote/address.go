package remote

import (
	"net"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	// DefaultHost is the media server host used when no host is configured.
	DefaultHost = "localhost"
	// DefaultPort is the media server port used when no port is configured.
	DefaultPort = 3331
)

// Address represents media server address.
type Address struct {
	Host string
	Port int
}

// DefaultAddress returns localhost:3331.
func DefaultAddress() Address {
	return Address{Host: DefaultHost, Port: DefaultPort}
}

// Validate checks host and port range.
func (a Address) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Host, validation.Required, is.Host),
		validation.Field(&a.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

func (a Address) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}
