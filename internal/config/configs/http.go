package configs

import "time"

// HTTP defines configuration for the HTTP server. Callers of the bid
// endpoint enforce a deadline of about one second, so the read and write
// timeouts default to that value.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port            uint16        `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"1s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"1s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}
