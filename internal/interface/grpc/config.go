package grpcservice

import (
	"fmt"
)

type Config struct {
	Port        uint32
	AdminPort   uint32
	EnablePprof bool
}

func (c Config) Validate() error {
	if c.Port == 0 {
		return fmt.Errorf("missing port")
	}
	return nil
}

func (c Config) address() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c Config) adminAddress() string {
	return fmt.Sprintf(":%d", c.AdminPort)
}

// hasAdminPort tells whether the admin api is served on its own listener.
func (c Config) hasAdminPort() bool {
	return c.AdminPort > 0 && c.AdminPort != c.Port
}
