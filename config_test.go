package compose

import (
	"errors"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative max pixels", func(c *Config) { c.MaxPixels = -1 }},
		{"negative padding", func(c *Config) { c.Padding = -2 }},
		{"negative margin", func(c *Config) { c.Margin = -1 }},
		{"negative separator", func(c *Config) { c.Separator = -1 }},
		{"supersample zero", func(c *Config) { c.Supersample = 0 }},
		{"supersample too large", func(c *Config) { c.Supersample = 17 }},
		{"negative shadow blur", func(c *Config) { c.Shadow.Blur = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Validate() = %v, want ErrInvalidConfiguration", err)
			}
		})
	}

	c := DefaultConfig()
	c.MaxPixels = 0
	if err := c.Validate(); err != nil {
		t.Errorf("zero max pixels should disable the ceiling, got %v", err)
	}
}

func TestWithConfigUsedByEngine(t *testing.T) {
	c := DefaultConfig()
	c.AssetDir = "static"
	e := newTestEngine(t, WithConfig(c))
	if got := e.Config().AssetDir; got != "static" {
		t.Errorf("Config().AssetDir = %q", got)
	}
}
