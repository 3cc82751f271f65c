package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phrazzld/tenx-cards/internal/client"
	"github.com/spf13/viper"
)

type commandContext struct {
	v *viper.Viper
}

func newCommandContext(v *viper.Viper) *commandContext {
	return &commandContext{v: v}
}

func (c *commandContext) serverURL() string {
	return strings.TrimSpace(c.v.GetString("server"))
}

func (c *commandContext) tokenPath() (string, error) {
	if p := strings.TrimSpace(c.v.GetString("token_file")); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(dir, "tenx-cards", "token"), nil
}

// newClient returns an API client, carrying the stored token when there is one.
func (c *commandContext) newClient() (*client.Client, error) {
	var opts []client.Option
	token, err := c.loadToken()
	if err != nil {
		return nil, err
	}
	if token != "" {
		opts = append(opts, client.WithToken(token))
	}
	return client.New(c.serverURL(), opts...)
}

func (c *commandContext) loadToken() (string, error) {
	path, err := c.tokenPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (c *commandContext) saveToken(token string) error {
	path, err := c.tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}
