package config

import (
	"bytes"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// YAML renders the effective configuration in config.yaml form.
func (c *Config) YAML() (string, error) {
	view := struct {
		Parser ParserConfig `yaml:"parser"`
		Log    LogConfig    `yaml:"log"`
		UI     UIConfig     `yaml:"ui"`
		Serve  struct {
			Host              string `yaml:"host"`
			Port              int    `yaml:"port"`
			InactivityTimeout string `yaml:"inactivity_timeout"`
		} `yaml:"serve"`
	}{Parser: c.Parser, Log: c.Log, UI: c.UI}
	view.Serve.Host = c.Serve.Host
	view.Serve.Port = c.Serve.Port
	view.Serve.InactivityTimeout = c.Serve.InactivityTimeout.String()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return "", errors.Wrap(err, "failed to encode config as YAML")
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, "failed to encode config as YAML")
	}
	return buf.String(), nil
}
