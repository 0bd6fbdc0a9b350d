package api

import "time"

type Config struct {
	Proxy struct {
		Header  string   `yaml:"header"`
		Trusted []string `yaml:"trusted"`
	} `yaml:"proxy"`

	HTTP struct {
		Addr         string        `yaml:"addr"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		IdleTimeout  time.Duration `yaml:"idle_timeout"`
	} `yaml:"http"`

	Auth struct {
		// Token guards mutating routes. Empty disables auth.
		Token string `yaml:"token"`
	} `yaml:"auth"`

	Events struct {
		// KeepAlive is the comment interval of idle event streams.
		KeepAlive time.Duration `yaml:"keep_alive"`
	} `yaml:"events"`
}
