package pubsub

const defaultBuffer = 64

type Config struct {
	// Buffer is the per-subscription channel capacity.
	Buffer int `yaml:"buffer"`
}

type RedisConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	Namespace string `yaml:"namespace"`
}
