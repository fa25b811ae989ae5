// Package config wraps viper with the defaults of the simulation host.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	validator "gopkg.in/go-playground/validator.v9"
)

// EnvPrefix environment variables override keys as SWEEPAOI_AOI_CAPACITY
const EnvPrefix = "sweepaoi"

// Config is a wrapper around a viper config
type Config struct {
	config *viper.Viper
}

// NewConfig creates a config, the first viper given is used, defaults are
// filled for keys it leaves unset
func NewConfig(cfgs ...*viper.Viper) *Config {
	var cfg *viper.Viper
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	} else {
		cfg = viper.New()
	}

	cfg.SetEnvPrefix(EnvPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	c := &Config{config: cfg}
	c.fillDefaultValues()
	return c
}

// Load reads the file at path, any format viper understands
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return NewConfig(v), nil
}

func (c *Config) fillDefaultValues() {
	defaultsMap := map[string]interface{}{
		"aoi.capacity":    1 << 10,
		"aoi.enterradius": 100,
		"aoi.leaveradius": 130,

		"sim.population":   3,
		"sim.width":        1000,
		"sim.height":       600,
		"sim.minspeed":     4,
		"sim.maxspeed":     14,
		"sim.tickinterval": time.Second,
		"sim.spawnmin":     100,
		"sim.spawnmax":     200,
		"sim.seed":         0,

		"logger.level":      "info",
		"logger.dir":        "",
		"logger.stdout":     true,
		"logger.rotation":   false,
		"logger.maxsize":    100,
		"logger.maxage":     7,
		"logger.maxbackups": 10,
		"logger.localtime":  true,
		"logger.compress":   false,

		"daylog.filepath": "./journal",
		"daylog.name":     []string{},

		"metrics.prometheus.enabled": false,
		"metrics.prometheus.addr":    ":9090",
		"metrics.statsd.enabled":     false,
		"metrics.statsd.host":        "localhost:8125",
		"metrics.statsd.prefix":      "sweepaoi.",
		"metrics.statsd.rate":        1,
	}

	for param := range defaultsMap {
		if c.config.Get(param) == nil {
			c.config.SetDefault(param, defaultsMap[param])
		}
	}
}

// Viper underlying viper, handed to the logger
func (c *Config) Viper() *viper.Viper {
	return c.config
}

// GetDuration returns a duration from the inner config
func (c *Config) GetDuration(s string) time.Duration {
	return c.config.GetDuration(s)
}

// GetString returns a string from the inner config
func (c *Config) GetString(s string) string {
	return c.config.GetString(s)
}

// GetInt returns an int from the inner config
func (c *Config) GetInt(s string) int {
	return c.config.GetInt(s)
}

// GetBool returns an boolean from the inner config
func (c *Config) GetBool(s string) bool {
	return c.config.GetBool(s)
}

// GetFloat64 returns a float64 from the inner config
func (c *Config) GetFloat64(s string) float64 {
	return c.config.GetFloat64(s)
}

// GetStringSlice returns a string slice from the inner config
func (c *Config) GetStringSlice(s string) []string {
	return c.config.GetStringSlice(s)
}

// Set a value, flags bound by the CLI end up here
func (c *Config) Set(key string, value interface{}) {
	c.config.Set(key, value)
}

// SimConfig parameters of the index and of the demonstration host
type SimConfig struct {
	Capacity    int   `validate:"min=1,max=65536,pow2"`
	EnterRadius int32 `validate:"min=0"`
	LeaveRadius int32 `validate:"gtfield=EnterRadius"`

	Population   int           `validate:"min=0,ltefield=Capacity"`
	Width        int32         `validate:"min=1"`
	Height       int32         `validate:"min=1"`
	MinSpeed     int32         `validate:"min=1"`
	MaxSpeed     int32         `validate:"gtfield=MinSpeed"`
	TickInterval time.Duration `validate:"gt=0"`
	SpawnMin     int32         `validate:"min=0"`
	SpawnMax     int32         `validate:"gtfield=SpawnMin"`
	Seed         int64
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("pow2", func(fl validator.FieldLevel) bool {
		n := fl.Field().Int()
		return n > 0 && n&(n-1) == 0
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate the struct tags
func (s *SimConfig) Validate() error {
	if err := validate.Struct(s); err != nil {
		return errors.Wrap(err, "invalid sim config")
	}
	return nil
}

// Sim builds a validated SimConfig from the aoi.* and sim.* keys
func (c *Config) Sim() (*SimConfig, error) {
	s := &SimConfig{
		Capacity:     c.GetInt("aoi.capacity"),
		EnterRadius:  int32(c.GetInt("aoi.enterradius")),
		LeaveRadius:  int32(c.GetInt("aoi.leaveradius")),
		Population:   c.GetInt("sim.population"),
		Width:        int32(c.GetInt("sim.width")),
		Height:       int32(c.GetInt("sim.height")),
		MinSpeed:     int32(c.GetInt("sim.minspeed")),
		MaxSpeed:     int32(c.GetInt("sim.maxspeed")),
		TickInterval: c.GetDuration("sim.tickinterval"),
		SpawnMin:     int32(c.GetInt("sim.spawnmin")),
		SpawnMax:     int32(c.GetInt("sim.spawnmax")),
		Seed:         c.config.GetInt64("sim.seed"),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
