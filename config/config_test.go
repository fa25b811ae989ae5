package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	assert.Equal(t, 1024, c.GetInt("aoi.capacity"))
	assert.Equal(t, time.Second, c.GetDuration("sim.tickinterval"))
	assert.Equal(t, "info", c.GetString("logger.level"))
	assert.True(t, c.GetBool("logger.stdout"))
	assert.Equal(t, float64(1), c.GetFloat64("metrics.statsd.rate"))
	assert.Empty(t, c.GetStringSlice("daylog.name"))

	s, err := c.Sim()
	require.NoError(t, err)
	assert.Equal(t, int32(100), s.EnterRadius)
	assert.Equal(t, int32(130), s.LeaveRadius)
	assert.Equal(t, 3, s.Population)
}

func TestNewConfigKeepsValues(t *testing.T) {
	t.Parallel()

	v := viper.New()
	v.Set("aoi.capacity", 16)
	c := NewConfig(v)
	assert.Equal(t, 16, c.GetInt("aoi.capacity"))
	assert.Same(t, v, c.Viper())

	c.Set("aoi.enterradius", 60)
	c.Set("aoi.leaveradius", 80)
	s, err := c.Sim()
	require.NoError(t, err)
	assert.Equal(t, 16, s.Capacity)
	assert.Equal(t, int32(60), s.EnterRadius)
	assert.Equal(t, int32(80), s.LeaveRadius)
}

func TestSimValidation(t *testing.T) {
	t.Parallel()

	t.Run("leave radius not greater than enter radius", func(t *testing.T) {
		c := NewConfig(viper.New())
		c.Set("aoi.enterradius", 80)
		c.Set("aoi.leaveradius", 80)
		_, err := c.Sim()
		assert.Error(t, err)
	})

	t.Run("capacity not a power of two", func(t *testing.T) {
		c := NewConfig(viper.New())
		c.Set("aoi.capacity", 100)
		_, err := c.Sim()
		assert.Error(t, err)
	})

	t.Run("capacity above the index limit", func(t *testing.T) {
		c := NewConfig(viper.New())
		c.Set("aoi.capacity", 1<<17)
		_, err := c.Sim()
		assert.Error(t, err)
	})

	t.Run("population above capacity", func(t *testing.T) {
		c := NewConfig(viper.New())
		c.Set("aoi.capacity", 4)
		c.Set("sim.population", 5)
		_, err := c.Sim()
		assert.Error(t, err)
	})

	t.Run("speed range", func(t *testing.T) {
		c := NewConfig(viper.New())
		c.Set("sim.minspeed", 5)
		c.Set("sim.maxspeed", 5)
		_, err := c.Sim()
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "sweepaoi-config")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "sim.yaml")
	content := []byte("aoi:\n  capacity: 64\n  enterradius: 10\n  leaveradius: 20\nsim:\n  tickinterval: 50ms\n")
	require.NoError(t, ioutil.WriteFile(path, content, 0644))

	c, err := Load(path)
	require.NoError(t, err)
	s, err := c.Sim()
	require.NoError(t, err)
	assert.Equal(t, 64, s.Capacity)
	assert.Equal(t, 50*time.Millisecond, s.TickInterval)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
