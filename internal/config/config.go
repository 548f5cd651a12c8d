// Package config loads and saves simulation configuration.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hmaier/fluidlab/internal/sph"
	"github.com/hmaier/fluidlab/internal/vec"
)

const (
	DefaultParticles = 400
	DefaultTicks     = 600
	DefaultDt        = 0.005
)

type Config struct {
	Particles   int           `yaml:"particles"`
	Ticks       int           `yaml:"ticks"`
	Workers     int           `yaml:"workers"`
	SampleEvery int           `yaml:"sample_every"`
	Physics     PhysicsConfig `yaml:"physics"`
	Domain      DomainConfig  `yaml:"domain"`
	Seed        SeedConfig    `yaml:"seed"`
}

type PhysicsConfig struct {
	RestDensity     float32 `yaml:"rest_density"`
	PressureCoef    float32 `yaml:"pressure_coef"`
	Mass            float32 `yaml:"mass"`
	EffectiveRadius float32 `yaml:"effective_radius"`
	Dt              float32 `yaml:"dt"`
	Viscosity       float32 `yaml:"viscosity"`
	WallStiffness   float32 `yaml:"wall_stiffness"`
	ParticleGap     float32 `yaml:"particle_gap"`
	GravityX        float32 `yaml:"gravity_x"`
	GravityY        float32 `yaml:"gravity_y"`
}

type DomainConfig struct {
	MinX float32 `yaml:"min_x"`
	MinY float32 `yaml:"min_y"`
	MaxX float32 `yaml:"max_x"`
	MaxY float32 `yaml:"max_y"`
}

// SeedConfig anchors the initial particle block inside the domain.
type SeedConfig struct {
	OriginX float32 `yaml:"origin_x"`
	OriginY float32 `yaml:"origin_y"`
}

func DefaultConfig() *Config {
	return &Config{
		Particles:   DefaultParticles,
		Ticks:       DefaultTicks,
		SampleEvery: 10,
		Physics: PhysicsConfig{
			RestDensity:     1000,
			PressureCoef:    200,
			Mass:            0.02,
			EffectiveRadius: 0.05,
			Dt:              DefaultDt,
			Viscosity:       0.1,
			WallStiffness:   3000,
			ParticleGap:     0.025,
			GravityY:        -9.8,
		},
		Domain: DomainConfig{MaxX: 1.2, MaxY: 0.9},
		Seed:   SeedConfig{OriginX: 0.05, OriginY: 0.05},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params maps the file-facing config onto the simulation constants input.
func (c *Config) Params() sph.Params {
	return sph.Params{
		RestDensity:     c.Physics.RestDensity,
		PressureCoef:    c.Physics.PressureCoef,
		Mass:            c.Physics.Mass,
		EffectiveRadius: c.Physics.EffectiveRadius,
		TimeStep:        c.Physics.Dt,
		Viscosity:       c.Physics.Viscosity,
		WallStiffness:   c.Physics.WallStiffness,
		ParticleGap:     c.Physics.ParticleGap,
		Gravity:         vec.Vec2{X: c.Physics.GravityX, Y: c.Physics.GravityY},
		MinBound:        vec.Vec2{X: c.Domain.MinX, Y: c.Domain.MinY},
		MaxBound:        vec.Vec2{X: c.Domain.MaxX, Y: c.Domain.MaxY},
		N:               c.Particles,
	}
}

// Origin is the seed block anchor.
func (c *Config) Origin() vec.Vec2 {
	return vec.Vec2{X: c.Seed.OriginX, Y: c.Seed.OriginY}
}
