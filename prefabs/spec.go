package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const MazeSpecFile = "maze.yaml"

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// MazeSpec configures grid size, viewport and the feel of the ball.
type MazeSpec struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
	// Width and Height of the play area; zero means the window size.
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Ball   BallSpec   `yaml:"ball"`
	Walls  WallsSpec  `yaml:"walls"`
	Win    WinSpec    `yaml:"win"`
	Colors ColorsSpec `yaml:"colors"`
}

type BallSpec struct {
	SpeedStep  float64 `yaml:"speed_step"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	// Damping is the fraction of velocity kept per step.
	Damping float64 `yaml:"damping"`
}

type WallsSpec struct {
	// Mass each wall gets once the win script releases it.
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
}

type WinSpec struct {
	GravityY float64 `yaml:"gravity_y"`
	Script   string  `yaml:"script"`
}

type ColorsSpec struct {
	Background *YAMLColor `yaml:"background"`
	Wall       *YAMLColor `yaml:"wall"`
	Boundary   *YAMLColor `yaml:"boundary"`
	Goal       *YAMLColor `yaml:"goal"`
	Ball       *YAMLColor `yaml:"ball"`
	Path       *YAMLColor `yaml:"path"`
}

func LoadMazeSpec() (*MazeSpec, error) {
	spec, err := LoadSpec[MazeSpec](MazeSpecFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate rejects specs the game cannot build a maze from.
func (s *MazeSpec) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil", ErrInvalidSpec)
	}
	if s.Rows < 1 || s.Columns < 1 {
		return fmt.Errorf("%w: rows=%d columns=%d", ErrInvalidSpec, s.Rows, s.Columns)
	}
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: width=%g height=%g", ErrInvalidSpec, s.Width, s.Height)
	}
	if s.Ball.SpeedStep <= 0 {
		return fmt.Errorf("%w: ball.speed_step=%g", ErrInvalidSpec, s.Ball.SpeedStep)
	}
	if s.Ball.Damping < 0 || s.Ball.Damping > 1 {
		return fmt.Errorf("%w: ball.damping=%g", ErrInvalidSpec, s.Ball.Damping)
	}
	return nil
}

// ColorOr returns the configured colour or fallback when unset.
func ColorOr(c *YAMLColor, fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
