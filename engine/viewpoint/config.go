package viewpoint

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownViewpoint is returned when a named viewpoint is not in the config.
	ErrUnknownViewpoint = errors.New("unknown viewpoint")
	// ErrInvalidViewport is returned when the viewport is not strictly positive.
	ErrInvalidViewport = errors.New("invalid viewport")
	// ErrInvalidConfig is returned for any other rejected config value.
	ErrInvalidConfig = errors.New("invalid config")
)

// ViewportConfig is the viewport size in scene units.
type ViewportConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Config describes a camera and its named viewpoints.
//
//	mode: 3d
//	viewport: {width: 800, height: 600}
//	fov: 0.8
//	near: 1
//	far: 1000
//	navigation: examine
//	default: front
//	viewpoints:
//	  - name: front
//	    position: [0, 0, 10]
//	  - name: top
//	    position: [0, 10, 0]
//	    look_at: [0, 0, 0]
//	    up: [0, 0, -1]
type Config struct {
	Mode              string         `yaml:"mode"`
	Viewport          ViewportConfig `yaml:"viewport"`
	Fov               float32        `yaml:"fov"`
	Near              float32        `yaml:"near"`
	Far               float32        `yaml:"far"`
	AvatarSize        [3]float32     `yaml:"avatar_size"`
	Speed             float32        `yaml:"speed"`
	ViewpointDistance float32        `yaml:"viewpoint_distance"`
	Navigation        string         `yaml:"navigation"`
	CenterCoords      bool           `yaml:"center_coords"`
	Default           string         `yaml:"default"`
	Viewpoints        []Viewpoint    `yaml:"viewpoints"`
}

// LoadConfig reads and validates a YAML config file.
//
// Parameters:
//   - path: file to read
//
// Returns:
//   - *Config: the parsed config
//   - error: read, unmarshal or validation failure
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("viewpoint: load %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("viewpoint: %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig unmarshals and validates a YAML config.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - *Config: the parsed config
//   - error: unmarshal or validation failure
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("viewpoint: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config. The viewport must be strictly positive, mode and
// navigation must be known, clip planes ordered, viewpoint names unique and the
// default viewpoint present.
//
// Returns:
//   - error: wraps ErrInvalidViewport, ErrInvalidConfig or ErrUnknownViewpoint
func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewpoint: %gx%g: %w", c.Viewport.Width, c.Viewport.Height, ErrInvalidViewport)
	}
	if _, err := parseMode(c.Mode); err != nil {
		return err
	}
	if _, err := parseNavigation(c.Navigation); err != nil {
		return err
	}
	if c.Fov < 0 || c.Near < 0 || c.Far < 0 || c.Speed < 0 || c.ViewpointDistance < 0 {
		return fmt.Errorf("viewpoint: negative camera parameter: %w", ErrInvalidConfig)
	}
	if near, far := c.near(), c.far(); near >= far {
		return fmt.Errorf("viewpoint: near %g >= far %g: %w", near, far, ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(c.Viewpoints))
	for i, vp := range c.Viewpoints {
		if vp.Name == "" {
			return fmt.Errorf("viewpoint: viewpoint %d has no name: %w", i, ErrInvalidConfig)
		}
		if _, ok := seen[vp.Name]; ok {
			return fmt.Errorf("viewpoint: duplicate viewpoint %q: %w", vp.Name, ErrInvalidConfig)
		}
		seen[vp.Name] = struct{}{}
		if vp.Fov < 0 {
			return fmt.Errorf("viewpoint: %q has negative fov: %w", vp.Name, ErrInvalidConfig)
		}
		if vp.LookAt != nil && mgl32.Vec3(*vp.LookAt).Sub(vp.Position()).Len() < common.Epsilon {
			return fmt.Errorf("viewpoint: %q looks at its own position: %w", vp.Name, ErrInvalidConfig)
		}
		if vp.UpVector != nil && mgl32.Vec3(*vp.UpVector).Len() < common.Epsilon {
			return fmt.Errorf("viewpoint: %q has a zero up vector: %w", vp.Name, ErrInvalidConfig)
		}
	}
	if c.Default != "" {
		if _, ok := seen[c.Default]; !ok {
			return fmt.Errorf("viewpoint: default %q: %w", c.Default, ErrUnknownViewpoint)
		}
	}
	return nil
}

// CameraOptions converts the config into camera builder options. Unset values
// fall back to the camera defaults.
//
// Returns:
//   - []camera.CameraBuilderOption: options for camera.NewCamera
func (c *Config) CameraOptions() []camera.CameraBuilderOption {
	mode, _ := parseMode(c.Mode)
	nav, _ := parseNavigation(c.Navigation)
	return []camera.CameraBuilderOption{
		camera.WithMode(mode),
		camera.WithViewport(c.Viewport.Width, c.Viewport.Height),
		camera.WithFov(common.Coalesce(c.Fov, camera.DefaultFieldOfView)),
		camera.WithNear(c.near()),
		camera.WithFar(c.far()),
		camera.WithAvatarSize(common.Coalesce(mgl32.Vec3(c.AvatarSize), camera.DefaultAvatarSize)),
		camera.WithSpeed(common.Coalesce(c.Speed, 1)),
		camera.WithViewpointDistance(common.Coalesce(c.ViewpointDistance, camera.DefaultViewpointDistance)),
		camera.WithNavigationMode(nav),
	}
}

// NewCamera builds a camera from the config and binds the default viewpoint,
// if the config has any.
//
// Returns:
//   - camera.Camera: the configured camera
func (c *Config) NewCamera() camera.Camera {
	cam := camera.NewCamera(c.CameraOptions()...)
	if vp, err := c.DefaultViewpoint(); err == nil {
		cam.BindViewpoint(vp, false)
	}
	return cam
}

// Viewpoint looks up a viewpoint by name.
//
// Parameters:
//   - name: viewpoint name
//
// Returns:
//   - *Viewpoint: the viewpoint
//   - error: wraps ErrUnknownViewpoint if not found
func (c *Config) Viewpoint(name string) (*Viewpoint, error) {
	for i := range c.Viewpoints {
		if c.Viewpoints[i].Name == name {
			return &c.Viewpoints[i], nil
		}
	}
	return nil, fmt.Errorf("viewpoint: %q: %w", name, ErrUnknownViewpoint)
}

// DefaultViewpoint returns the viewpoint named by Default, or the first one.
//
// Returns:
//   - *Viewpoint: the default viewpoint
//   - error: wraps ErrUnknownViewpoint if the config has none
func (c *Config) DefaultViewpoint() (*Viewpoint, error) {
	if c.Default != "" {
		return c.Viewpoint(c.Default)
	}
	if len(c.Viewpoints) == 0 {
		return nil, fmt.Errorf("viewpoint: no viewpoints: %w", ErrUnknownViewpoint)
	}
	return &c.Viewpoints[0], nil
}

// Bind binds the named viewpoint to cam.
//
// Parameters:
//   - cam: the camera
//   - name: viewpoint name
//   - animate: animate from the current pose instead of snapping
//
// Returns:
//   - error: wraps ErrUnknownViewpoint if not found
func (c *Config) Bind(cam camera.Camera, name string, animate bool) error {
	vp, err := c.Viewpoint(name)
	if err != nil {
		return err
	}
	cam.BindViewpoint(vp, animate)
	return nil
}

func (c *Config) near() float32 {
	return common.Coalesce(c.Near, camera.DefaultNear)
}

func (c *Config) far() float32 {
	return common.Coalesce(c.Far, camera.DefaultFar)
}

func parseMode(s string) (camera.Mode, error) {
	switch strings.ToLower(s) {
	case "", "3d":
		return camera.Mode3D, nil
	case "2d":
		return camera.Mode2D, nil
	default:
		return camera.Mode3D, fmt.Errorf("viewpoint: mode %q: %w", s, ErrInvalidConfig)
	}
}

func parseNavigation(s string) (camera.NavigationMode, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return camera.NavigateNone, nil
	case "walk":
		return camera.NavigateWalk, nil
	case "fly":
		return camera.NavigateFly, nil
	case "examine":
		return camera.NavigateExamine, nil
	default:
		return camera.NavigateNone, fmt.Errorf("viewpoint: navigation %q: %w", s, ErrInvalidConfig)
	}
}
