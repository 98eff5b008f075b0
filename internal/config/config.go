package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LayoutMode identifies a layout algorithm for a workspace.
type LayoutMode string

const (
	// LayoutTiling is the dwindle algorithm (recursive alternating splits).
	LayoutTiling LayoutMode = "tiling"
	// LayoutMonocle gives every window the full usable frame.
	LayoutMonocle LayoutMode = "monocle"
	// LayoutSplit divides one axis evenly, orientation chosen by aspect ratio.
	LayoutSplit LayoutMode = "split"
	// LayoutSplitVertical places windows side by side (columns).
	LayoutSplitVertical LayoutMode = "split-vertical"
	// LayoutSplitHorizontal stacks windows top to bottom (rows).
	LayoutSplitHorizontal LayoutMode = "split-horizontal"
	// LayoutMaster dedicates a region to master windows, stacks the rest.
	LayoutMaster LayoutMode = "master"
	// LayoutFloating leaves windows where the user puts them.
	LayoutFloating LayoutMode = "floating"
	// LayoutScrolling is accepted in config but currently tiles like LayoutTiling.
	LayoutScrolling LayoutMode = "scrolling"
)

// Valid reports whether the mode is one of the known layout names.
func (m LayoutMode) Valid() bool {
	switch m {
	case LayoutTiling, LayoutMonocle, LayoutSplit, LayoutSplitVertical,
		LayoutSplitHorizontal, LayoutMaster, LayoutFloating, LayoutScrolling:
		return true
	}
	return false
}

// ScreenTarget names the screen a workspace wants to live on.
// "main" and "secondary" are resolved dynamically; any other value
// matches a screen by name or ID.
type ScreenTarget string

const (
	ScreenMain      ScreenTarget = "main"
	ScreenSecondary ScreenTarget = "secondary"
)

// DimensionValue is a size expressed either in pixels or as a percentage
// of some reference dimension. YAML forms: `640` or `"50%"`.
type DimensionValue struct {
	Pixels    int
	Percent   float64
	IsPercent bool
}

// UnmarshalYAML accepts an integer pixel count or a "N%" string.
func (d *DimensionValue) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("dimension must be a number or percentage string")
	}

	s := strings.TrimSpace(value.Value)
	if strings.HasSuffix(s, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return fmt.Errorf("invalid percentage %q: %w", s, err)
		}
		d.Percent = pct
		d.IsPercent = true
		return nil
	}

	px, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid dimension %q: %w", s, err)
	}
	d.Pixels = px
	return nil
}

// Resolve converts the value to pixels against a reference dimension.
func (d DimensionValue) Resolve(total int) int {
	if d.IsPercent {
		return int(float64(total) * d.Percent / 100.0)
	}
	return d.Pixels
}

// InnerGaps is the spacing between adjacent windows.
// YAML forms: `10` (uniform) or `{horizontal: 10, vertical: 8}`.
type InnerGaps struct {
	Horizontal int
	Vertical   int
}

func (g *InnerGaps) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		n, err := strconv.Atoi(value.Value)
		if err != nil {
			return fmt.Errorf("invalid inner gap %q: %w", value.Value, err)
		}
		g.Horizontal = n
		g.Vertical = n
		return nil
	}

	var raw struct {
		Horizontal int `yaml:"horizontal"`
		Vertical   int `yaml:"vertical"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	g.Horizontal = raw.Horizontal
	g.Vertical = raw.Vertical
	return nil
}

// OuterGaps is the spacing between windows and the screen edges.
// YAML forms: `10` (uniform) or `{top: 30, bottom: 10, left: 10, right: 10}`.
type OuterGaps struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

func (g *OuterGaps) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		n, err := strconv.Atoi(value.Value)
		if err != nil {
			return fmt.Errorf("invalid outer gap %q: %w", value.Value, err)
		}
		g.Top = n
		g.Bottom = n
		g.Left = n
		g.Right = n
		return nil
	}

	var raw struct {
		Top    int `yaml:"top"`
		Bottom int `yaml:"bottom"`
		Left   int `yaml:"left"`
		Right  int `yaml:"right"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	g.Top = raw.Top
	g.Bottom = raw.Bottom
	g.Left = raw.Left
	g.Right = raw.Right
	return nil
}

// ScreenGaps holds gap values, optionally scoped to a single screen.
// Screen may be "main", "secondary", a screen ID, or a screen name;
// empty means the default entry.
type ScreenGaps struct {
	Screen string    `yaml:"screen,omitempty"`
	Inner  InnerGaps `yaml:"inner"`
	Outer  OuterGaps `yaml:"outer"`
}

// GapsConfig is either a single global gap set or a per-screen list.
type GapsConfig struct {
	Global    *ScreenGaps
	PerScreen []ScreenGaps
}

func (g *GapsConfig) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		var sg ScreenGaps
		if err := value.Decode(&sg); err != nil {
			return err
		}
		g.Global = &sg
		return nil
	case yaml.SequenceNode:
		var list []ScreenGaps
		if err := value.Decode(&list); err != nil {
			return err
		}
		g.PerScreen = list
		return nil
	default:
		return fmt.Errorf("gaps must be a mapping or a list of per-screen mappings")
	}
}

// WindowRule matches windows by metadata. All non-empty fields must match.
// A rule with no matching fields never matches anything.
type WindowRule struct {
	// AppID matches the window's application identifier (substring or exact).
	AppID string `yaml:"app_id,omitempty"`
	// Title matches the window title (case-insensitive substring).
	Title string `yaml:"title,omitempty"`
	// Class matches the window class (substring or exact).
	Class string `yaml:"class,omitempty"`
	// Name matches the application name (case-insensitive substring).
	Name string `yaml:"name,omitempty"`
	// Workspace is the target workspace for global rules. It does not
	// participate in matching.
	Workspace string `yaml:"workspace,omitempty"`
}

// IsEmpty reports whether the rule has no matching criteria.
// The workspace target alone does not make a rule non-empty.
func (r WindowRule) IsEmpty() bool {
	return r.AppID == "" && r.Title == "" && r.Class == "" && r.Name == ""
}

// WorkspaceConfig declares a named workspace.
type WorkspaceConfig struct {
	Name         string       `yaml:"name"`
	Layout       LayoutMode   `yaml:"layout,omitempty"`
	Screen       ScreenTarget `yaml:"screen,omitempty"`
	Rules        []WindowRule `yaml:"rules,omitempty"`
	PresetOnOpen string       `yaml:"preset_on_open,omitempty"`
}

// FloatingPreset is a named size/position for floating windows.
type FloatingPreset struct {
	Name   string          `yaml:"name"`
	Width  DimensionValue  `yaml:"width"`
	Height DimensionValue  `yaml:"height"`
	X      *DimensionValue `yaml:"x,omitempty"`
	Y      *DimensionValue `yaml:"y,omitempty"`
	Center bool            `yaml:"center,omitempty"`
}

// FloatingConfig groups floating-window settings.
type FloatingConfig struct {
	Presets []FloatingPreset `yaml:"presets,omitempty"`
}

// MasterConfig configures the master layout.
type MasterConfig struct {
	// Ratio is the percentage of the screen given to the master area (10-90).
	Ratio int `yaml:"ratio"`
	// MaxMasters is the maximum number of windows in the master area.
	MaxMasters int `yaml:"max_masters"`
}

// DefaultMasterConfig returns the master layout defaults.
func DefaultMasterConfig() MasterConfig {
	return MasterConfig{Ratio: 50, MaxMasters: 1}
}

// EasingFunction names an animation easing curve.
type EasingFunction string

const (
	EaseLinear EasingFunction = "linear"
	EaseIn     EasingFunction = "ease-in"
	EaseOut    EasingFunction = "ease-out"
	EaseInOut  EasingFunction = "ease-in-out"
	EaseSpring EasingFunction = "spring"
)

// AnimationConfig controls window transition animations.
type AnimationConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
	// DurationMs is the transition duration in milliseconds.
	DurationMs int            `yaml:"duration,omitempty"`
	Easing     EasingFunction `yaml:"easing,omitempty"`
}

// IsEnabled reports whether animations are on (default true).
func (a AnimationConfig) IsEnabled() bool {
	return a.Enabled == nil || *a.Enabled
}

// Config is the root tiling configuration.
type Config struct {
	Enabled    bool              `yaml:"enabled"`
	Gaps       GapsConfig        `yaml:"gaps,omitempty"`
	Workspaces []WorkspaceConfig `yaml:"workspaces,omitempty"`
	Rules      []WindowRule      `yaml:"rules,omitempty"`
	Floating   FloatingConfig    `yaml:"floating,omitempty"`
	Master     MasterConfig      `yaml:"master,omitempty"`
	Animation  AnimationConfig   `yaml:"animation,omitempty"`
}

// Default returns a config with all defaults applied.
func Default() *Config {
	cfg := &Config{Enabled: true}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Master.Ratio == 0 {
		c.Master.Ratio = DefaultMasterConfig().Ratio
	}
	if c.Master.MaxMasters == 0 {
		c.Master.MaxMasters = DefaultMasterConfig().MaxMasters
	}
	if c.Animation.DurationMs == 0 {
		c.Animation.DurationMs = 200
	}
	if c.Animation.Easing == "" {
		c.Animation.Easing = EaseOut
	}
	for i := range c.Workspaces {
		if c.Workspaces[i].Layout == "" {
			c.Workspaces[i].Layout = LayoutTiling
		}
		if c.Workspaces[i].Screen == "" {
			c.Workspaces[i].Screen = ScreenMain
		}
	}
}

// EffectiveWorkspaces returns the configured workspaces, or the default
// set "1" through "9" on the main screen when none are configured.
func (c *Config) EffectiveWorkspaces() []WorkspaceConfig {
	if len(c.Workspaces) > 0 {
		return c.Workspaces
	}

	defaults := make([]WorkspaceConfig, 0, 9)
	for i := 1; i <= 9; i++ {
		defaults = append(defaults, WorkspaceConfig{
			Name:   strconv.Itoa(i),
			Layout: LayoutTiling,
			Screen: ScreenMain,
		})
	}
	return defaults
}

// FindPreset returns the named floating preset, if configured.
func (c *Config) FindPreset(name string) (FloatingPreset, bool) {
	for _, p := range c.Floating.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return FloatingPreset{}, false
}

// Validate checks the configuration for problems. Hard errors are
// returned as a single joined error; soft issues come back as warnings.
func (c *Config) Validate() (warnings []string, err error) {
	var problems []string

	seen := make(map[string]bool)
	for _, ws := range c.Workspaces {
		if ws.Name == "" {
			problems = append(problems, "workspace with empty name")
			continue
		}
		if seen[ws.Name] {
			problems = append(problems, fmt.Sprintf("duplicate workspace name %q", ws.Name))
		}
		seen[ws.Name] = true

		if ws.Layout != "" && !ws.Layout.Valid() {
			problems = append(problems, fmt.Sprintf("workspace %q: unknown layout %q", ws.Name, ws.Layout))
		}
		if ws.PresetOnOpen != "" {
			if _, ok := c.FindPreset(ws.PresetOnOpen); !ok {
				problems = append(problems, fmt.Sprintf("workspace %q: unknown preset %q", ws.Name, ws.PresetOnOpen))
			}
		}
		for _, rule := range ws.Rules {
			if rule.IsEmpty() {
				warnings = append(warnings, fmt.Sprintf("workspace %q: rule with no matching fields is ignored", ws.Name))
			}
		}
	}

	for _, rule := range c.Rules {
		if rule.IsEmpty() {
			warnings = append(warnings, "global rule with no matching fields is ignored")
		}
		if rule.Workspace == "" {
			warnings = append(warnings, "global rule without a workspace target has no effect")
		}
	}

	if c.Master.Ratio < 10 || c.Master.Ratio > 90 {
		problems = append(problems, fmt.Sprintf("master ratio %d out of range [10, 90]", c.Master.Ratio))
	}
	if c.Master.MaxMasters < 1 {
		problems = append(problems, fmt.Sprintf("master max_masters %d must be at least 1", c.Master.MaxMasters))
	}

	if c.Animation.Easing != "" {
		switch c.Animation.Easing {
		case EaseLinear, EaseIn, EaseOut, EaseInOut, EaseSpring:
		default:
			problems = append(problems, fmt.Sprintf("unknown easing %q", c.Animation.Easing))
		}
	}

	for _, p := range c.Floating.Presets {
		if p.Name == "" {
			problems = append(problems, "floating preset with empty name")
		}
	}

	if len(problems) > 0 {
		return warnings, fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return warnings, nil
}
