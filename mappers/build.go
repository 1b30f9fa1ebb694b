package mappers

import (
	"fmt"
	"strings"

	"github.com/padshift/padshift/padapi"
	"github.com/padshift/padshift/padapi/paddsl"
	"github.com/padshift/padshift/pkg/hostio"
	"github.com/padshift/padshift/pkg/registry"
)

// BuildOptions carry the host collaborators wired into Keyboard, MouseAxis
// and MouseButton mappers. Unset collaborators default to the null
// implementations.
type BuildOptions struct {
	Keyboard hostio.Keyboard
	Mouse    hostio.Mouse
}

type BuildOption func(*BuildOptions)

func WithKeyboard(k hostio.Keyboard) BuildOption {
	return func(o *BuildOptions) {
		o.Keyboard = k
	}
}

func WithMouse(m hostio.Mouse) BuildOption {
	return func(o *BuildOptions) {
		o.Mouse = m
	}
}

// buildConfig is the per-expression configuration handed to mapper type
// creators.
type buildConfig struct {
	expr  *paddsl.Expr
	depth int
	opts  *BuildOptions
}

func (c buildConfig) params() []paddsl.Param {
	return c.expr.ParamList()
}

var mapperTypes = registry.NewRegistry[ElementMapper, buildConfig, struct{}](struct{}{})

func init() {
	mapperTypes.Register("Axis", createAxisMapper, "StickAxis", "AnalogAxis")
	mapperTypes.Register("DigitalAxis", createDigitalAxisMapper, "Digital")
	mapperTypes.Register("Button", createButtonMapper, "Btn")
	mapperTypes.Register("Pov", createPovMapper, "Hat", "PovHat")
	mapperTypes.Register("Invert", createInvertMapper, "Inverted")
	mapperTypes.Register("Split", createSplitMapper, "Splitter")
	mapperTypes.Register("Compound", createCompoundMapper, "Multi")
	mapperTypes.Register("Keyboard", createKeyboardMapper, "Key", "Kb")
	mapperTypes.Register("MouseAxis", createMouseAxisMapper)
	mapperTypes.Register("MouseButton", createMouseButtonMapper)
	mapperTypes.Register("Null", createNullMapper, "Nothing", "None")
}

// MapperTypeNames returns the canonical mapper type names the builder
// accepts.
func MapperTypeNames() []string {
	return mapperTypes.Names()
}

// ParseElementMapper parses a mapper definition string and builds the
// element mapper it describes.
func ParseElementMapper(definition string, opts ...BuildOption) (ElementMapper, error) {
	options := &BuildOptions{}
	for _, opt := range opts {
		opt(options)
	}
	expr, err := paddsl.Parse(definition)
	if err != nil {
		return nil, err
	}
	return buildExpr(expr, 1, options)
}

func buildExpr(expr *paddsl.Expr, depth int, opts *BuildOptions) (ElementMapper, error) {
	if depth > MaxRecursionDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d levels", padapi.ErrInvalidMapperSyntax, MaxRecursionDepth)
	}
	if !mapperTypes.Has(expr.Type) {
		return nil, fmt.Errorf("%w: %q", padapi.ErrUnknownMapper, expr.Type)
	}
	mapper, err := mapperTypes.New(expr.Type, buildConfig{expr: expr, depth: depth, opts: opts})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", expr.Type, err)
	}
	return mapper, nil
}

func paramCount(cfg buildConfig, min, max int) error {
	n := len(cfg.params())
	if cfg.expr.HasParens() && n == 0 && min > 0 {
		return fmt.Errorf("%w: empty parameter list", padapi.ErrInvalidParameter)
	}
	if n < min || n > max {
		return fmt.Errorf("%w: expected %d to %d parameters, got %d", padapi.ErrInvalidParameter, min, max, n)
	}
	return nil
}

func childMapper(cfg buildConfig, p paddsl.Param) (ElementMapper, error) {
	if p.Expr == nil {
		return nil, fmt.Errorf("%w: expected a mapper expression, got %s", padapi.ErrInvalidMapperSyntax, p)
	}
	return buildExpr(p.Expr, cfg.depth+1, cfg.opts)
}

var axisAliases = map[string]padapi.Axis{
	"x": padapi.AxisX, "y": padapi.AxisY, "z": padapi.AxisZ,
	"rx": padapi.AxisRotX, "rotx": padapi.AxisRotX, "rotationx": padapi.AxisRotX,
	"ry": padapi.AxisRotY, "roty": padapi.AxisRotY, "rotationy": padapi.AxisRotY,
	"rz": padapi.AxisRotZ, "rotz": padapi.AxisRotZ, "rotationz": padapi.AxisRotZ,
}

func parseAxisParam(p paddsl.Param) (padapi.Axis, error) {
	name, ok := p.IsLiteralIdent()
	if !ok {
		return 0, fmt.Errorf("%w: expected an axis name, got %s", padapi.ErrInvalidParameter, p)
	}
	axis, ok := axisAliases[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%w: axis %q", padapi.ErrInvalidParameter, name)
	}
	return axis, nil
}

var directionAliases = map[string]padapi.AxisDirection{
	"+": padapi.AxisDirectionPositive, "pos": padapi.AxisDirectionPositive, "positive": padapi.AxisDirectionPositive,
	"-": padapi.AxisDirectionNegative, "neg": padapi.AxisDirectionNegative, "negative": padapi.AxisDirectionNegative,
	"both": padapi.AxisDirectionBoth, "bidir": padapi.AxisDirectionBoth, "bidirectional": padapi.AxisDirectionBoth,
}

func parseDirectionParam(p paddsl.Param) (padapi.AxisDirection, error) {
	if sign, ok := p.IsBareSign(); ok {
		return directionAliases[sign], nil
	}
	name, ok := p.IsLiteralIdent()
	if !ok {
		return 0, fmt.Errorf("%w: expected a direction, got %s", padapi.ErrInvalidParameter, p)
	}
	direction, ok := directionAliases[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%w: direction %q", padapi.ErrInvalidParameter, name)
	}
	return direction, nil
}

func parseAxisAndDirection(cfg buildConfig) (padapi.Axis, padapi.AxisDirection, error) {
	if err := paramCount(cfg, 1, 2); err != nil {
		return 0, 0, err
	}
	axis, err := parseAxisParam(cfg.params()[0])
	if err != nil {
		return 0, 0, err
	}
	direction := padapi.AxisDirectionBoth
	if len(cfg.params()) == 2 {
		direction, err = parseDirectionParam(cfg.params()[1])
		if err != nil {
			return 0, 0, err
		}
	}
	return axis, direction, nil
}

func createAxisMapper(cfg buildConfig, _ struct{}) (ElementMapper, error) {
	axis, direction, err := parseAxisAndDirection(cfg)
	if err != nil {
		return nil, err
	}
	return NewAxisMapper(axis, direction), nil
}

func createDigitalAxisMapper(cfg buildConfig, _ struct{}) (ElementMapper, error) {
	axis, direction, err := parseAxisAndDirection(cfg)
	if err != nil {
		return nil, err
	}
	return NewDigitalAxisMapper(axis, direction), nil
}

func createButtonMapper(cfg buildConfig, _ struct{}) (ElementMapper, error) {
	if err := paramCount(cfg, 1, 1); err != nil {
		return nil, err
	}
	n, ok := cfg.params()[0].IsNumber()
	if !ok {
		return nil, fmt.Errorf("%w: expected a button number, got %s", padapi.ErrInvalidParameter, cfg.params()[0])
	}
	if n < 1 || n > padapi.ButtonCountMax {
		return nil, fmt.Errorf("%w: button number %d", padapi.ErrInvalidParameter, n)
	}
	return NewButtonMapper(padapi.Button(n - 1)), nil
}

var povAliases = map[string]padapi.PovComponent{
	"up": padapi.PovUp, "u": padapi.PovUp, "north": padapi.PovUp, "n": padapi.PovUp,
	"down": padapi.PovDown, "d": padapi.PovDown, "south": padapi.PovDown, "s": padapi.PovDown,
	"left": padapi.PovLeft, "l": padapi.PovLeft, "west": padapi.PovLeft, "w": padapi.PovLeft,
	"right": padapi.PovRight, "r": padapi.PovRight, "east": padapi.PovRight, "e": padapi.PovRight,
}

func createPovMapper(cfg buildConfig, _ struct{}) (ElementMapper, error) {
	if err := paramCount(cfg, 1, 1); err != nil {
		return nil, err
	}
	name, ok := cfg.params()[0].IsLiteralIdent()
	if !ok {
		return nil, fmt.Errorf("%w: expected a POV direction, got %s", padapi.ErrInvalidParameter, cfg.params()[0])
	}
	direction, ok := povAliases[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: POV direction %q", padapi.ErrInvalidParameter, name)
	}
	return NewPovMapper(direction), nil
}

func createInvertMapper(cfg buildConfig, _ struct{}) (ElementMapper, error) {
	if err := paramCount(cfg, 1, 1); err != nil {
		return nil, err
	}
	inner, err := childMapper(cfg, cfg.params()[0])
	if err != nil {
		return nil, err
	}
	return NewInvertMapper(inner), nil
}

func createSplitMapper(cfg buildConfig, _ struct{}) (ElementMapper, error) {
	if err := paramCount(cfg, 2, 2); err != nil {
		return nil, err
	}
	positive, err := childMapper(cfg, cfg.params()[0])
	if err != nil {
		return nil, err
	}
	negative, err := childMapper(cfg, cfg.params()[1])
	if err != nil {
		return nil, err
	}
	return NewSplitMapper(positive, negative), nil
}

func createCompoundMapper(cfg buildConfig, _ struct{}) (ElementMapper, error) {
	if err := paramCount(cfg, 1, CompoundMapperMaxChildren); err != nil {
		return nil, err
	}
	children := make([]ElementMapper, 0, len(cfg.params()))
	for _, p := range cfg.params() {
		child, err := childMapper(cfg, p)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return NewCompoundMapper(children...), nil
}

func createKeyboardMapper(cfg buildConfig, _ struct{}) (ElementMapper, error) {
	if err := paramCount(cfg, 1, 1); err != nil {
		return nil, err
	}
	p := cfg.params()[0]
	if n, ok := p.IsNumber(); ok {
		if n < 0 || n > MaxScancode {
			return nil, fmt.Errorf("%w: scancode %d", padapi.ErrInvalidParameter, n)
		}
		return NewKeyboardMapper(uint16(n), cfg.opts.Keyboard), nil
	}
	name, ok := p.IsLiteralIdent()
	if !ok {
		return nil, fmt.Errorf("%w: expected a scancode, got %s", padapi.ErrInvalidParameter, p)
	}
	scancode, ok := ScancodeByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: key name %q", padapi.ErrInvalidParameter, name)
	}
	return NewKeyboardMapper(scancode, cfg.opts.Keyboard), nil
}

var mouseAxisAliases = map[string]hostio.MouseAxis{
	"x": hostio.MouseAxisX, "horizontal": hostio.MouseAxisX,
	"y": hostio.MouseAxisY, "vertical": hostio.MouseAxisY,
	"wheelh": hostio.MouseAxisWheelH, "horizontalwheel": hostio.MouseAxisWheelH,
	"wheelv": hostio.MouseAxisWheelV, "verticalwheel": hostio.MouseAxisWheelV, "wheel": hostio.MouseAxisWheelV,
}

func createMouseAxisMapper(cfg buildConfig, _ struct{}) (ElementMapper, error) {
	if err := paramCount(cfg, 1, 2); err != nil {
		return nil, err
	}
	name, ok := cfg.params()[0].IsLiteralIdent()
	if !ok {
		return nil, fmt.Errorf("%w: expected a mouse axis, got %s", padapi.ErrInvalidParameter, cfg.params()[0])
	}
	axis, ok := mouseAxisAliases[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: mouse axis %q", padapi.ErrInvalidParameter, name)
	}
	direction := padapi.AxisDirectionBoth
	if len(cfg.params()) == 2 {
		var err error
		direction, err = parseDirectionParam(cfg.params()[1])
		if err != nil {
			return nil, err
		}
	}
	return NewMouseAxisMapper(axis, direction, cfg.opts.Mouse), nil
}

var mouseButtonAliases = map[string]hostio.MouseButton{
	"left": hostio.MouseButtonLeft, "lmb": hostio.MouseButtonLeft,
	"middle": hostio.MouseButtonMiddle, "wheel": hostio.MouseButtonMiddle,
	"right": hostio.MouseButtonRight, "rmb": hostio.MouseButtonRight,
	"x1": hostio.MouseButtonX1, "back": hostio.MouseButtonX1, "backward": hostio.MouseButtonX1,
	"x2": hostio.MouseButtonX2, "forward": hostio.MouseButtonX2,
}

func createMouseButtonMapper(cfg buildConfig, _ struct{}) (ElementMapper, error) {
	if err := paramCount(cfg, 1, 1); err != nil {
		return nil, err
	}
	name, ok := cfg.params()[0].IsLiteralIdent()
	if !ok {
		return nil, fmt.Errorf("%w: expected a mouse button, got %s", padapi.ErrInvalidParameter, cfg.params()[0])
	}
	button, ok := mouseButtonAliases[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: mouse button %q", padapi.ErrInvalidParameter, name)
	}
	return NewMouseButtonMapper(button, cfg.opts.Mouse), nil
}

func createNullMapper(cfg buildConfig, _ struct{}) (ElementMapper, error) {
	if err := paramCount(cfg, 0, 0); err != nil {
		return nil, err
	}
	return NewNullMapper(), nil
}
