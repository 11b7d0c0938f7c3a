package builtin

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/fwojciec/toolbridge"
	"github.com/fwojciec/toolbridge/schema"
)

// Color temperatures accepted by controlLight.
const (
	Daylight = "daylight"
	Cool     = "cool"
	Warm     = "warm"
)

// LightUpdated is the controlLight success message.
const LightUpdated = "Light settings updated successfully"

// LightState is a snapshot of the light.
type LightState struct {
	Brightness       int
	ColorTemperature string
}

func (s LightState) String() string {
	return fmt.Sprintf("brightness: %d, colorTemperature: %s", s.Brightness, s.ColorTemperature)
}

// Light holds the current light settings. The zero value is ready to use.
type Light struct {
	mu       sync.Mutex
	state    LightState
	observer func(LightState)
}

// State returns the current settings.
func (l *Light) State() LightState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// OnChange sets fn to be called with the new state after every update.
func (l *Light) OnChange(fn func(LightState)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observer = fn
}

func (l *Light) set(s LightState) {
	l.mu.Lock()
	l.state = s
	fn := l.observer
	l.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}

type controlLightArgs struct {
	Brightness       string `json:"brightness" jsonschema:"required,description=Light level from 0 to 100. Zero is off and 100 is full brightness."`
	ColorTemperature string `json:"colorTemperature" jsonschema:"required,enum=daylight,enum=cool,enum=warm,description=Color temperature of the light fixture."`
}

// ControlLightTool returns the declaration for the controlLight tool.
func ControlLightTool() toolbridge.Declaration {
	return schema.Declare[controlLightArgs]("controlLight",
		"Set the brightness and color temperature of a room light.")
}

// ControlLight returns the handler for controlLight bound to light.
func ControlLight(light *Light) toolbridge.Handler {
	return toolbridge.Typed(func(_ context.Context, a controlLightArgs) (any, error) {
		brightness, err := strconv.Atoi(strings.TrimSpace(a.Brightness))
		if err != nil || brightness < 0 || brightness > 100 {
			return nil, fmt.Errorf("brightness must be an integer from 0 to 100, got %q", a.Brightness)
		}
		switch a.ColorTemperature {
		case Daylight, Cool, Warm:
		default:
			return nil, fmt.Errorf("unsupported color temperature %q", a.ColorTemperature)
		}
		light.set(LightState{Brightness: brightness, ColorTemperature: a.ColorTemperature})
		return LightUpdated, nil
	})
}
