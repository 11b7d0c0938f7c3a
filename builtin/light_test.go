package builtin_test

import (
	"context"
	"testing"

	"github.com/fwojciec/toolbridge"
	"github.com/fwojciec/toolbridge/builtin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlLight(t *testing.T) {
	t.Parallel()

	t.Run("updates state and notifies", func(t *testing.T) {
		t.Parallel()
		light := &builtin.Light{}
		var observed []builtin.LightState
		light.OnChange(func(s builtin.LightState) { observed = append(observed, s) })

		got, err := builtin.ControlLight(light).Handle(context.Background(), toolbridge.ToolCall{
			ID:        "1",
			Name:      "controlLight",
			Arguments: map[string]any{"brightness": "50", "colorTemperature": "warm"},
		})
		require.NoError(t, err)
		assert.Equal(t, builtin.LightUpdated, got)

		want := builtin.LightState{Brightness: 50, ColorTemperature: builtin.Warm}
		assert.Equal(t, want, light.State())
		assert.Equal(t, []builtin.LightState{want}, observed)
		assert.Equal(t, "brightness: 50, colorTemperature: warm", want.String())
	})

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"brightness not a number", map[string]any{"brightness": "bright", "colorTemperature": "cool"}, "brightness"},
		{"brightness above range", map[string]any{"brightness": "101", "colorTemperature": "cool"}, "brightness"},
		{"brightness below range", map[string]any{"brightness": "-1", "colorTemperature": "cool"}, "brightness"},
		{"unknown temperature", map[string]any{"brightness": "10", "colorTemperature": "purple"}, "color temperature"},
		{"wrong argument type", map[string]any{"brightness": 10, "colorTemperature": "cool"}, "invalid arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			light := &builtin.Light{}
			_, err := builtin.ControlLight(light).Handle(context.Background(), toolbridge.ToolCall{Name: "controlLight", Arguments: tt.args})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, builtin.LightState{}, light.State())
		})
	}
}
