package radio

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spyfi/internal/core/ports"
)

func fakeAdapter(fn func(name string, args ...string) ([]byte, error)) *Adapter {
	return &Adapter{exec: fn}
}

func TestGetChannelParsesIwInfo(t *testing.T) {
	out := []byte("Interface wlan0\n\ttype monitor\n\tchannel 6 (2437 MHz), width: 20 MHz\n")
	a := fakeAdapter(func(name string, args ...string) ([]byte, error) {
		return out, nil
	})

	ch, err := a.GetChannel("wlan0")
	require.NoError(t, err)
	assert.Equal(t, 6, ch)
}

func TestGetChannelUnparseable(t *testing.T) {
	a := fakeAdapter(func(name string, args ...string) ([]byte, error) {
		return []byte("Interface wlan0\n\ttype managed\n"), nil
	})

	_, err := a.GetChannel("wlan0")
	assert.Error(t, err)
}

func TestSetModeRestoresPowerOffOnFailure(t *testing.T) {
	var calls []string
	a := fakeAdapter(func(name string, args ...string) ([]byte, error) {
		call := fmt.Sprintf("%s %v", name, args)
		calls = append(calls, call)
		if name == "iw" {
			return nil, fmt.Errorf("device or resource busy")
		}
		return nil, nil
	})

	err := a.SetMode("wlan0", ports.ModeMonitor)
	require.Error(t, err)

	// Power-off happened, mode-set failed, and power was never brought back
	// up: the interface is left in the safe "powered off" state per §4.1.
	require.Len(t, calls, 2)
	assert.Contains(t, calls[0], "down")
	assert.Contains(t, calls[1], "set type")
}

func TestSetModeSucceeds(t *testing.T) {
	var calls []string
	a := fakeAdapter(func(name string, args ...string) ([]byte, error) {
		calls = append(calls, fmt.Sprintf("%s %v", name, args))
		return nil, nil
	})

	err := a.SetMode("wlan0", ports.ModeMonitor)
	require.NoError(t, err)
	require.Len(t, calls, 3)
	assert.Contains(t, calls[2], "up")
}

func TestClassifyOSErrorMapsIfaceNotFound(t *testing.T) {
	err := classifyOSError(fmt.Errorf("ip: no such device wlan9"))
	assert.ErrorIs(t, err, ports.ErrIfaceNotFound)
}

func TestClassifyOSErrorMapsPermission(t *testing.T) {
	err := classifyOSError(fmt.Errorf("permission denied"))
	assert.ErrorIs(t, err, ports.ErrPermission)
}
