//go:build windows

package detection

import (
	"context"

	"golang.org/x/sys/windows/registry"
)

// platformPorts reads the COM ports Windows publishes under SERIALCOMM.
// Virtual ports created by some USB drivers only show up there.
func platformPorts(context.Context) ([]PortInfo, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, `HARDWARE\DEVICEMAP\SERIALCOMM`, registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer func() { _ = key.Close() }()

	values, err := key.ReadValueNames(-1)
	if err != nil {
		return nil, err
	}

	ports := make([]PortInfo, 0, len(values))
	for _, value := range values {
		portName, _, err := key.GetStringValue(value)
		if err != nil {
			continue
		}
		ports = append(ports, PortInfo{
			Path:   portName,
			Name:   portName,
			VIDPID: ParseVIDPID(value),
		})
	}
	return ports, nil
}
