//go:build !windows

package detection

import "context"

// platformPorts has nothing to add outside Windows: the enumerator already
// walks /dev and the USB descriptors.
func platformPorts(context.Context) ([]PortInfo, error) {
	return nil, nil
}
