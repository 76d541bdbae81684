//go:build windows

package display

import (
	"context"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procEnumDisplayDevicesW  = user32.NewProc("EnumDisplayDevicesW")
	procEnumDisplaySettingsW = user32.NewProc("EnumDisplaySettingsW")
)

const (
	displayDeviceAttachedToDesktop = 0x00000001
	displayDevicePrimaryDevice     = 0x00000004
	enumCurrentSettings            = 0xFFFFFFFF
)

// DISPLAY_DEVICEW
type displayDevice struct {
	Cb           uint32
	DeviceName   [32]uint16
	DeviceString [128]uint16
	StateFlags   uint32
	DeviceID     [128]uint16
	DeviceKey    [128]uint16
}

// DEVMODEW, display variant of the union.
type devMode struct {
	DeviceName         [32]uint16
	SpecVersion        uint16
	DriverVersion      uint16
	Size               uint16
	DriverExtra        uint16
	Fields             uint32
	PositionX          int32
	PositionY          int32
	DisplayOrientation uint32
	DisplayFixedOutput uint32
	Color              int16
	Duplex             int16
	YResolution        int16
	TTOption           int16
	Collate            int16
	FormName           [32]uint16
	LogPixels          uint16
	BitsPerPel         uint32
	PelsWidth          uint32
	PelsHeight         uint32
	DisplayFlags       uint32
	DisplayFrequency   uint32
	ICMMethod          uint32
	ICMIntent          uint32
	MediaType          uint32
	DitherType         uint32
	Reserved1          uint32
	Reserved2          uint32
	PanningWidth       uint32
	PanningHeight      uint32
}

type systemEnumerator struct{}

// NewSystemEnumerator enumerates outputs through user32.
func NewSystemEnumerator() Enumerator {
	return systemEnumerator{}
}

func (systemEnumerator) Monitors(ctx context.Context) ([]Monitor, error) {
	if err := procEnumDisplayDevicesW.Find(); err != nil {
		return nil, err
	}
	var monitors []Monitor
	for i := uint32(0); ; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var dev displayDevice
		dev.Cb = uint32(unsafe.Sizeof(dev))
		ok, _, _ := procEnumDisplayDevicesW.Call(0, uintptr(i), uintptr(unsafe.Pointer(&dev)), 0)
		if ok == 0 {
			break
		}
		if dev.StateFlags&displayDeviceAttachedToDesktop == 0 {
			continue
		}

		var mode devMode
		mode.Size = uint16(unsafe.Sizeof(mode))
		ok, _, _ = procEnumDisplaySettingsW.Call(
			uintptr(unsafe.Pointer(&dev.DeviceName[0])),
			uintptr(enumCurrentSettings),
			uintptr(unsafe.Pointer(&mode)),
		)
		m := Monitor{
			Name:        windows.UTF16ToString(dev.DeviceName[:]),
			Description: windows.UTF16ToString(dev.DeviceString[:]),
			Primary:     dev.StateFlags&displayDevicePrimaryDevice != 0,
		}
		if ok != 0 {
			m.Width = int(mode.PelsWidth)
			m.Height = int(mode.PelsHeight)
			m.BitsPerPixel = int(mode.BitsPerPel)
		}
		monitors = append(monitors, m)
	}
	return monitors, nil
}
