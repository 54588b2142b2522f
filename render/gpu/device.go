package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const DepthFormat = wgpu.TextureFormatDepth24Plus

// State owns the surface, device and the depth target sized to the surface.
type State struct {
	Surface       *wgpu.Surface
	Adapter       *wgpu.Adapter
	Device        *wgpu.Device
	Queue         *wgpu.Queue
	SurfaceConfig *wgpu.SurfaceConfiguration

	DepthTexture *wgpu.Texture
	DepthView    *wgpu.TextureView
}

func NewState(win *glfw.Window) (*State, error) {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(win))
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}

	width, height := win.GetFramebufferSize()
	caps := surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return nil, fmt.Errorf("surface reports no formats for this adapter")
	}
	surfaceConfig := &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(max(width, 1)),
		Height:      uint32(max(height, 1)),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, surfaceConfig)

	s := &State{
		Surface:       surface,
		Adapter:       adapter,
		Device:        device,
		Queue:         device.GetQueue(),
		SurfaceConfig: surfaceConfig,
	}
	if err := s.createDepth(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *State) Format() wgpu.TextureFormat {
	return s.SurfaceConfig.Format
}

func (s *State) Size() (int, int) {
	return int(s.SurfaceConfig.Width), int(s.SurfaceConfig.Height)
}

// Resize reconfigures the surface and depth target. Zero sizes (minimized) are ignored.
func (s *State) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if uint32(width) == s.SurfaceConfig.Width && uint32(height) == s.SurfaceConfig.Height {
		return nil
	}
	s.SurfaceConfig.Width = uint32(width)
	s.SurfaceConfig.Height = uint32(height)
	s.Surface.Configure(s.Adapter, s.Device, s.SurfaceConfig)
	return s.createDepth()
}

func (s *State) createDepth() error {
	if s.DepthView != nil {
		s.DepthView.Release()
	}
	if s.DepthTexture != nil {
		s.DepthTexture.Release()
	}

	tex, err := s.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth",
		Size: wgpu.Extent3D{
			Width:              s.SurfaceConfig.Width,
			Height:             s.SurfaceConfig.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("create depth view: %w", err)
	}
	s.DepthTexture = tex
	s.DepthView = view
	return nil
}

func (s *State) Release() {
	if s.DepthView != nil {
		s.DepthView.Release()
	}
	if s.DepthTexture != nil {
		s.DepthTexture.Release()
	}
	s.Queue.Release()
	s.Device.Release()
	s.Adapter.Release()
	s.Surface.Release()
}
