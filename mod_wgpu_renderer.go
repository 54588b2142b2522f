package gungale

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/gungale/render/gpu"
	"github.com/gekko3d/gungale/render/hud"
)

// WgpuRenderer draws the level and HUD into the window surface.
type WgpuRenderer struct {
	host  *WindowHost
	state *gpu.State
	level *gpu.LevelPass
	text  *gpu.TextPass

	// instances are rebuilt only when the level changes
	uploaded *Level
}

// NewWgpuRenderer sets up the device and passes. An empty fontPath uses the built-in bitmap face.
func NewWgpuRenderer(host *WindowHost, fontPath string) (*WgpuRenderer, error) {
	state, err := gpu.NewState(host.Window())
	if err != nil {
		return nil, fmt.Errorf("gpu init: %w", err)
	}

	levelPass, err := gpu.NewLevelPass(state.Device, state.Format())
	if err != nil {
		state.Release()
		return nil, err
	}

	face := hud.DefaultFace()
	if fontPath != "" {
		face, err = hud.LoadFace(fontPath, 20)
		if err != nil {
			levelPass.Release()
			state.Release()
			return nil, err
		}
	}
	atlas, err := hud.NewAtlas(face)
	if err != nil {
		levelPass.Release()
		state.Release()
		return nil, fmt.Errorf("hud atlas: %w", err)
	}
	textPass, err := gpu.NewTextPass(state.Device, state.Queue, state.Format(), atlas)
	if err != nil {
		levelPass.Release()
		state.Release()
		return nil, err
	}

	return &WgpuRenderer{
		host:  host,
		state: state,
		level: levelPass,
		text:  textPass,
	}, nil
}

// levelInstances converts scenery into per-shape GPU instances.
func levelInstances(level *Level) (cubes, spheres []gpu.Instance) {
	cubes = make([]gpu.Instance, 0, len(level.Boxes))
	for _, b := range level.Boxes {
		cubes = append(cubes, gpu.Instance{ModelMat: b.Model(), Color: b.Color})
	}
	spheres = make([]gpu.Instance, 0, len(level.Spheres))
	for _, s := range level.Spheres {
		// Spheres are light sources and draw unlit.
		spheres = append(spheres, gpu.Instance{ModelMat: s.Model(), Color: s.Color, Params: [4]float32{1, 0, 0, 0}})
	}
	return cubes, spheres
}

func hudItems(lines []HudLine) []hud.Item {
	items := make([]hud.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, hud.Item{
			Text:     l.Text,
			Position: [2]float32{l.X, l.Y},
			Scale:    l.Scale,
			Color:    l.Color,
		})
	}
	return items
}

func (r *WgpuRenderer) Draw(frame RenderFrame) error {
	if err := r.state.Resize(r.host.FramebufferSize()); err != nil {
		return err
	}
	width, height := r.state.Size()

	if frame.Level != r.uploaded && frame.Level != nil {
		cubes, spheres := levelInstances(frame.Level)
		r.level.SetInstances(gpu.ShapeCube, cubes)
		r.level.SetInstances(gpu.ShapeSphere, spheres)
		r.uploaded = frame.Level
	}

	var light, clear [4]float32
	if frame.Level != nil {
		light = frame.Level.LightPos.Vec4(1)
		clear = frame.Level.ClearColor
	}
	if err := r.level.Upload(r.state.Queue, gpu.CameraUniform{
		ViewProj: ViewProjection(frame.View, float32(width)/float32(height)),
		LightPos: light,
		EyePos:   frame.View.Position.Vec4(1),
	}); err != nil {
		return err
	}
	if err := r.text.Upload(r.state.Queue, hudItems(frame.Hud), width, height); err != nil {
		return err
	}

	nextTexture, err := r.state.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	defer view.Release()

	encoder, err := r.state.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: float64(clear[0]), G: float64(clear[1]), B: float64(clear[2]), A: 1},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.state.DepthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		},
	})
	r.level.Draw(pass)
	r.text.Draw(pass)
	if err := pass.End(); err != nil {
		return fmt.Errorf("render pass end: %w", err)
	}
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("encoder finish: %w", err)
	}
	defer cmd.Release()

	r.state.Queue.Submit(cmd)
	r.state.Surface.Present()
	return nil
}

func (r *WgpuRenderer) Close() {
	r.text.Release()
	r.level.Release()
	r.state.Release()
}
