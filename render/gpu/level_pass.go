package gpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/gungale/render/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraUniform matches the WGSL Camera struct.
type CameraUniform struct {
	ViewProj mgl32.Mat4
	LightPos [4]float32
	EyePos   [4]float32
}

// Instance matches the WGSL InstanceInput. Params[0] > 0.5 renders unlit.
type Instance struct {
	ModelMat mgl32.Mat4
	Color    [4]float32
	Params   [4]float32
}

type Shape int

const (
	ShapeCube Shape = iota
	ShapeSphere

	shapeCount
)

// LevelPass draws instanced, diffusely lit cubes and spheres with depth testing.
type LevelPass struct {
	Pipeline       *wgpu.RenderPipeline
	BindGroup      *wgpu.BindGroup
	CameraBuffer   *wgpu.Buffer
	VertexBuffer   *wgpu.Buffer
	InstanceBuffer *wgpu.Buffer
	InstanceCap    uint32
	ShapeOffsets   [shapeCount]uint32
	ShapeCounts    [shapeCount]uint32
	Instances      [shapeCount][]Instance
	Device         *wgpu.Device
}

func NewLevelPass(device *wgpu.Device, format wgpu.TextureFormat) (*LevelPass, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "LevelShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.LevelWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("level shader: %w", err)
	}
	defer shaderModule.Release()

	cameraSize := uint64(unsafe.Sizeof(CameraUniform{}))
	bgl, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "LevelCameraBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: cameraSize,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("level bind group layout: %w", err)
	}
	defer bgl.Release()

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		return nil, fmt.Errorf("level pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	instanceAttrs := make([]wgpu.VertexAttribute, 0, 6)
	for i := 0; i < 6; i++ {
		instanceAttrs = append(instanceAttrs, wgpu.VertexAttribute{
			Format:         wgpu.VertexFormatFloat32x4,
			Offset:         uint64(i * 16),
			ShaderLocation: uint32(2 + i),
		})
	}

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "LevelPipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(MeshVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
					},
				},
				{
					ArrayStride: uint64(unsafe.Sizeof(Instance{})),
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes:  instanceAttrs,
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("level pipeline: %w", err)
	}

	p := &LevelPass{
		Pipeline: pipeline,
		Device:   device,
	}

	var vertices []MeshVertex
	addShape := func(s Shape, shapeVertices []MeshVertex) {
		p.ShapeOffsets[s] = uint32(len(vertices))
		p.ShapeCounts[s] = uint32(len(shapeVertices))
		vertices = append(vertices, shapeVertices...)
	}
	addShape(ShapeCube, CubeMesh())
	addShape(ShapeSphere, SphereMesh(24, 32))

	vSize := uint64(len(vertices) * int(unsafe.Sizeof(MeshVertex{})))
	p.VertexBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "LevelMeshVertexBuffer",
		Size:  vSize,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("level vertex buffer: %w", err)
	}
	device.GetQueue().WriteBuffer(p.VertexBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), vSize))

	p.CameraBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "LevelCameraBuffer",
		Size:  cameraSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("level camera buffer: %w", err)
	}

	p.BindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "LevelCameraBG",
		Layout: pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  p.CameraBuffer,
				Size:    cameraSize,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("level bind group: %w", err)
	}

	return p, nil
}

// SetInstances replaces the per-shape instance lists. Call Upload afterwards.
func (p *LevelPass) SetInstances(shape Shape, instances []Instance) {
	p.Instances[shape] = append(p.Instances[shape][:0], instances...)
}

// Upload writes the camera uniform and all instances for this frame.
func (p *LevelPass) Upload(queue *wgpu.Queue, camera CameraUniform) error {
	queue.WriteBuffer(p.CameraBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&camera)), unsafe.Sizeof(camera)))

	var all []Instance
	for s := Shape(0); s < shapeCount; s++ {
		all = append(all, p.Instances[s]...)
	}
	if len(all) == 0 {
		return nil
	}

	instanceCount := uint32(len(all))
	sizeBytes := uint64(len(all) * int(unsafe.Sizeof(Instance{})))

	if p.InstanceBuffer == nil || p.InstanceCap < instanceCount {
		if p.InstanceBuffer != nil {
			p.InstanceBuffer.Release()
		}
		p.InstanceCap = instanceCount + 128
		buf, err := p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "LevelInstanceBuffer",
			Size:  uint64(p.InstanceCap) * uint64(unsafe.Sizeof(Instance{})),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			p.InstanceBuffer = nil
			return fmt.Errorf("level instance buffer: %w", err)
		}
		p.InstanceBuffer = buf
	}

	queue.WriteBuffer(p.InstanceBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&all[0])), sizeBytes))
	return nil
}

func (p *LevelPass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.InstanceBuffer == nil {
		return
	}

	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.VertexBuffer, 0, p.VertexBuffer.GetSize())
	pass.SetVertexBuffer(1, p.InstanceBuffer, 0, p.InstanceBuffer.GetSize())

	var instanceOffset uint32
	for s := Shape(0); s < shapeCount; s++ {
		count := uint32(len(p.Instances[s]))
		if count > 0 {
			pass.Draw(p.ShapeCounts[s], count, p.ShapeOffsets[s], instanceOffset)
		}
		instanceOffset += count
	}
}

func (p *LevelPass) Release() {
	if p.InstanceBuffer != nil {
		p.InstanceBuffer.Release()
	}
	p.BindGroup.Release()
	p.CameraBuffer.Release()
	p.VertexBuffer.Release()
	p.Pipeline.Release()
}
