package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/unmute-ai/signplay/common"
)

// uniformFloatCount is the per-pipeline uniform block size in float32s:
// a 4x4 view-projection matrix followed by an RGBA draw color.
const uniformFloatCount = 16 + 4

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat *wgpu.TextureFormat
	presentMode   wgpu.PresentMode // defaults to PresentModeFifo (VSync)
	clearColor    wgpu.Color
	configured    bool

	width  int
	height int

	linePipeline  *wgpu.RenderPipeline
	pointPipeline *wgpu.RenderPipeline

	lineUniform  *uniformBinding
	pointUniform *uniformBinding

	lineVertices  vertexBuffer
	pointVertices vertexBuffer

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

// uniformBinding pairs a pipeline's uniform buffer with its bind group. The
// matrix half is rewritten on resize; the color half is written once.
type uniformBinding struct {
	buffer    *wgpu.Buffer
	bindGroup *wgpu.BindGroup
	color     [4]float32
}

// vertexBuffer is a grow-on-demand GPU vertex buffer re-filled every frame.
type vertexBuffer struct {
	buffer   *wgpu.Buffer
	capacity uint64
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, clearColor [4]float64, lineColor, pointColor [4]float32) RendererBackend {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		clearColor:  wgpu.Color{R: clearColor[0], G: clearColor[1], B: clearColor[2], A: clearColor[3]},
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()

	w.lineUniform = w.newUniformBinding("Bone", lineColor)
	w.pointUniform = w.newUniformBinding("Joint", pointColor)

	return w
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}
	b.width = width
	b.height = height

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	// Pipelines depend on the surface format, which is only known once the
	// surface is configured.
	if b.linePipeline == nil {
		b.linePipeline = b.createSkeletonPipeline("Bone", wgpu.PrimitiveTopologyLineList)
		b.pointPipeline = b.createSkeletonPipeline("Joint", wgpu.PrimitiveTopologyPointList)
	}

	b.writeUniforms()
	b.configured = true
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.configured
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.configured {
		return fmt.Errorf("surface not configured")
	}

	// Defensive: if a previous frame's surface texture is still held, avoid
	// attempting to acquire another one. This prevents wgpu-native validation
	// errors like "Surface image is already acquired" when frames overlap.
	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: b.clearColor,
			},
		},
	})

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackendImpl) DrawLines(vertices []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil || len(vertices) < 6 {
		return
	}
	b.draw(b.linePipeline, b.lineUniform, &b.lineVertices, "Bone", vertices)
}

func (b *wgpuRendererBackendImpl) DrawPoints(vertices []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil || len(vertices) < 3 {
		return
	}
	b.draw(b.pointPipeline, b.pointUniform, &b.pointVertices, "Joint", vertices)
}

// draw uploads the frame's vertices and encodes one draw call. The vertex
// buffer grows geometrically and is never shrunk; queue writes are ordered
// ahead of the submitted pass, so re-filling mid-frame is safe.
func (b *wgpuRendererBackendImpl) draw(p *wgpu.RenderPipeline, u *uniformBinding, vb *vertexBuffer, label string, vertices []float32) {
	data := common.SliceToBytes(vertices)
	needed := uint64(len(data))
	if vb.buffer == nil || vb.capacity < needed {
		if vb.buffer != nil {
			vb.buffer.Release()
		}
		capacity := max(vb.capacity*2, needed)
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: label + " Vertex Buffer",
			Size:  capacity,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			panic(err)
		}
		vb.buffer = buf
		vb.capacity = capacity
	}
	b.queue.WriteBuffer(vb.buffer, 0, data)

	b.framePass.SetPipeline(p)
	b.framePass.SetBindGroup(0, u.bindGroup, nil)
	b.framePass.SetVertexBuffer(0, vb.buffer, 0, wgpu.WholeSize)
	b.framePass.Draw(uint32(len(vertices)/3), 1, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}

	b.framePass.End()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.framePass = nil
		b.frameSurface = nil
		b.frameView = nil
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	b.framePass = nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	// If no frame surface is held, nothing to present.
	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.configured = false
	for _, vb := range []*vertexBuffer{&b.lineVertices, &b.pointVertices} {
		if vb.buffer != nil {
			vb.buffer.Release()
			vb.buffer = nil
		}
	}
	for _, u := range []*uniformBinding{b.lineUniform, b.pointUniform} {
		if u == nil {
			continue
		}
		if u.bindGroup != nil {
			u.bindGroup.Release()
			u.bindGroup = nil
		}
		if u.buffer != nil {
			u.buffer.Release()
			u.buffer = nil
		}
	}
	if b.linePipeline != nil {
		b.linePipeline.Release()
		b.linePipeline = nil
	}
	if b.pointPipeline != nil {
		b.pointPipeline.Release()
		b.pointPipeline = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// newUniformBinding creates the uniform buffer, layout, and bind group for
// one pipeline. Both pipelines share the same layout shape, so the layout is
// created inline per binding.
func (b *wgpuRendererBackendImpl) newUniformBinding(label string, color [4]float32) *uniformBinding {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Uniform Buffer",
		Size:  uniformFloatCount * 4,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}

	layout, err := b.device.CreateBindGroupLayout(b.uniformLayoutDescriptor(label))
	if err != nil {
		panic(err)
	}
	defer layout.Release()

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		panic(err)
	}

	return &uniformBinding{
		buffer:    buf,
		bindGroup: bindGroup,
		color:     color,
	}
}

func (b *wgpuRendererBackendImpl) uniformLayoutDescriptor(label string) *wgpu.BindGroupLayoutDescriptor {
	return &wgpu.BindGroupLayoutDescriptor{
		Label: label + " Uniform Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uniformFloatCount * 4,
				},
			},
		},
	}
}

// createSkeletonPipeline builds one of the two render pipelines. Both use the
// same WGSL module and vertex layout; only the primitive topology and the
// uniform color differ.
func (b *wgpuRendererBackendImpl) createSkeletonPipeline(label string, topology wgpu.PrimitiveTopology) *wgpu.RenderPipeline {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Skeleton Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: skeletonShaderWGSL,
		},
	})
	if err != nil {
		panic(err)
	}
	defer module.Release()

	layout, err := b.device.CreateBindGroupLayout(b.uniformLayoutDescriptor(label))
	if err != nil {
		panic(err)
	}
	defer layout.Release()

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            label + " Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		panic(err)
	}
	defer pipelineLayout.Release()

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: 12,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{
							Format:         wgpu.VertexFormatFloat32x3,
							Offset:         0,
							ShaderLocation: 0,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  topology,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		panic(err)
	}
	return created
}

// writeUniforms rebuilds the aspect-corrected orthographic projection and
// uploads matrix + color for both pipelines.
func (b *wgpuRendererBackendImpl) writeUniforms() {
	aspect := float32(1)
	if b.height > 0 {
		aspect = float32(b.width) / float32(b.height)
	}

	var data [uniformFloatCount]float32
	common.Ortho(data[:16], -aspect, aspect, -1, 1, -1, 1)

	for _, u := range []*uniformBinding{b.lineUniform, b.pointUniform} {
		copy(data[16:], u.color[:])
		b.queue.WriteBuffer(u.buffer, 0, common.SliceToBytes(data[:]))
	}
}
