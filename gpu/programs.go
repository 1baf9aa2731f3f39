package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/fx"
)

var (
	// ErrUnsupportedDevice is returned when a device provider does not
	// expose a wgpu/hal device and queue.
	ErrUnsupportedDevice = errors.New("gpu: provider does not expose a hal device")

	// ErrBindingMismatch is returned when a bind group is requested with
	// the wrong number of texture views for its program.
	ErrBindingMismatch = errors.New("gpu: texture count does not match program")
)

// program holds the GPU objects of one Program.
type program struct {
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// Programs owns the shader modules, layouts and render pipelines of every
// program, plus the linear clamp-to-edge sampler the texture programs
// share. Pipelines render into color targets of one format with
// premultiplied alpha blending.
//
// Programs is not safe for concurrent Destroy; all other methods only read.
type Programs struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	sampler  hal.Sampler
	programs [programCount]program
}

// NewPrograms compiles all programs on device for color targets of format.
// On error every object created so far is released.
func NewPrograms(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) (*Programs, error) {
	if device == nil || queue == nil {
		return nil, ErrUnsupportedDevice
	}

	ps := &Programs{device: device, queue: queue, format: format}

	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "fx_linear_clamp",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}
	ps.sampler = sampler

	for _, p := range AllPrograms() {
		if err := ps.create(p); err != nil {
			ps.Destroy()
			return nil, err
		}
	}

	fx.Logger().Debug("gpu: programs created", "count", int(programCount), "format", format)
	return ps, nil
}

// NewProgramsFromProvider creates programs on a shared device. The provider
// must either return hal types from Device and Queue, or expose them
// through HalDevice() any and HalQueue() any. When the provider has no
// surface the targets default to RGBA8Unorm.
func NewProgramsFromProvider(provider gpucontext.DeviceProvider) (*Programs, error) {
	if provider == nil {
		return nil, ErrUnsupportedDevice
	}

	var devAny, queueAny any = provider.Device(), provider.Queue()
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	if hp, ok := provider.(halProvider); ok {
		devAny, queueAny = hp.HalDevice(), hp.HalQueue()
	}

	device, ok := devAny.(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: device is %T", ErrUnsupportedDevice, devAny)
	}
	queue, ok := queueAny.(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: queue is %T", ErrUnsupportedDevice, queueAny)
	}

	format := provider.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		fx.Logger().Warn("gpu: provider has no surface format, using RGBA8Unorm")
		format = gputypes.TextureFormatRGBA8Unorm
	}
	return NewPrograms(device, queue, format)
}

// textureCount returns how many sampled textures p binds.
func textureCount(p Program) int {
	switch p {
	case ProgramQuad, ProgramBorder:
		return 0
	case ProgramTexMix:
		return 2
	default:
		return 1
	}
}

// bindLayoutEntries describes the bind group of p:
//
//	binding 0: uniform block (vertex + fragment)
//	binding 1: texture (fragment)
//	binding 2: sampler (fragment)
//	binding 3: second texture (fragment, ProgramTexMix only)
func bindLayoutEntries(p Program) []gputypes.BindGroupLayoutEntry {
	entries := []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
	}

	n := textureCount(p)
	if n == 0 {
		return entries
	}

	texture := &gputypes.TextureBindingLayout{
		SampleType:    gputypes.TextureSampleTypeFloat,
		ViewDimension: gputypes.TextureViewDimension2D,
	}
	entries = append(entries,
		gputypes.BindGroupLayoutEntry{
			Binding:    1,
			Visibility: gputypes.ShaderStageFragment,
			Texture:    texture,
		},
		gputypes.BindGroupLayoutEntry{
			Binding:    2,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		},
	)
	if n == 2 {
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    3,
			Visibility: gputypes.ShaderStageFragment,
			Texture:    texture,
		})
	}
	return entries
}

// vertexLayout is position then tex_coord, both vec2<f32>.
func vertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			},
		},
	}
}

func (ps *Programs) create(p Program) error {
	src := Source(p)
	if src == "" {
		return fmt.Errorf("%w: %v", ErrEmptyShader, p)
	}
	pr := &ps.programs[p]

	shader, err := ps.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "fx_" + p.String() + "_shader",
		Source: hal.ShaderSource{WGSL: src},
	})
	if err != nil {
		return fmt.Errorf("compile %v shader: %w", p, err)
	}
	pr.shader = shader

	bindLayout, err := ps.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "fx_" + p.String() + "_bind_layout",
		Entries: bindLayoutEntries(p),
	})
	if err != nil {
		return fmt.Errorf("create %v bind layout: %w", p, err)
	}
	pr.bindLayout = bindLayout

	pipeLayout, err := ps.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "fx_" + p.String() + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create %v pipeline layout: %w", p, err)
	}
	pr.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := ps.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "fx_" + p.String() + "_pipeline",
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    vertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    ps.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.DefaultMultisampleState(),
	})
	if err != nil {
		return fmt.Errorf("create %v pipeline: %w", p, err)
	}
	pr.pipeline = pipeline

	return nil
}

// Format returns the color target format the pipelines were built for.
func (ps *Programs) Format() gputypes.TextureFormat {
	return ps.format
}

// Pipeline returns the render pipeline of p, or nil after Destroy.
func (ps *Programs) Pipeline(p Program) hal.RenderPipeline {
	if p < 0 || p >= programCount {
		return nil
	}
	return ps.programs[p].pipeline
}

// BindGroupLayout returns the bind group layout of p.
func (ps *Programs) BindGroupLayout(p Program) hal.BindGroupLayout {
	if p < 0 || p >= programCount {
		return nil
	}
	return ps.programs[p].bindLayout
}

// Sampler returns the shared linear clamp-to-edge sampler.
func (ps *Programs) Sampler() hal.Sampler {
	return ps.sampler
}

// UploadUniforms creates a uniform buffer holding data.
func (ps *Programs) UploadUniforms(label string, data []byte) (hal.Buffer, error) {
	return ps.upload(label, data, gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
}

// UploadVertices creates a vertex buffer holding data, usually the output
// of QuadVertices.
func (ps *Programs) UploadVertices(label string, data []byte) (hal.Buffer, error) {
	return ps.upload(label, data, gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
}

func (ps *Programs) upload(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := ps.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := ps.queue.WriteBuffer(buf, 0, data); err != nil {
		ps.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("write %s: %w", label, err)
	}
	return buf, nil
}

// NewBindGroup binds a uniform buffer created by UploadUniforms and the
// texture views p samples. ProgramQuad and ProgramBorder take no views,
// ProgramTexMix takes two and the other programs one.
func (ps *Programs) NewBindGroup(p Program, uniforms hal.Buffer, views ...hal.TextureView) (hal.BindGroup, error) {
	if p < 0 || p >= programCount {
		return nil, fmt.Errorf("%w: %v", ErrEmptyShader, p)
	}
	if want := textureCount(p); len(views) != want {
		return nil, fmt.Errorf("%w: %v takes %d views, got %d", ErrBindingMismatch, p, want, len(views))
	}

	entries := []gputypes.BindGroupEntry{
		{Binding: 0, Resource: gputypes.BufferBinding{
			Buffer: uniforms.NativeHandle(), Offset: 0, Size: uniformSize(p),
		}},
	}
	for i, v := range views {
		binding := uint32(1)
		if i == 1 {
			binding = 3
		}
		entries = append(entries, gputypes.BindGroupEntry{
			Binding:  binding,
			Resource: gputypes.TextureViewBinding{TextureView: v.NativeHandle()},
		})
	}
	if len(views) > 0 {
		entries = append(entries, gputypes.BindGroupEntry{
			Binding:  2,
			Resource: gputypes.SamplerBinding{Sampler: ps.sampler.NativeHandle()},
		})
	}

	bg, err := ps.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "fx_" + p.String() + "_bind",
		Layout:  ps.programs[p].bindLayout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("create %v bind group: %w", p, err)
	}
	return bg, nil
}

// Destroy releases every GPU object in reverse creation order. Safe to
// call multiple times.
func (ps *Programs) Destroy() {
	if ps.device == nil {
		return
	}
	for i := range ps.programs {
		pr := &ps.programs[i]
		if pr.pipeline != nil {
			ps.device.DestroyRenderPipeline(pr.pipeline)
			pr.pipeline = nil
		}
		if pr.pipeLayout != nil {
			ps.device.DestroyPipelineLayout(pr.pipeLayout)
			pr.pipeLayout = nil
		}
		if pr.bindLayout != nil {
			ps.device.DestroyBindGroupLayout(pr.bindLayout)
			pr.bindLayout = nil
		}
		if pr.shader != nil {
			ps.device.DestroyShaderModule(pr.shader)
			pr.shader = nil
		}
	}
	if ps.sampler != nil {
		ps.device.DestroySampler(ps.sampler)
		ps.sampler = nil
	}
}
