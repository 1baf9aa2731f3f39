// Package gpu ships the effect programs as WGSL and builds WebGPU render
// pipelines for them on a wgpu/hal device.
//
// Every program draws a quad of two triangles. The vertex stage is shared:
// it transforms a 2D position by the 3x3 proj uniform and passes the
// texture coordinate through. The fragment stages are the GPU versions of
// the software kernels in package fx and package blur, and produce the
// same colors.
//
// # Programs
//
//	ProgramQuad         solid color, optionally rounded
//	ProgramTex          one texture with discard, tint, rounding and alpha
//	ProgramTexMix       crossfade of two textures, then as ProgramTex
//	ProgramBlurPrepare  contrast and brightness before blurring
//	ProgramBlurDown     dual-Kawase down pass with vibrancy
//	ProgramBlurUp       dual-Kawase up pass
//	ProgramBlurFinish   grain, dimming, alpha boost and colorize
//	ProgramBorder       OkLab gradient ring around a rounded rectangle
//
// # Usage
//
//	progs, err := gpu.NewPrograms(device, queue, gputypes.TextureFormatBGRA8Unorm)
//	if err != nil {
//	    return err
//	}
//	defer progs.Destroy()
//
//	ub, err := progs.UploadUniforms("window", gpu.TexUniforms{...}.Bytes())
//	bg, err := progs.NewBindGroup(gpu.ProgramTex, ub, view)
//	pass.SetPipeline(progs.Pipeline(gpu.ProgramTex))
//	pass.SetBindGroup(0, bg, nil)
//
// Uniform blocks are packed by the *Uniforms types in this package; their
// layouts match the WGSL structs byte for byte.
package gpu
