package renderer

// skeletonShaderWGSL is the single WGSL module shared by the bone (line-list)
// and joint (point-list) pipelines. The uniform block carries the
// view-projection matrix and the pipeline's flat draw color.
const skeletonShaderWGSL = `
struct Uniforms {
    view_proj: mat4x4<f32>,
    color: vec4<f32>,
};

@group(0) @binding(0) var<uniform> uniforms: Uniforms;

@vertex
fn vs_main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return uniforms.view_proj * vec4<f32>(position, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return uniforms.color;
}
`
