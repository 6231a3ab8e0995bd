package gui

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/pkg/errors"

	"github.com/hexaflex/tricolor/gpu"
	"github.com/hexaflex/tricolor/gpu/opengl"
)

const vertexShader = `
uniform mat4 ProjMtx;

in vec2 Position;
in vec2 UV;
in vec4 Color;

out vec2 Frag_UV;
out vec4 Frag_Color;

void main() {
    Frag_UV     = UV;
    Frag_Color  = Color;
    gl_Position = ProjMtx * vec4(Position.xy, 0, 1);
}
`

const fragmentShader = `
uniform sampler2D Texture;

in  vec2 Frag_UV;
in  vec4 Frag_Color;
out vec4 Out_Color;

void main() {
    // The font atlas is uploaded as a single channel alpha texture.
    Out_Color = vec4(Frag_Color.rgb, Frag_Color.a * texture(Texture, Frag_UV.st).r);
}
`

// renderer draws imgui draw data with OpenGL 3+.
type renderer struct {
	fontTexture    uint32
	shader         uint32
	vbo            uint32
	elements       uint32
	locTex         int32
	locProjMtx     int32
	attribPosition uint32
	attribUV       uint32
	attribColor    uint32
}

// newRenderer creates the program, buffers and font texture used to draw
// the UI. glslVersion is prepended to the shader sources.
func newRenderer(io imgui.IO, glslVersion string) (*renderer, error) {
	var r renderer
	var err error

	r.shader, err = gpu.CompileProgram(opengl.New(), glslVersion+vertexShader, glslVersion+fragmentShader)
	if err != nil {
		return nil, errors.Wrapf(err, "imgui shaders")
	}

	r.locTex = gl.GetUniformLocation(r.shader, glStr("Texture"))
	r.locProjMtx = gl.GetUniformLocation(r.shader, glStr("ProjMtx"))
	r.attribPosition = uint32(gl.GetAttribLocation(r.shader, glStr("Position")))
	r.attribUV = uint32(gl.GetAttribLocation(r.shader, glStr("UV")))
	r.attribColor = uint32(gl.GetAttribLocation(r.shader, glStr("Color")))

	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.elements)
	if r.vbo == 0 || r.elements == 0 {
		r.dispose()
		return nil, errors.Wrapf(gpu.ErrAlloc, "imgui buffers")
	}

	r.createFontTexture(io)
	if r.fontTexture == 0 {
		r.dispose()
		return nil, errors.Wrapf(gpu.ErrAlloc, "imgui font texture")
	}

	return &r, nil
}

func (r *renderer) createFontTexture(io imgui.IO) {
	image := io.Fonts().TextureDataAlpha8()

	var lastTexture int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)

	gl.GenTextures(1, &r.fontTexture)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(image.Width), int32(image.Height),
		0, gl.RED, gl.UNSIGNED_BYTE, image.Pixels)

	io.Fonts().SetTextureID(imgui.TextureID(r.fontTexture))
	gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))
}

// dispose releases all GL objects. It is safe to call more than once.
func (r *renderer) dispose() {
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}

	if r.elements != 0 {
		gl.DeleteBuffers(1, &r.elements)
		r.elements = 0
	}

	if r.shader != 0 {
		gl.DeleteProgram(r.shader)
		r.shader = 0
	}

	if r.fontTexture != 0 {
		gl.DeleteTextures(1, &r.fontTexture)
		r.fontTexture = 0
	}
}

// Render translates the imgui draw data to OpenGL commands. GL state
// touched by this call is restored afterwards.
func (r *renderer) Render(displaySize, framebufferSize [2]float32, drawData imgui.DrawData) {
	displayWidth, displayHeight := displaySize[0], displaySize[1]
	fbWidth, fbHeight := framebufferSize[0], framebufferSize[1]
	if fbWidth <= 0 || fbHeight <= 0 || displayWidth <= 0 || displayHeight <= 0 {
		return
	}

	drawData.ScaleClipRects(imgui.Vec2{
		X: fbWidth / displayWidth,
		Y: fbHeight / displayHeight,
	})

	state := saveState()
	defer state.restore()

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	projection := [4][4]float32{
		{2.0 / displayWidth, 0.0, 0.0, 0.0},
		{0.0, 2.0 / -displayHeight, 0.0, 0.0},
		{0.0, 0.0, -1.0, 0.0},
		{-1.0, 1.0, 0.0, 1.0},
	}

	gl.UseProgram(r.shader)
	gl.Uniform1i(r.locTex, 0)
	gl.UniformMatrix4fv(r.locProjMtx, 1, false, &projection[0][0])
	gl.BindSampler(0, 0)
	gl.ActiveTexture(gl.TEXTURE0)

	// A vertex array can not be shared between contexts, so one is
	// created for each call.
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.EnableVertexAttribArray(r.attribPosition)
	gl.EnableVertexAttribArray(r.attribUV)
	gl.EnableVertexAttribArray(r.attribColor)

	vertexSize, offsetPos, offsetUV, offsetCol := imgui.VertexBufferLayout()
	gl.VertexAttribPointerWithOffset(r.attribPosition, 2, gl.FLOAT, false, int32(vertexSize), uintptr(offsetPos))
	gl.VertexAttribPointerWithOffset(r.attribUV, 2, gl.FLOAT, false, int32(vertexSize), uintptr(offsetUV))
	gl.VertexAttribPointerWithOffset(r.attribColor, 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), uintptr(offsetCol))

	indexSize := imgui.IndexBufferLayout()
	drawType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, vertexBufferSize, vertexBuffer, gl.STREAM_DRAW)

		indexBuffer, indexBufferSize := list.IndexBuffer()
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.elements)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBufferSize, indexBuffer, gl.STREAM_DRAW)

		var offset uintptr
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else {
				clip := cmd.ClipRect()
				gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
				gl.Scissor(int32(clip.X), int32(fbHeight)-int32(clip.W), int32(clip.Z-clip.X), int32(clip.W-clip.Y))
				gl.DrawElementsWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), drawType, offset)
			}
			offset += uintptr(cmd.ElementCount() * indexSize)
		}
	}

	gl.DeleteVertexArrays(1, &vao)
}

// glState holds the GL state modified by Render.
type glState struct {
	program, texture, activeTexture int32
	arrayBuffer, vertexArray        int32
	viewport, scissorBox            [4]int32
	polygonMode                     [2]int32
	blendSrcRGB, blendDstRGB        int32
	blendSrcAlpha, blendDstAlpha    int32
	blendEquationRGB, blendEqAlpha  int32
	blend, cullFace                 bool
	depthTest, scissorTest          bool
}

func saveState() *glState {
	var s glState
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &s.program)
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &s.texture)
	gl.GetIntegerv(gl.ACTIVE_TEXTURE, &s.activeTexture)
	gl.GetIntegerv(gl.ARRAY_BUFFER_BINDING, &s.arrayBuffer)
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &s.vertexArray)
	gl.GetIntegerv(gl.VIEWPORT, &s.viewport[0])
	gl.GetIntegerv(gl.SCISSOR_BOX, &s.scissorBox[0])
	gl.GetIntegerv(gl.POLYGON_MODE, &s.polygonMode[0])
	gl.GetIntegerv(gl.BLEND_SRC_RGB, &s.blendSrcRGB)
	gl.GetIntegerv(gl.BLEND_DST_RGB, &s.blendDstRGB)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &s.blendSrcAlpha)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &s.blendDstAlpha)
	gl.GetIntegerv(gl.BLEND_EQUATION_RGB, &s.blendEquationRGB)
	gl.GetIntegerv(gl.BLEND_EQUATION_ALPHA, &s.blendEqAlpha)
	s.blend = gl.IsEnabled(gl.BLEND)
	s.cullFace = gl.IsEnabled(gl.CULL_FACE)
	s.depthTest = gl.IsEnabled(gl.DEPTH_TEST)
	s.scissorTest = gl.IsEnabled(gl.SCISSOR_TEST)
	return &s
}

func (s *glState) restore() {
	gl.UseProgram(uint32(s.program))
	gl.BindTexture(gl.TEXTURE_2D, uint32(s.texture))
	gl.ActiveTexture(uint32(s.activeTexture))
	gl.BindVertexArray(uint32(s.vertexArray))
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(s.arrayBuffer))
	gl.BlendEquationSeparate(uint32(s.blendEquationRGB), uint32(s.blendEqAlpha))
	gl.BlendFuncSeparate(uint32(s.blendSrcRGB), uint32(s.blendDstRGB), uint32(s.blendSrcAlpha), uint32(s.blendDstAlpha))
	gl.PolygonMode(gl.FRONT_AND_BACK, uint32(s.polygonMode[0]))
	gl.Viewport(s.viewport[0], s.viewport[1], s.viewport[2], s.viewport[3])
	gl.Scissor(s.scissorBox[0], s.scissorBox[1], s.scissorBox[2], s.scissorBox[3])
	enable(gl.BLEND, s.blend)
	enable(gl.CULL_FACE, s.cullFace)
	enable(gl.DEPTH_TEST, s.depthTest)
	enable(gl.SCISSOR_TEST, s.scissorTest)
}

func enable(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

// glStr returns v as a C string, suitable for use with opengl.
func glStr(v string) *uint8 {
	return gl.Str(v + "\x00")
}
