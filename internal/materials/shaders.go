package materials

// All programs share one vertex stage. Attribute and sampler names follow raylib's defaults
// (vertexPosition, vertexTexCoord, mvp, texture0) so the renderer binds them without
// extra lookups. Meshes carry the MeshLine counter in texcoord.x and
// the side (0 or 1) in texcoord.y, so textured quads and ribbons need nothing else.
const vertexShader = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
uniform mat4 mvp;
out vec2 fragTexCoord;
void main() {
  fragTexCoord = vertexTexCoord;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const (
	hardMixFS = `#version 330
in vec2 fragTexCoord;
uniform sampler2D texture0;
uniform vec3 color;
out vec4 finalColor;
#define threshold 4.0
void main() {
  vec4 texel = texture(texture0, fragTexCoord);
  vec3 gray = abs((texel.rgb - 0.5) * threshold);
  texel.a *= (gray.r + gray.g + gray.b) / 3.0;
  texel.rgb *= color;
  finalColor = texel;
}
`

	// lineFS: counter runs 0..1 along the ribbon; dashes are cut when dashArray > 0.
	lineFS = `#version 330
in vec2 fragTexCoord;
uniform sampler2D texture0;
uniform vec3 color;
uniform float opacity;
uniform vec2 repeat;
uniform float dashArray;
uniform float dashOffset;
uniform float dashRatio;
out vec4 finalColor;
void main() {
  vec4 c = vec4(color, opacity) * texture(texture0, fragTexCoord * repeat);
  if (dashArray > 0.0) {
    if (mod(fragTexCoord.x + dashOffset, dashArray) > dashArray * dashRatio) discard;
  }
  finalColor = c;
}
`

	// distortionFS samples the frame (texture0) offset by the noise texture relative to
	// its own corner value, so an evenly toned noise frame leaves the image untouched.
	distortionFS = `#version 330
in vec2 fragTexCoord;
uniform sampler2D texture0;
uniform sampler2D tNoise;
uniform float distortion;
out vec4 finalColor;
#define t(j) texture(tNoise, j).xy
void main() {
  vec2 p = fragTexCoord;
  finalColor = texture(texture0, p - (t(p) - t(vec2(1.0, -1.0))) * distortion);
}
`
)
