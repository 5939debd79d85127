// Package ebiten draws the scene with Ebitengine, projecting the 3D
// primitives in software, and reads the keyboard and standard gamepads.
package ebiten

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/pspecs/ecs"
	"github.com/plus3/pspecs/render"
)

var _ render.Backend = (*Canvas)(nil)

// glyphWidth is the advance of the built-in debug font.
const glyphWidth = 6

var whiteSubImage *ebiten.Image

// white is a one pixel source image for filled triangles.
func white() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// Canvas implements render.Backend on the ebiten screen image of the
// current Draw call.
type Canvas struct {
	screen *ebiten.Image
	proj   *projector
}

func rgba(c ecs.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Target points the canvas at the image to draw this frame.
func (c *Canvas) Target(screen *ebiten.Image) {
	c.screen = screen
}

func (c *Canvas) BeginFrame(clear ecs.Color) {
	c.screen.Fill(rgba(clear))
}

func (c *Canvas) EndFrame() {}

func (c *Canvas) BeginMode3D(view ecs.View) {
	p := newProjector(view, c.ScreenWidth(), c.ScreenHeight())
	c.proj = &p
}

func (c *Canvas) EndMode3D() {
	c.proj = nil
}

func (c *Canvas) line(a, b mgl32.Vec2, col color.Color) {
	vector.StrokeLine(c.screen, a[0], a[1], b[0], b[1], 1, col, true)
}

func (c *Canvas) DrawLine3D(start, end ecs.Vector3, col ecs.Color) {
	if c.proj == nil {
		return
	}
	if a, b, ok := c.proj.segment(start, end); ok {
		c.line(a, b, rgba(col))
	}
}

func (c *Canvas) DrawCube(pos ecs.Vector3, w, h, l float32, col ecs.Color) {
	if c.proj == nil {
		return
	}
	corners := boxCorners(pos, w, h, l)
	for _, f := range boxFaces {
		a, b, cc, d := corners[f.corners[0]], corners[f.corners[1]], corners[f.corners[2]], corners[f.corners[3]]
		center := a.Add(cc).Mul(0.5)
		if !c.proj.facing(center, f.normal) {
			continue
		}
		c.quad([4]ecs.Vector3{a, b, cc, d}, shade(col, f.shade))
	}
}

func (c *Canvas) DrawCubeWires(pos ecs.Vector3, w, h, l float32, col ecs.Color) {
	corners := boxCorners(pos, w, h, l)
	for _, e := range boxEdges {
		c.DrawLine3D(corners[e[0]], corners[e[1]], col)
	}
}

func (c *Canvas) DrawSphere(center ecs.Vector3, radius float32, col ecs.Color) {
	if c.proj == nil {
		return
	}
	at, ok := c.proj.project(center)
	if !ok {
		return
	}
	if r, ok := c.proj.radius(center, radius); ok {
		vector.DrawFilledCircle(c.screen, at[0], at[1], r, rgba(col), true)
	}
}

func (c *Canvas) DrawPlane(center ecs.Vector3, w, l float32, col ecs.Color) {
	if c.proj == nil {
		return
	}
	hw, hl := w/2, l/2
	c.quad([4]ecs.Vector3{
		center.Add(ecs.Vector3{-hw, 0, -hl}),
		center.Add(ecs.Vector3{hw, 0, -hl}),
		center.Add(ecs.Vector3{hw, 0, hl}),
		center.Add(ecs.Vector3{-hw, 0, hl}),
	}, rgba(col))
}

func (c *Canvas) DrawGrid(slices int, spacing float32) {
	for i, seg := range gridLines(slices, spacing) {
		col := ecs.Color{191, 191, 191, 255}
		if i < 2 {
			col = ecs.Color{127, 127, 127, 255}
		}
		c.DrawLine3D(seg[0], seg[1], col)
	}
}

// quad fills a convex quad, skipping it when any corner is behind the camera.
func (c *Canvas) quad(corners [4]ecs.Vector3, col color.RGBA) {
	var vs [4]ebiten.Vertex
	r, g, b, a := float32(col.R)/255, float32(col.G)/255, float32(col.B)/255, float32(col.A)/255
	for i, corner := range corners {
		p, ok := c.proj.project(corner)
		if !ok {
			return
		}
		vs[i] = ebiten.Vertex{
			DstX: p[0], DstY: p[1],
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		}
	}
	c.screen.DrawTriangles(vs[:], []uint16{0, 1, 2, 0, 2, 3}, white(), &ebiten.DrawTrianglesOptions{})
}

func shade(c ecs.Color, f float32) color.RGBA {
	return color.RGBA{
		R: uint8(float32(c.R) * f),
		G: uint8(float32(c.G) * f),
		B: uint8(float32(c.B) * f),
		A: c.A,
	}
}

func (c *Canvas) ScreenWidth() int  { return c.screen.Bounds().Dx() }
func (c *Canvas) ScreenHeight() int { return c.screen.Bounds().Dy() }

// DrawText uses the built-in debug font, which has a single size and color.
func (c *Canvas) DrawText(text string, x, y, size int, col ecs.Color) {
	ebitenutil.DebugPrintAt(c.screen, text, x, y)
}

func (c *Canvas) DrawRectangle(x, y, w, h int, col ecs.Color) {
	vector.DrawFilledRect(c.screen, float32(x), float32(y), float32(w), float32(h), rgba(col), false)
}

func (c *Canvas) MeasureText(text string, size int) int {
	return len(text) * glyphWidth
}
