// Package render draws board diagrams as images.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/chessfork/internal/board"
)

// Theme defines the colours of a diagram.
type Theme struct {
	LightSquare color.RGBA
	DarkSquare  color.RGBA
	Highlight   color.RGBA
	CheckColor  color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() Theme {
	return Theme{
		LightSquare: color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:  color.RGBA{181, 136, 99, 255},  // Brown
		Highlight:   color.RGBA{247, 247, 105, 140},
		CheckColor:  color.RGBA{255, 100, 100, 180},
	}
}

// Options control how a diagram is drawn.
type Options struct {
	SquareSize int        // pixels per square, 64 if zero
	Flip       bool       // draw from black's side
	Highlight  board.Move // from and to squares are tinted; NoMove for none
	NoLabels   bool       // omit file and rank letters
	Theme      *Theme     // DefaultTheme if nil
}

const defaultSquareSize = 64

// Diagram draws pos. The side to move's king is tinted when in check.
func Diagram(pos *board.Position, opts Options) (*image.RGBA, error) {
	size := opts.SquareSize
	if size <= 0 {
		size = defaultSquareSize
	}
	theme := DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}

	pieces, err := sprites(size)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, 8*size, 8*size))

	var tinted board.Bitboard
	if !opts.Highlight.Equal(board.NoMove) {
		tinted = board.SquareBB(opts.Highlight.From()) | board.SquareBB(opts.Highlight.To())
	}
	checked := board.NoSquare
	if pos.InCheck() {
		checked = pos.KingSquare(pos.SideToMove)
	}

	for sq := board.A1; sq <= board.H8; sq++ {
		r := squareRect(sq, size, opts.Flip)

		fill := theme.LightSquare
		if (sq.File()+sq.Rank())%2 == 0 {
			fill = theme.DarkSquare
		}
		draw.Draw(img, r, image.NewUniform(fill), image.Point{}, draw.Src)

		if tinted&board.SquareBB(sq) != 0 {
			draw.Draw(img, r, image.NewUniform(theme.Highlight), image.Point{}, draw.Over)
		}
		if sq == checked {
			draw.Draw(img, r, image.NewUniform(theme.CheckColor), image.Point{}, draw.Over)
		}

		if p := pos.PieceAt(sq); p != board.NoPiece {
			sprite := pieces[p]
			draw.CatmullRom.Scale(img, r, sprite, sprite.Bounds(), draw.Over, nil)
		}
	}

	if !opts.NoLabels {
		drawLabels(img, size, opts.Flip, theme)
	}
	return img, nil
}

// squareRect returns the pixel rectangle of sq.
func squareRect(sq board.Square, size int, flip bool) image.Rectangle {
	col, row := sq.File(), 7-sq.Rank()
	if flip {
		col, row = 7-col, 7-row
	}
	return image.Rect(col*size, row*size, (col+1)*size, (row+1)*size)
}

func labelFace(size int) font.Face {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size) / 5,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// drawLabels writes file letters along the bottom edge and rank numbers
// along the left edge, in the colour of the opposite square.
func drawLabels(img *image.RGBA, size int, flip bool, theme Theme) {
	face := labelFace(size)
	defer face.Close()

	pad := size / 16
	metrics := face.Metrics()

	for i := 0; i < 8; i++ {
		file, rank := i, i
		if flip {
			file, rank = 7-i, 7-i
		}

		// File letter in the bottom-right corner of the bottom row.
		bottom := board.NewSquare(file, 0)
		if flip {
			bottom = board.NewSquare(file, 7)
		}
		r := squareRect(bottom, size, flip)
		letter := string(rune('a' + file))
		w := font.MeasureString(face, letter).Ceil()
		drawText(img, face, letter, r.Max.X-w-pad, r.Max.Y-pad-metrics.Descent.Ceil(), labelColor(bottom, theme))

		// Rank digit in the top-left corner of the left column.
		left := board.NewSquare(0, rank)
		if flip {
			left = board.NewSquare(7, rank)
		}
		r = squareRect(left, size, flip)
		digit := string(rune('1' + rank))
		drawText(img, face, digit, r.Min.X+pad, r.Min.Y+pad+metrics.Ascent.Ceil(), labelColor(left, theme))
	}
}

func labelColor(sq board.Square, theme Theme) color.RGBA {
	if (sq.File()+sq.Rank())%2 == 0 {
		return theme.LightSquare
	}
	return theme.DarkSquare
}

func drawText(img *image.RGBA, face font.Face, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG writes img to a PNG file at path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
