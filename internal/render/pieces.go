package render

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/chessfork/internal/board"
)

// Piece silhouettes on a 45x45 canvas. FILL, LINE and MARK are replaced per
// colour before parsing.
var pieceShapes = [6]string{
	board.Pawn: `
<circle cx="22.5" cy="13" r="5" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<path d="M 18 20 L 27 20 L 30 34 L 15 34 Z" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<rect x="11" y="34" width="23" height="5" fill="FILL" stroke="LINE" stroke-width="1.5"/>`,
	board.Knight: `
<path d="M 14 38 L 31 38 L 31 33 C 31 25 33 18 27 11 L 24 7 L 22 11 C 17 12 12 18 10 24 L 13 27 L 18 23 L 20 25 C 17 28 14 31 14 38 Z" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<circle cx="20" cy="16" r="1.5" fill="MARK"/>`,
	board.Bishop: `
<circle cx="22.5" cy="8" r="2.5" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<path d="M 22.5 11 C 16 16 15 24 17 29 L 28 29 C 30 24 29 16 22.5 11 Z" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<rect x="15" y="29" width="15" height="4" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<rect x="10" y="34" width="25" height="4" fill="FILL" stroke="LINE" stroke-width="1.5"/>`,
	board.Rook: `
<path d="M 11 9 L 15 9 L 15 12 L 20 12 L 20 9 L 25 9 L 25 12 L 30 12 L 30 9 L 34 9 L 34 15 L 31 17 L 31 31 L 14 31 L 14 17 L 11 15 Z" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<rect x="10" y="32" width="25" height="6" fill="FILL" stroke="LINE" stroke-width="1.5"/>`,
	board.Queen: `
<path d="M 9 14 L 14 28 L 16 13 L 20 27 L 22.5 11 L 25 27 L 29 13 L 31 28 L 36 14 L 32 33 L 13 33 Z" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<circle cx="9" cy="12" r="2" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<circle cx="16" cy="11" r="2" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<circle cx="22.5" cy="9" r="2" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<circle cx="29" cy="11" r="2" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<circle cx="36" cy="12" r="2" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<rect x="11" y="33" width="23" height="5" fill="FILL" stroke="LINE" stroke-width="1.5"/>`,
	board.King: `
<path d="M 22.5 4 L 22.5 13 M 18.5 8 L 26.5 8" fill="none" stroke="LINE" stroke-width="2"/>
<path d="M 22.5 14 C 14 14 9 19 11 26 L 14 32 L 31 32 L 34 26 C 36 19 31 14 22.5 14 Z" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<rect x="12" y="32" width="21" height="6" fill="FILL" stroke="LINE" stroke-width="1.5"/>`,
}

var pieceColors = [2]*strings.Replacer{
	board.White: strings.NewReplacer("FILL", "#ffffff", "LINE", "#000000", "MARK", "#000000"),
	board.Black: strings.NewReplacer("FILL", "#333333", "LINE", "#000000", "MARK", "#ffffff"),
}

// pieceSVG returns the SVG document for a piece.
func pieceSVG(p board.Piece) string {
	body := pieceColors[p.Color()].Replace(pieceShapes[p.Type()])
	return `<svg xmlns="http://www.w3.org/2000/svg" width="45" height="45" viewBox="0 0 45 45">` + body + `</svg>`
}

// renderScale renders sprites above display size so downscaling smooths them.
const renderScale = 3

var (
	spriteMu    sync.Mutex
	spriteCache = map[int]*[12]*image.RGBA{}
)

// sprites returns the twelve piece images rendered at size*renderScale.
func sprites(size int) (*[12]*image.RGBA, error) {
	spriteMu.Lock()
	defer spriteMu.Unlock()

	if set, ok := spriteCache[size]; ok {
		return set, nil
	}

	renderSize := size * renderScale
	set := new([12]*image.RGBA)
	for p := board.WhitePawn; p < board.NoPiece; p++ {
		icon, err := oksvg.ReadIconStream(strings.NewReader(pieceSVG(p)))
		if err != nil {
			return nil, fmt.Errorf("parse %s silhouette: %w", p, err)
		}
		icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

		rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
		scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
		raster := rasterx.NewDasher(renderSize, renderSize, scanner)
		icon.Draw(raster, 1.0)
		set[p] = rgba
	}

	spriteCache[size] = set
	return set, nil
}
