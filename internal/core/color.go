package core

// Color is a semantic foreground color for a screen cell.
// The platform maps each value to a concrete terminal color through the
// active theme, so games never pick palette codes themselves.
type Color uint8

const (
	ColorDefault Color = iota
	ColorText          // primary text
	ColorDim           // secondary text, empty cells
	ColorAccent        // titles, highlights
	ColorBorder        // frames
	ColorGood          // valid placement ghost
	ColorBad           // invalid placement ghost, warnings
	ColorFlash         // cells being cleared

	// Piece colors, in palette order.
	ColorPieceOrange
	ColorPieceGreen
	ColorPieceBlue
	ColorPieceYellow
	ColorPiecePurple
)
