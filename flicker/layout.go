package flicker

// Geometry defaults and limits for the flicker display. Bar width is the
// only dimension the user adjusts (to match the TAN generator's photodiode
// spacing); height and margin are fixed by the display convention.
const (
	BarCount = 5 // clock bar + 4 data bars

	DefaultBarWidth = 44
	MinBarWidth     = 10
	MaxBarWidth     = 80

	BarHeight = 200 // fixed bar height in px
	BarMargin = 12  // gap between adjacent bars
	TopInset  = 20  // y offset of the bars; marker triangles live above

	markerWing = 10 // half-width of a marker triangle
	markerTipY = 2  // y of the triangle tip row
)

// Rect is an axis-aligned rectangle for the presentation layer.
type Rect struct {
	X, Y, W, H int
}

// Triangle is a downward-pointing position marker. The TAN generator
// carries matching marks that the user aligns with these.
type Triangle struct {
	ApexX, ApexY int // bottom point, centered over a bar
	TopY         int // y of the two upper corners, at ApexX±Wing
	Wing         int
}

// Layout computes where the five bars and the two alignment markers sit
// inside a drawing area of the given total width. The bars are centered
// horizontally; the markers sit over the first and last bar.
type Layout struct {
	Width    int // total width of the drawing area
	BarWidth int

	x0 int // x of the first bar
}

// NewLayout builds a layout for a drawing area totalWidth pixels wide.
// barWidth is clamped into [MinBarWidth, MaxBarWidth].
func NewLayout(totalWidth, barWidth int) Layout {
	if barWidth < MinBarWidth {
		barWidth = MinBarWidth
	}
	if barWidth > MaxBarWidth {
		barWidth = MaxBarWidth
	}
	return Layout{
		Width:    totalWidth,
		BarWidth: barWidth,
		x0:       (totalWidth - (BarCount-1)*BarMargin - BarCount*barWidth) / 2,
	}
}

// BarRect returns the rectangle of bar i (0 = clock bar).
func (l Layout) BarRect(i int) Rect {
	return Rect{
		X: l.x0 + i*(BarMargin+l.BarWidth),
		Y: TopInset,
		W: l.BarWidth,
		H: BarHeight,
	}
}

// Markers returns the two alignment triangles, centered over the first
// and last bar.
func (l Layout) Markers() [2]Triangle {
	left := l.x0 + l.BarWidth/2
	right := l.x0 + (BarCount-1)*(BarMargin+l.BarWidth) + l.BarWidth/2
	return [2]Triangle{
		{ApexX: left, ApexY: TopInset, TopY: markerTipY, Wing: markerWing},
		{ApexX: right, ApexY: TopInset, TopY: markerTipY, Wing: markerWing},
	}
}

// Height returns the total height of the drawing area: the bars plus the
// inset above (markers) and the same inset below.
func (l Layout) Height() int {
	return BarHeight + 2*TopInset
}
