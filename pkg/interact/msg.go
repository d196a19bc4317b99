package interact

// Msg is an input event. The set is closed; see the types below.
type Msg interface {
	isMsg()
}

// PointerMove is a mouse move or single-touch move, in surface coordinates.
type PointerMove struct{ X, Y float64 }

// PointerDown is a touch start. It updates hover the same way a move does so a
// tap can activate on release.
type PointerDown struct{ X, Y float64 }

// PointerUp is a mouse button release, a touch end or a click.
type PointerUp struct{}

// PointerLeave is sent when the pointer leaves the surface.
type PointerLeave struct{}

// KeyDown is a key press while the surface has input focus.
type KeyDown struct{ Key Key }

// FocusGained is sent when the surface receives input focus.
type FocusGained struct{}

// FocusLost is sent when the surface loses input focus.
type FocusLost struct{}

// Resized carries the new container size in CSS pixels.
type Resized struct {
	Width, Height float64
	PixelRatio    float64
}

// Dismissed closes the detail view.
type Dismissed struct{}

func (PointerMove) isMsg()  {}
func (PointerDown) isMsg()  {}
func (PointerUp) isMsg()    {}
func (PointerLeave) isMsg() {}
func (KeyDown) isMsg()      {}
func (FocusGained) isMsg()  {}
func (FocusLost) isMsg()    {}
func (Resized) isMsg()      {}
func (Dismissed) isMsg()    {}

// Key is a logical key name.
type Key string

const (
	KeyEnter      Key = "enter"
	KeySpace      Key = "space"
	KeyArrowUp    Key = "up"
	KeyArrowDown  Key = "down"
	KeyArrowLeft  Key = "left"
	KeyArrowRight Key = "right"
)

// IsArrow reports whether k is one of the four arrow keys.
func (k Key) IsArrow() bool {
	switch k {
	case KeyArrowUp, KeyArrowDown, KeyArrowLeft, KeyArrowRight:
		return true
	}
	return false
}
