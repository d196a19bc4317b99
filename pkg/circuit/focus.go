package circuit

// Direction is the traversal direction for keyboard focus.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// DirectionForKey maps an arrow key name to a direction: right and down move
// forward, left and up move backward. ok is false for any other key.
func DirectionForKey(key string) (dir Direction, ok bool) {
	switch key {
	case "right", "down":
		return Forward, true
	case "left", "up":
		return Backward, true
	default:
		return Forward, false
	}
}

// NextFocus advances current one step over ids, wrapping at both ends.
// An absent current, or one not found in ids, starts the cycle: the first id
// going forward, the last going backward. With no ids the result is None.
func NextFocus(current OptionalID, dir Direction, ids []NodeID) OptionalID {
	n := len(ids)
	if n == 0 {
		return None
	}

	pos := -1
	if id, ok := current.Get(); ok {
		for i, candidate := range ids {
			if candidate == id {
				pos = i
				break
			}
		}
	}

	if pos < 0 {
		if dir == Backward {
			return Some(ids[n-1])
		}
		return Some(ids[0])
	}

	if dir == Backward {
		return Some(ids[(pos-1+n)%n])
	}
	return Some(ids[(pos+1)%n])
}
