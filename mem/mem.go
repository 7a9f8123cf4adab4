package mem

// DoubleBufferedSlice holds two slices that trade places on Swap. Items appended to Back while
// Front is being consumed become visible after the next Swap, and neither backing array is
// reallocated once it has grown large enough.
type DoubleBufferedSlice[T any] struct {
	Front, Back []T
}

// Swap makes Back the new Front and hands out the old Front, truncated, as the new Back.
func (db *DoubleBufferedSlice[T]) Swap() {
	clear(db.Front)
	db.Front, db.Back = db.Back, db.Front[:0]
}

// Push appends v to Back.
func (db *DoubleBufferedSlice[T]) Push(v T) {
	db.Back = append(db.Back, v)
}

// Reset empties both buffers, clearing references held by their elements.
func (db *DoubleBufferedSlice[T]) Reset() {
	clear(db.Front)
	clear(db.Back)
	db.Front = db.Front[:0]
	db.Back = db.Back[:0]
}
