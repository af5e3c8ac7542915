package scene

import "fmt"

// Operations reported by ObjectError.
const (
	OpUpdate = "update"
	OpDraw   = "draw"
	OpResize = "resize"
)

// ObjectError reports a render object that panicked. The tick or resize it
// happened in is abandoned and the loop is stopped.
type ObjectError struct {
	Index int
	Op    string
	Cause interface{}
}

func (e *ObjectError) Error() string {
	return fmt.Sprintf("render object %d: %s: %v", e.Index, e.Op, e.Cause)
}

// Unwrap exposes the cause when the object panicked with an error.
func (e *ObjectError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}
