package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"go.uber.org/zap"

	"mcvox/internal/logger"
)

// GLError is a non-zero glGetError code raised by the named operation.
type GLError struct {
	Op   string
	Code uint32
}

func (e *GLError) Error() string {
	return fmt.Sprintf("gl error %s: 0x%x", e.Op, e.Code)
}

// glCheckError drains the GL error queue and returns the first error, if any.
func glCheckError(label string) error {
	var first error
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		logger.Error("gl error", zap.String("op", label), zap.Uint32("code", code))
		if first == nil {
			first = &GLError{Op: label, Code: code}
		}
	}
	return first
}
