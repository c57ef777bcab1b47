package engine

import "errors"

var (
	ErrInvalidFrameCount = errors.New("invalid frame count")
	ErrEmptyObject       = errors.New("object has no points")
	ErrIndexOutOfRange   = errors.New("point index out of range")
	ErrDegenerateSurface = errors.New("surface needs at least 3 points")
	ErrObjectNotFound    = errors.New("object not found")
	ErrNameTaken         = errors.New("object name already in use")
	ErrUnknownOperation  = errors.New("unknown operation")
	ErrTemplateNotFound  = errors.New("template not found")
)
