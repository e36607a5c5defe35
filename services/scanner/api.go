package scanner

import (
	"context"
	"errors"
	"image"
)

var (
	ErrNoCameraFound      = errors.New("no camera found")
	ErrCameraAccessDenied = errors.New("camera access denied")

	// ErrNotFound is the per frame "no barcode in this frame" outcome. It is not a failure.
	ErrNotFound = errors.New("no barcode in frame")
)

const (
	msgNoCameraFound      = "No camera found"
	msgCameraAccessDenied = "Failed to access camera. Make sure camera permission is granted."
)

type Device struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

//go:generate mockgen -source=api.go -package scanner -destination api_mock.go Camera,Decoder
type Camera interface {
	ListDevices(c context.Context) ([]Device, error)
	Open(c context.Context, device Device) (FrameSource, error)
}

// FrameSource is an opened device. Frames is closed when the device stops delivering.
type FrameSource interface {
	Frames() <-chan image.Image
	Close() error
}

type Decoder interface {
	Decode(frame image.Image) (string, error)
}

type FrameSink interface {
	Show(frame image.Image)
}

// NoCamera is used when the kiosk runs without a camera attached.
type NoCamera struct{}

func (NoCamera) ListDevices(c context.Context) ([]Device, error) {
	return nil, nil
}

func (NoCamera) Open(c context.Context, device Device) (FrameSource, error) {
	return nil, ErrNoCameraFound
}
