package scanner

import (
	"image"
	"image/jpeg"
	"io"
	"sync"
)

// LatestFrame keeps the most recent camera frame for the live preview.
type LatestFrame struct {
	sync.RWMutex
	frame image.Image
}

func NewLatestFrame() *LatestFrame {
	return &LatestFrame{}
}

func (l *LatestFrame) Show(frame image.Image) {
	l.Lock()
	defer l.Unlock()

	l.frame = frame
}

// WriteJPEG encodes the latest frame. It returns false when no frame was seen yet.
func (l *LatestFrame) WriteJPEG(w io.Writer) (bool, error) {
	l.RLock()
	frame := l.frame
	l.RUnlock()

	if frame == nil {
		return false, nil
	}
	return true, jpeg.Encode(w, frame, &jpeg.Options{Quality: 75})
}
