//go:build linux

package scanner

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vladimirvivien/go4vl/device"
	"github.com/vladimirvivien/go4vl/v4l2"

	"github.com/MarcGrol/selfcheckout/lib/mylog"
)

const (
	devRoot   = "/dev"
	sysfsRoot = "/sys/class/video4linux"
)

// V4L2Camera captures MJPEG frames from video4linux devices.
type V4L2Camera struct {
	width  int
	height int
	logger mylog.Logger
}

func NewSystemCamera(width, height int) Camera {
	return &V4L2Camera{
		width:  width,
		height: height,
		logger: mylog.New("camera"),
	}
}

func (cam *V4L2Camera) ListDevices(c context.Context) ([]Device, error) {
	paths, err := filepath.Glob(filepath.Join(devRoot, "video*"))
	if err != nil {
		return nil, fmt.Errorf("error listing video devices: %w", err)
	}
	sort.Strings(paths)

	devices := []Device{}
	for _, path := range paths {
		devices = append(devices, Device{
			ID:    path,
			Label: deviceLabel(sysfsRoot, filepath.Base(path)),
		})
	}
	return devices, nil
}

func deviceLabel(root string, name string) string {
	data, err := os.ReadFile(filepath.Join(root, name, "name"))
	if err != nil {
		return name
	}
	label := strings.TrimSpace(string(data))
	if label == "" {
		return name
	}
	return label
}

func (cam *V4L2Camera) Open(c context.Context, d Device) (FrameSource, error) {
	dev, err := device.Open(d.ID, device.WithPixFormat(v4l2.PixFormat{
		PixelFormat: v4l2.PixelFmtMJPEG,
		Width:       uint32(cam.width),
		Height:      uint32(cam.height),
	}))
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", d.ID, err)
	}

	captureContext, cancel := context.WithCancel(context.WithoutCancel(c))
	err = dev.Start(captureContext)
	if err != nil {
		cancel()
		dev.Close()
		return nil, fmt.Errorf("error starting capture on %s: %w", d.ID, err)
	}

	source := &v4l2Source{
		dev:    dev,
		cancel: cancel,
		frames: make(chan image.Image),
		logger: cam.logger,
	}
	go source.pump(captureContext)

	return source, nil
}

type v4l2Source struct {
	dev    *device.Device
	cancel context.CancelFunc
	frames chan image.Image
	logger mylog.Logger
}

func (s *v4l2Source) Frames() <-chan image.Image {
	return s.frames
}

func (s *v4l2Source) pump(c context.Context) {
	defer close(s.frames)

	output := s.dev.GetOutput()
	for {
		select {
		case <-c.Done():
			return
		case raw, ok := <-output:
			if !ok {
				return
			}
			frame, err := jpeg.Decode(bytes.NewReader(raw))
			if err != nil {
				s.logger.Log(c, "", mylog.SeverityDebug, "Skipping corrupt frame: %s", err)
				continue
			}
			select {
			case s.frames <- frame:
			case <-c.Done():
				return
			}
		}
	}
}

func (s *v4l2Source) Close() error {
	s.cancel()
	return s.dev.Close()
}
