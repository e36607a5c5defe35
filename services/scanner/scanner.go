package scanner

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/MarcGrol/selfcheckout/lib/myerrors"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/lib/mytime"
)

type State string

const (
	StateIdle     State = "idle"
	StateScanning State = "scanning"
	StateError    State = "error"
)

type Status struct {
	State  State   `json:"state"`
	Error  string  `json:"error,omitempty"`
	Device *Device `json:"device,omitempty"`
	Last   Last    `json:"last"`
}

// ScanFunc receives every barcode that passed the debouncer.
type ScanFunc func(c context.Context, barcode string)

// Scanner runs at most one decode loop over one camera device at a time.
type Scanner struct {
	camera          Camera
	decoder         Decoder
	sink            FrameSink
	debouncer       *Debouncer
	nower           mytime.Nower
	preferredDevice string
	logger          mylog.Logger

	sync.Mutex
	onScan   ScanFunc
	state    State
	errorMsg string
	device   *Device
	cancel   context.CancelFunc
	done     chan struct{}
}

func New(camera Camera, decoder Decoder, sink FrameSink, debouncer *Debouncer, nower mytime.Nower, preferredDevice string) *Scanner {
	return &Scanner{
		camera:          camera,
		decoder:         decoder,
		sink:            sink,
		debouncer:       debouncer,
		nower:           nower,
		preferredDevice: preferredDevice,
		logger:          mylog.New("scanner"),
		state:           StateIdle,
	}
}

func (s *Scanner) OnScan(f ScanFunc) {
	s.Lock()
	defer s.Unlock()

	s.onScan = f
}

// Start acquires a device and begins decoding. Starting a running scanner is a no-op.
func (s *Scanner) Start(c context.Context) error {
	s.Lock()
	defer s.Unlock()

	if s.state == StateScanning {
		return nil
	}

	devices, err := s.camera.ListDevices(c)
	if err != nil {
		return s.fail(c, myerrors.NewAuthenticationError(fmt.Errorf("%w: %w", ErrCameraAccessDenied, err)), msgCameraAccessDenied)
	}
	if len(devices) == 0 {
		return s.fail(c, myerrors.NewNotFoundError(ErrNoCameraFound), msgNoCameraFound)
	}

	device := chooseDevice(devices, s.preferredDevice)
	source, err := s.camera.Open(c, device)
	if err != nil {
		return s.fail(c, myerrors.NewAuthenticationError(fmt.Errorf("%w: %w", ErrCameraAccessDenied, err)), msgCameraAccessDenied)
	}

	loopContext, cancel := context.WithCancel(context.WithoutCancel(c))
	done := make(chan struct{})

	s.state = StateScanning
	s.errorMsg = ""
	s.device = &device
	s.cancel = cancel
	s.done = done

	s.logger.Log(c, device.ID, mylog.SeverityInfo, "Start scanning with %s (%s)", device.ID, device.Label)

	go s.run(loopContext, source, done)

	return nil
}

func (s *Scanner) fail(c context.Context, err error, userMessage string) error {
	s.logger.Log(c, "", mylog.SeverityError, "Error starting scanner: %s", err)
	s.state = StateError
	s.errorMsg = userMessage
	s.device = nil
	return err
}

// Stop cancels decoding and returns once the device has been released. It is safe to call at any time.
func (s *Scanner) Stop() {
	s.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.done = nil
	if s.state == StateScanning {
		s.state = StateIdle
		s.device = nil
	}
	s.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Close releases the device on teardown.
func (s *Scanner) Close() {
	s.Stop()
}

func (s *Scanner) Status() Status {
	s.Lock()
	defer s.Unlock()

	return Status{
		State:  s.state,
		Error:  s.errorMsg,
		Device: s.device,
		Last:   s.debouncer.Last(),
	}
}

func (s *Scanner) run(c context.Context, source FrameSource, done chan struct{}) {
	defer close(done)
	defer func() {
		err := source.Close()
		if err != nil {
			s.logger.Log(c, "", mylog.SeverityWarn, "Error releasing camera: %s", err)
		}
	}()

	frames := source.Frames()
	for {
		select {
		case <-c.Done():
			return
		case frame, ok := <-frames:
			if !ok {
				s.lost(c, done)
				return
			}
			s.handleFrame(c, frame)
		}
	}
}

// lost marks the scanner as failed when the device stopped delivering frames on its own.
func (s *Scanner) lost(c context.Context, done chan struct{}) {
	s.Lock()
	defer s.Unlock()

	if s.done != done {
		return
	}
	s.logger.Log(c, "", mylog.SeverityError, "Camera stopped delivering frames")
	s.cancel()
	s.cancel = nil
	s.done = nil
	s.state = StateError
	s.errorMsg = msgCameraAccessDenied
	s.device = nil
}

func (s *Scanner) handleFrame(c context.Context, frame image.Image) {
	s.sink.Show(frame)

	barcode, err := s.decoder.Decode(frame)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Log(c, "", mylog.SeverityDebug, "Error decoding frame: %s", err)
		}
		return
	}

	if !s.debouncer.Accept(barcode, s.nower.Now()) {
		return
	}

	s.Lock()
	onScan := s.onScan
	s.Unlock()

	s.logger.Log(c, barcode, mylog.SeverityInfo, "Scanned %s", barcode)
	if onScan != nil {
		go onScan(context.WithoutCancel(c), barcode)
	}
}

func chooseDevice(devices []Device, preferred string) Device {
	if preferred != "" {
		for _, d := range devices {
			if d.ID == preferred {
				return d
			}
		}
	}
	for _, d := range devices {
		if strings.Contains(strings.ToLower(d.Label), "back") {
			return d
		}
	}
	return devices[0]
}
