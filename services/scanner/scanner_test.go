package scanner

import (
	"context"
	"errors"
	"image"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/selfcheckout/lib/myerrors"
	"github.com/MarcGrol/selfcheckout/lib/mytime"
)

var (
	frontCam = Device{ID: "/dev/video0", Label: "Integrated Camera"}
	backCam  = Device{ID: "/dev/video2", Label: "USB Back Camera"}
)

type fakeSource struct {
	frames chan image.Image
	closed atomic.Int32
}

func newFakeSource() *fakeSource {
	return &fakeSource{frames: make(chan image.Image)}
}

func (f *fakeSource) Frames() <-chan image.Image {
	return f.frames
}

func (f *fakeSource) Close() error {
	f.closed.Add(1)
	return nil
}

type discardSink struct{}

func (discardSink) Show(frame image.Image) {}

func frame(width int) image.Image {
	return image.NewGray(image.Rect(0, 0, width, 1))
}

func TestStart(t *testing.T) {

	t.Run("No devices", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, sut, camera, _ := setup(ctrl, "")

		// given
		camera.EXPECT().ListDevices(gomock.Any()).Return([]Device{}, nil)

		// when
		err := sut.Start(c)

		// then
		assert.ErrorIs(t, err, ErrNoCameraFound)
		assert.Equal(t, http.StatusNotFound, myerrors.GetHTTPStatus(err))
		status := sut.Status()
		assert.Equal(t, StateError, status.State)
		assert.Equal(t, "No camera found", status.Error)
	})

	t.Run("Device cannot be opened", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, sut, camera, _ := setup(ctrl, "")

		// given
		camera.EXPECT().ListDevices(gomock.Any()).Return([]Device{frontCam}, nil)
		camera.EXPECT().Open(gomock.Any(), frontCam).Return(nil, errors.New("permission denied"))

		// when
		err := sut.Start(c)

		// then
		assert.ErrorIs(t, err, ErrCameraAccessDenied)
		assert.Equal(t, http.StatusForbidden, myerrors.GetHTTPStatus(err))
		status := sut.Status()
		assert.Equal(t, StateError, status.State)
		assert.Equal(t, "Failed to access camera. Make sure camera permission is granted.", status.Error)
	})

	t.Run("Recovers from error by starting again", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, sut, camera, _ := setup(ctrl, "")
		source := newFakeSource()

		// given
		camera.EXPECT().ListDevices(gomock.Any()).Return(nil, nil)
		camera.EXPECT().ListDevices(gomock.Any()).Return([]Device{frontCam}, nil)
		camera.EXPECT().Open(gomock.Any(), frontCam).Return(source, nil)
		sut.Start(c)

		// when
		err := sut.Start(c)

		// then
		assert.NoError(t, err)
		status := sut.Status()
		assert.Equal(t, StateScanning, status.State)
		assert.Empty(t, status.Error)
		sut.Stop()
	})

	t.Run("Prefers rear facing device", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, sut, camera, _ := setup(ctrl, "")
		source := newFakeSource()

		// given
		camera.EXPECT().ListDevices(gomock.Any()).Return([]Device{frontCam, backCam}, nil)
		camera.EXPECT().Open(gomock.Any(), backCam).Return(source, nil)

		// when
		err := sut.Start(c)

		// then
		assert.NoError(t, err)
		assert.Equal(t, &backCam, sut.Status().Device)
		sut.Stop()
	})

	t.Run("Configured device wins", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, sut, camera, _ := setup(ctrl, "/dev/video0")
		source := newFakeSource()

		// given
		camera.EXPECT().ListDevices(gomock.Any()).Return([]Device{frontCam, backCam}, nil)
		camera.EXPECT().Open(gomock.Any(), frontCam).Return(source, nil)

		// when
		err := sut.Start(c)

		// then
		assert.NoError(t, err)
		sut.Stop()
	})

	t.Run("Starting twice keeps one loop", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, sut, camera, _ := setup(ctrl, "")
		source := newFakeSource()

		// given
		camera.EXPECT().ListDevices(gomock.Any()).Return([]Device{frontCam}, nil).Times(1)
		camera.EXPECT().Open(gomock.Any(), frontCam).Return(source, nil).Times(1)
		sut.Start(c)

		// when
		err := sut.Start(c)

		// then
		assert.NoError(t, err)
		sut.Stop()
		assert.Equal(t, int32(1), source.closed.Load())
	})
}

func TestStop(t *testing.T) {

	t.Run("Stop when never started", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, sut, _, _ := setup(ctrl, "")

		// when
		sut.Stop()
		sut.Stop()

		// then
		assert.Equal(t, StateIdle, sut.Status().State)
	})

	t.Run("Stop releases device once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, sut, camera, _ := setup(ctrl, "")
		source := newFakeSource()

		// given
		camera.EXPECT().ListDevices(gomock.Any()).Return([]Device{frontCam}, nil)
		camera.EXPECT().Open(gomock.Any(), frontCam).Return(source, nil)
		require.NoError(t, sut.Start(c))

		// when
		sut.Stop()
		sut.Stop()
		sut.Close()

		// then
		assert.Equal(t, int32(1), source.closed.Load())
		assert.Equal(t, StateIdle, sut.Status().State)
	})

	t.Run("Cancelled start context does not stop the loop", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, sut, camera, _ := setup(ctrl, "")
		source := newFakeSource()
		requestContext, cancel := context.WithCancel(c)

		// given
		camera.EXPECT().ListDevices(gomock.Any()).Return([]Device{frontCam}, nil)
		camera.EXPECT().Open(gomock.Any(), frontCam).Return(source, nil)
		require.NoError(t, sut.Start(requestContext))

		// when
		cancel()

		// then
		assert.Equal(t, StateScanning, sut.Status().State)
		assert.Equal(t, int32(0), source.closed.Load())
		sut.Stop()
		assert.Equal(t, int32(1), source.closed.Load())
	})

	t.Run("Device that stops delivering is released", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, sut, camera, _ := setup(ctrl, "")
		source := newFakeSource()

		// given
		camera.EXPECT().ListDevices(gomock.Any()).Return([]Device{frontCam}, nil)
		camera.EXPECT().Open(gomock.Any(), frontCam).Return(source, nil)
		require.NoError(t, sut.Start(c))

		// when
		close(source.frames)

		// then
		assert.Eventually(t, func() bool {
			return source.closed.Load() == 1
		}, time.Second, 10*time.Millisecond)
		assert.Eventually(t, func() bool {
			return sut.Status().State == StateError
		}, time.Second, 10*time.Millisecond)
		sut.Stop()
		assert.Equal(t, int32(1), source.closed.Load())
	})
}

func TestDecodeLoop(t *testing.T) {

	t.Run("Misses and failures are skipped, repeats are debounced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, sut, camera, decoder := setup(ctrl, "")
		source := newFakeSource()
		scanned := make(chan string, 10)
		sut.OnScan(func(c context.Context, barcode string) {
			scanned <- barcode
		})

		// given
		camera.EXPECT().ListDevices(gomock.Any()).Return([]Device{frontCam}, nil)
		camera.EXPECT().Open(gomock.Any(), frontCam).Return(source, nil)
		gomock.InOrder(
			decoder.EXPECT().Decode(gomock.Any()).Return("", ErrNotFound),
			decoder.EXPECT().Decode(gomock.Any()).Return("", errors.New("corrupt frame")),
			decoder.EXPECT().Decode(gomock.Any()).Return("8991234567890", nil),
			decoder.EXPECT().Decode(gomock.Any()).Return("8991234567890", nil),
			decoder.EXPECT().Decode(gomock.Any()).Return("5901234123457", nil),
		)
		require.NoError(t, sut.Start(c))

		// when
		for i := 1; i <= 5; i++ {
			source.frames <- frame(i)
		}
		sut.Stop()

		// then
		select {
		case barcode := <-scanned:
			assert.Equal(t, "8991234567890", barcode)
		case <-time.After(time.Second):
			t.Fatal("no scan reported")
		}
		select {
		case barcode := <-scanned:
			t.Fatalf("unexpected scan %s", barcode)
		case <-time.After(50 * time.Millisecond):
		}
		last := sut.Status().Last
		assert.Equal(t, "5901234123457", last.Decoded)
		assert.Equal(t, "8991234567890", last.Accepted)
		assert.Equal(t, int32(1), source.closed.Load())
	})
}

func setup(ctrl *gomock.Controller, preferred string) (context.Context, *Scanner, *MockCamera, *MockDecoder) {
	c := context.TODO()
	camera := NewMockCamera(ctrl)
	decoder := NewMockDecoder(ctrl)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	sut := New(camera, decoder, discardSink{}, NewDebouncer(1500*time.Millisecond), nower, preferred)
	return c, sut, camera, decoder
}
