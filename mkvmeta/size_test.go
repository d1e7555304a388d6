package mkvmeta

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recolude/kinect-recordings/k4a"
)

// fakeCalibration answers the base calibration queries from canned
// values.
type fakeCalibration struct {
	cameras    map[k4a.CalibrationType]k4a.Camera
	matrix     [][]float64
	distortion []float64
	err        error
}

func (f *fakeCalibration) Camera(t k4a.CalibrationType) (k4a.Camera, error) {
	if f.err != nil {
		return k4a.Camera{}, f.err
	}
	cam, ok := f.cameras[t]
	if !ok {
		return k4a.Camera{}, errors.New("no such camera")
	}
	return cam, nil
}

func (f *fakeCalibration) CameraMatrix(t k4a.CalibrationType) ([][]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.matrix, nil
}

func (f *fakeCalibration) DistortionCoefficients(t k4a.CalibrationType) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.distortion, nil
}

// sizedCalibration additionally has the live image-size capability.
type sizedCalibration struct {
	fakeCalibration
	size    k4a.ImageSize
	sizeErr error
}

func (s *sizedCalibration) ImageSize(t k4a.CalibrationType) (k4a.ImageSize, error) {
	return s.size, s.sizeErr
}

func intp(v int) *int { return &v }

func TestSizeOfPrefersLiveAnswer(t *testing.T) {
	calib := &sizedCalibration{
		fakeCalibration: fakeCalibration{
			cameras: map[k4a.CalibrationType]k4a.Camera{
				k4a.CalibrationColor: {ResolutionWidth: intp(640), ResolutionHeight: intp(480)},
			},
		},
		size: k4a.ImageSize{Width: 1920, Height: 1080},
	}
	cfg := map[string]any{"color_resolution": "RES_720P"}

	assert.Equal(t, [2]int{1920, 1080}, SizeOf(calib, k4a.CalibrationColor, cfg))
}

func TestSizeOfFallsBackToRawFields(t *testing.T) {
	calib := &sizedCalibration{
		fakeCalibration: fakeCalibration{
			cameras: map[k4a.CalibrationType]k4a.Camera{
				k4a.CalibrationColor: {ResolutionWidth: intp(640), ResolutionHeight: intp(480)},
			},
		},
		sizeErr: errors.New("not supported on this capture"),
	}
	// Raw fields outrank the nominal table even when the table has an
	// answer.
	cfg := map[string]any{"color_resolution": "RES_1080P"}

	assert.Equal(t, [2]int{640, 480}, SizeOf(calib, k4a.CalibrationColor, cfg))
}

func TestSizeOfRequiresBothRawFields(t *testing.T) {
	calib := &fakeCalibration{
		cameras: map[k4a.CalibrationType]k4a.Camera{
			k4a.CalibrationColor: {ResolutionWidth: intp(640)},
		},
	}
	cfg := map[string]any{"color_resolution": "RES_1080P"}

	assert.Equal(t, [2]int{1920, 1080}, SizeOf(calib, k4a.CalibrationColor, cfg))
}

func TestSizeOfNominalTable(t *testing.T) {
	calib := &fakeCalibration{err: errors.New("calibration unreadable")}

	cfg := map[string]any{
		"color_resolution": "RES_1080P",
		"depth_mode":       "NFOV_UNBINNED",
	}
	assert.Equal(t, [2]int{1920, 1080}, SizeOf(calib, k4a.CalibrationColor, cfg))
	assert.Equal(t, [2]int{640, 576}, SizeOf(calib, k4a.CalibrationDepth, cfg))
}

func TestSizeOfUnknown(t *testing.T) {
	calib := &sizedCalibration{
		fakeCalibration: fakeCalibration{err: errors.New("calibration unreadable")},
		sizeErr:         errors.New("not supported"),
	}

	// Every tier exhausted, including a disabled mode in the table.
	assert.Equal(t, UnknownSize, SizeOf(calib, k4a.CalibrationColor, map[string]any{"color_resolution": "OFF"}))
	assert.Equal(t, UnknownSize, SizeOf(calib, k4a.CalibrationDepth, nil))
	assert.Equal(t, UnknownSize, SizeOf(nil, k4a.CalibrationDepth, nil))
}
