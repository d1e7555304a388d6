package mkvtool

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/recolude/kinect-recordings/k4a"
)

// Factory calibration blob the recorder attaches as calibration.json.
// Intrinsic model parameters are normalized to the sensor geometry;
// the Brown-Conrady layout is
// cx cy fx fy k1 k2 k3 k4 k5 k6 codx cody p2 p1.
type factoryCalibration struct {
	CalibrationInformation struct {
		Cameras []factoryCamera `json:"Cameras"`
	} `json:"CalibrationInformation"`
}

type factoryCamera struct {
	Location   string `json:"Location"`
	Intrinsics struct {
		ModelParameterCount int       `json:"ModelParameterCount"`
		ModelParameters     []float64 `json:"ModelParameters"`
		ModelType           string    `json:"ModelType"`
	} `json:"Intrinsics"`
	Rt struct {
		Rotation    []float64 `json:"Rotation"`
		Translation []float64 `json:"Translation"`
	} `json:"Rt"`
	SensorWidth  int `json:"SensorWidth"`
	SensorHeight int `json:"SensorHeight"`
}

const brownConradyParamCount = 14

// Calibration answers calibration queries from the factory blob. It
// reports factory-sensor geometry only: no per-mode resolution is ever
// claimed, and the live image-size capability is absent on purpose, so
// image sizes resolve through the nominal mode tables.
type Calibration struct {
	cameras map[k4a.CalibrationType]factoryCamera
}

var (
	_ k4a.Calibration        = (*Calibration)(nil)
	_ k4a.ExtrinsicsProvider = (*Calibration)(nil)
)

func parseFactoryCalibration(raw []byte) (*Calibration, error) {
	var blob factoryCalibration
	if err := json.Unmarshal(raw, &blob); err != nil {
		return nil, fmt.Errorf("parsing factory calibration: %w", err)
	}
	cal := &Calibration{cameras: map[k4a.CalibrationType]factoryCamera{}}
	for _, cam := range blob.CalibrationInformation.Cameras {
		switch cam.Location {
		case "CALIBRATION_CameraLocationD0":
			cal.cameras[k4a.CalibrationDepth] = cam
		case "CALIBRATION_CameraLocationPV0":
			cal.cameras[k4a.CalibrationColor] = cam
		}
	}
	if len(cal.cameras) == 0 {
		return nil, fmt.Errorf("factory calibration names no depth or color camera")
	}
	return cal, nil
}

func (c *Calibration) camera(t k4a.CalibrationType) (factoryCamera, error) {
	cam, ok := c.cameras[t]
	if !ok {
		return factoryCamera{}, fmt.Errorf("no factory calibration for %s camera", t)
	}
	return cam, nil
}

// Camera returns the raw calibration record for a target. The factory
// blob only knows sensor geometry, not the recorded mode's, so the
// resolution fields stay nil.
func (c *Calibration) Camera(t k4a.CalibrationType) (k4a.Camera, error) {
	if _, err := c.camera(t); err != nil {
		return k4a.Camera{}, err
	}
	return k4a.Camera{}, nil
}

func (c *Calibration) params(t k4a.CalibrationType) (factoryCamera, []float64, error) {
	cam, err := c.camera(t)
	if err != nil {
		return factoryCamera{}, nil, err
	}
	p := cam.Intrinsics.ModelParameters
	if len(p) < brownConradyParamCount {
		return factoryCamera{}, nil, fmt.Errorf("%s intrinsics: model %q has %d parameters, want %d",
			t, cam.Intrinsics.ModelType, len(p), brownConradyParamCount)
	}
	return cam, p, nil
}

// CameraMatrix returns the 3x3 intrinsic matrix in factory-sensor pixel
// units.
func (c *Calibration) CameraMatrix(t k4a.CalibrationType) ([][]float64, error) {
	cam, p, err := c.params(t)
	if err != nil {
		return nil, err
	}
	if cam.SensorWidth <= 0 || cam.SensorHeight <= 0 {
		return nil, fmt.Errorf("%s intrinsics: factory record has no sensor geometry", t)
	}
	w, h := float64(cam.SensorWidth), float64(cam.SensorHeight)
	cx, cy, fx, fy := p[0], p[1], p[2], p[3]
	return [][]float64{
		{fx * w, 0, cx * w},
		{0, fy * h, cy * h},
		{0, 0, 1},
	}, nil
}

// DistortionCoefficients returns the Brown-Conrady coefficients in the
// SDK's order: k1 k2 p1 p2 k3 k4 k5 k6.
func (c *Calibration) DistortionCoefficients(t k4a.CalibrationType) ([]float64, error) {
	_, p, err := c.params(t)
	if err != nil {
		return nil, err
	}
	return []float64{p[4], p[5], p[13], p[12], p[6], p[7], p[8], p[9]}, nil
}

// Extrinsics returns the rigid transform between the two sensor
// frames. The factory blob stores the color camera's pose in the depth
// camera's frame; the opposite direction is its inverse. Translation is
// in meters, as recorded.
func (c *Calibration) Extrinsics(from, to k4a.CalibrationType) (k4a.Extrinsics, error) {
	if from == to {
		return k4a.Extrinsics{
			Rotation:    [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
			Translation: []float64{0, 0, 0},
		}, nil
	}

	cam, err := c.camera(k4a.CalibrationColor)
	if err != nil {
		return k4a.Extrinsics{}, err
	}
	if len(cam.Rt.Rotation) != 9 || len(cam.Rt.Translation) != 3 {
		return k4a.Extrinsics{}, fmt.Errorf("factory Rt has %d rotation and %d translation terms",
			len(cam.Rt.Rotation), len(cam.Rt.Translation))
	}

	depthToColor := k4a.Extrinsics{
		Rotation: [][]float64{
			cam.Rt.Rotation[0:3],
			cam.Rt.Rotation[3:6],
			cam.Rt.Rotation[6:9],
		},
		Translation: cam.Rt.Translation,
	}
	if from == k4a.CalibrationDepth {
		return depthToColor, nil
	}
	return invertExtrinsics(depthToColor), nil
}

// invertExtrinsics inverts a rigid transform: R' = R^T, t' = -R^T t.
func invertExtrinsics(e k4a.Extrinsics) k4a.Extrinsics {
	flat := make([]float64, 0, 9)
	for _, row := range e.Rotation {
		flat = append(flat, row...)
	}
	r := mat.NewDense(3, 3, flat)

	var rInv mat.Dense
	rInv.CloneFrom(r.T())

	t := mat.NewVecDense(3, append([]float64(nil), e.Translation...))
	var tInv mat.VecDense
	tInv.MulVec(&rInv, t)
	tInv.ScaleVec(-1, &tInv)

	return k4a.Extrinsics{
		Rotation: [][]float64{
			{rInv.At(0, 0), rInv.At(0, 1), rInv.At(0, 2)},
			{rInv.At(1, 0), rInv.At(1, 1), rInv.At(1, 2)},
			{rInv.At(2, 0), rInv.At(2, 1), rInv.At(2, 2)},
		},
		Translation: []float64{tInv.AtVec(0), tInv.AtVec(1), tInv.AtVec(2)},
	}
}
