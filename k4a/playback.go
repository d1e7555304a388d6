package k4a

// CalibrationType identifies the sensor a calibration query targets.
type CalibrationType int

const (
	CalibrationColor CalibrationType = iota
	CalibrationDepth
)

func (t CalibrationType) String() string {
	if t == CalibrationDepth {
		return "depth"
	}
	return "color"
}

// Track identifies a recorded stream.
type Track string

const (
	TrackColor Track = "color"
	TrackDepth Track = "depth"
	TrackIR    Track = "ir"
	TrackIMU   Track = "imu"
)

// Configuration is the device configuration a capture was recorded
// with. The enum-valued fields keep whatever representation the binding
// could recover; Extra carries binding-specific passthrough fields
// (serial number, firmware versions, delay offsets).
type Configuration struct {
	ColorFormat     Raw
	ColorResolution Raw
	DepthMode       Raw
	CameraFPS       Raw
	WiredSyncMode   Raw

	Extra map[string]any
}

// Camera holds the raw per-sensor calibration fields a binding exposes.
// A binding that does not know the recorded mode's geometry leaves the
// resolution fields nil rather than guessing.
type Camera struct {
	ResolutionWidth  *int
	ResolutionHeight *int
}

// Extrinsics is the rigid transform from one sensor's frame to
// another's. Rotation is 3x3 row-major; translation units are the
// binding's (the SDK uses millimeters, factory calibration meters).
type Extrinsics struct {
	Rotation    [][]float64 `json:"rotation"`
	Translation []float64   `json:"translation"`
}

// Calibration answers per-sensor calibration queries. Every method may
// fail independently; callers are expected to degrade per field.
type Calibration interface {
	Camera(t CalibrationType) (Camera, error)
	CameraMatrix(t CalibrationType) ([][]float64, error)
	DistortionCoefficients(t CalibrationType) ([]float64, error)
}

// ImageSizer is an optional Calibration capability: the binding can
// report the recorded pixel geometry of a target directly.
type ImageSizer interface {
	ImageSize(t CalibrationType) (ImageSize, error)
}

// ExtrinsicsProvider is an optional Calibration capability.
type ExtrinsicsProvider interface {
	Extrinsics(from, to CalibrationType) (Extrinsics, error)
}

// Playback is an opened capture container.
//
// Configuration and Calibration return nil with no error when the
// container simply does not carry the record; Tracks omits streams the
// binding cannot detect.
type Playback interface {
	Configuration() (*Configuration, error)
	Calibration() (Calibration, error)
	Tracks() map[Track]bool
	Close() error
}

// LastTimestamper is an optional Playback capability: the binding knows
// the capture's last timestamp, in microseconds.
type LastTimestamper interface {
	LastTimestampUsec() (int64, error)
}
