package mkvmeta

import (
	"time"

	"github.com/recolude/kinect-recordings/k4a"
)

// Document is the metadata dump for one capture file. Field values are
// already concrete JSON-marshalable types by the time they land here;
// queries that failed sit in their field as a FieldError.
type Document struct {
	File              string             `json:"file"`
	GeneratedAtUTC    string             `json:"generated_at_utc"`
	Configuration     any                `json:"configuration"`
	Tracks            map[k4a.Track]bool `json:"tracks"`
	LastTimestampUsec any                `json:"last_timestamp_usec"`
	Calibration       any                `json:"calibration"`
}

// Build assembles the document for an opened capture. Only the open
// itself can fail; from here on every query degrades to an in-document
// error object, so Build always returns a complete document.
func Build(pb k4a.Playback, file string, now time.Time) Document {
	tracks := pb.Tracks()
	if tracks == nil {
		// The section is always an object, even for a binding that
		// cannot detect any track.
		tracks = map[k4a.Track]bool{}
	}

	calibration := map[string]any{}
	doc := Document{
		File:           file,
		GeneratedAtUTC: now.UTC().Format(time.RFC3339Nano),
		Tracks:         tracks,
		Calibration:    calibration,
	}

	var cfg map[string]any
	if rec, err := pb.Configuration(); err != nil {
		doc.Configuration = FieldError{Error: err.Error()}
	} else {
		cfg = DecodeConfiguration(rec)
		doc.Configuration = cfg
	}

	if lt, ok := pb.(k4a.LastTimestamper); ok {
		doc.LastTimestampUsec = Try(lt.LastTimestampUsec)
	}

	calib, err := pb.Calibration()
	if err != nil {
		doc.Calibration = FieldError{Error: err.Error()}
		return doc
	}
	if calib == nil {
		// The container carries no calibration record; the section
		// stays an empty object.
		return doc
	}

	for _, target := range []k4a.CalibrationType{k4a.CalibrationColor, k4a.CalibrationDepth} {
		t := target
		calibration[t.String()] = map[string]any{
			"image_size": SizeOf(calib, t, cfg),
			"camera_matrix": Try(func() ([][]float64, error) {
				return calib.CameraMatrix(t)
			}),
			"distortion": Try(func() ([]float64, error) {
				return calib.DistortionCoefficients(t)
			}),
		}
	}

	if ep, ok := calib.(k4a.ExtrinsicsProvider); ok {
		calibration["extrinsics_depth_to_color"] = Try(func() (k4a.Extrinsics, error) {
			return ep.Extrinsics(k4a.CalibrationDepth, k4a.CalibrationColor)
		})
		calibration["extrinsics_color_to_depth"] = Try(func() (k4a.Extrinsics, error) {
			return ep.Extrinsics(k4a.CalibrationColor, k4a.CalibrationDepth)
		})
	}

	return doc
}
