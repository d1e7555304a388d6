package mkvmeta

import "github.com/recolude/kinect-recordings/k4a"

// UnknownSize is reported when no source can answer a target's pixel
// geometry. An explicit sentinel keeps the field present in the
// document.
const UnknownSize = "(unknown)"

// SizeOf resolves a calibration target's pixel geometry, most
// trustworthy source first:
//
//  1. the binding's live answer, when it has the ImageSizer capability
//  2. raw resolution fields on the target's calibration record, when
//     both width and height are present
//  3. the nominal size table for the configuration's decoded mode name
//
// Failures at any tier fall through to the next; when all three come up
// empty the size is the UnknownSize sentinel. The result is either a
// [2]int pair or that sentinel string.
func SizeOf(calib k4a.Calibration, target k4a.CalibrationType, cfg map[string]any) any {
	if calib != nil {
		if sizer, ok := calib.(k4a.ImageSizer); ok {
			if s, err := sizer.ImageSize(target); err == nil {
				return [2]int{s.Width, s.Height}
			}
		}

		if cam, err := calib.Camera(target); err == nil {
			if cam.ResolutionWidth != nil && cam.ResolutionHeight != nil {
				return [2]int{*cam.ResolutionWidth, *cam.ResolutionHeight}
			}
		}
	}

	if s, ok := nominalSize(target, cfg); ok {
		return [2]int{s.Width, s.Height}
	}
	return UnknownSize
}

func nominalSize(target k4a.CalibrationType, cfg map[string]any) (k4a.ImageSize, bool) {
	key := "color_resolution"
	lookup := k4a.NominalColorSize
	if target == k4a.CalibrationDepth {
		key = "depth_mode"
		lookup = k4a.NominalDepthSize
	}
	name, ok := cfg[key].(string)
	if !ok {
		return k4a.ImageSize{}, false
	}
	return lookup(name)
}
