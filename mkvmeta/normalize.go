// Package mkvmeta turns the records a k4a playback binding exposes into
// a single JSON document. Every query below the initial open is best
// effort: a capability the binding lacks degrades one field of the
// document, never the dump itself.
package mkvmeta

import "github.com/recolude/kinect-recordings/k4a"

// EnumName normalizes a raw configuration value to a symbolic name.
// Three tiers, in order: a name the binding already decoded, the enum
// table keyed by integer code, and finally the value's displayable
// string form. The last tier means this never fails, it only loses
// precision.
func EnumName(table k4a.Enum, v k4a.Raw) string {
	if v.Name != "" {
		return v.Name
	}
	if v.HasCode {
		if name, ok := table.Name(v.Code); ok {
			return name
		}
	}
	return v.String()
}

// DecodeConfiguration normalizes every enum-valued configuration field
// and carries the passthrough fields along. Nil in, nil out: a capture
// without a configuration record stays null in the document.
func DecodeConfiguration(cfg *k4a.Configuration) map[string]any {
	if cfg == nil {
		return nil
	}
	fields := []struct {
		key   string
		table k4a.Enum
		value k4a.Raw
	}{
		{"color_format", k4a.ImageFormats, cfg.ColorFormat},
		{"color_resolution", k4a.ColorResolutions, cfg.ColorResolution},
		{"depth_mode", k4a.DepthModes, cfg.DepthMode},
		{"camera_fps", k4a.FrameRates, cfg.CameraFPS},
		{"wired_sync_mode", k4a.WiredSyncModes, cfg.WiredSyncMode},
	}

	out := map[string]any{}
	for _, f := range fields {
		if f.value.IsZero() {
			// The binding never recovered this field at all.
			continue
		}
		out[f.key] = EnumName(f.table, f.value)
	}
	for k, v := range cfg.Extra {
		out[k] = v
	}
	return out
}
