package mkvtool

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/recolude/kinect-recordings/k4a"
)

// identifyOutput is the subset of `mkvmerge -J` output this binding
// cares about. Durations are in nanoseconds.
type identifyOutput struct {
	Container struct {
		Properties struct {
			Duration int64 `json:"duration"`
		} `json:"properties"`
	} `json:"container"`
	Tracks []struct {
		ID         int    `json:"id"`
		Type       string `json:"type"`
		Properties struct {
			TrackName       string `json:"track_name"`
			DefaultDuration int64  `json:"default_duration"`
		} `json:"properties"`
	} `json:"tracks"`
	Attachments []struct {
		ID          int    `json:"id"`
		FileName    string `json:"file_name"`
		ContentType string `json:"content_type"`
	} `json:"attachments"`
}

// trackFlags maps the recorder's track names onto the four logical
// streams. All four flags are always present: this binding can tell a
// missing track from an unknown one.
func trackFlags(id identifyOutput) map[k4a.Track]bool {
	flags := map[k4a.Track]bool{
		k4a.TrackColor: false,
		k4a.TrackDepth: false,
		k4a.TrackIR:    false,
		k4a.TrackIMU:   false,
	}
	for _, t := range id.Tracks {
		switch t.Properties.TrackName {
		case "COLOR":
			flags[k4a.TrackColor] = true
		case "DEPTH":
			flags[k4a.TrackDepth] = true
		case "IR":
			flags[k4a.TrackIR] = true
		case "IMU":
			flags[k4a.TrackIMU] = true
		}
	}
	return flags
}

// frameRate derives the capture frame rate from the first video
// track's default frame duration.
func frameRate(id identifyOutput) k4a.Raw {
	for _, t := range id.Tracks {
		if t.Type != "video" || t.Properties.DefaultDuration <= 0 {
			continue
		}
		fps := int((1e9 + float64(t.Properties.DefaultDuration)/2) / float64(t.Properties.DefaultDuration))
		switch fps {
		case 5:
			return k4a.Symbol("FPS_5")
		case 15:
			return k4a.Symbol("FPS_15")
		case 30:
			return k4a.Symbol("FPS_30")
		}
		return k4a.Text(strconv.Itoa(fps))
	}
	return k4a.Raw{}
}

// parseColorMode splits the recorder's combined color-mode tag, e.g.
// "MJPG_1080P", into the SDK's image-format and color-resolution
// names. "OFF" means the color camera was disabled; anything the
// recorder did not write in a known shape degrades to free text.
func parseColorMode(mode string) (format, resolution k4a.Raw) {
	if mode == "" {
		return k4a.Raw{}, k4a.Raw{}
	}
	if mode == "OFF" {
		return k4a.Raw{}, k4a.Symbol("OFF")
	}

	fmtPart, resPart, found := strings.Cut(mode, "_")
	if !found {
		return k4a.Raw{}, k4a.Text(mode)
	}

	switch fmtPart {
	case "MJPG":
		format = k4a.Symbol("COLOR_MJPG")
	case "NV12":
		format = k4a.Symbol("COLOR_NV12")
	case "YUY2":
		format = k4a.Symbol("COLOR_YUY2")
	case "BGRA", "BGRA32":
		format = k4a.Symbol("COLOR_BGRA32")
	default:
		format = k4a.Text(fmtPart)
	}

	if k4a.ColorResolutions.Has("RES_" + resPart) {
		resolution = k4a.Symbol("RES_" + resPart)
	} else {
		resolution = k4a.Text(resPart)
	}
	return format, resolution
}

// tagsXML is the shape of `mkvextract … tags` output.
type tagsXML struct {
	Tags []struct {
		Simple []struct {
			Name   string `xml:"Name"`
			String string `xml:"String"`
		} `xml:"Simple"`
	} `xml:"Tag"`
}

func parseTags(raw []byte) (map[string]string, error) {
	var doc tagsXML
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	tags := map[string]string{}
	for _, tag := range doc.Tags {
		for _, s := range tag.Simple {
			if s.Name != "" {
				tags[s.Name] = s.String
			}
		}
	}
	return tags, nil
}

// Recorder tags carried through to the configuration verbatim, with
// their SDK field names.
var passthroughTags = map[string]string{
	"K4A_DEVICE_SERIAL_NUMBER":   "device_serial_number",
	"K4A_COLOR_FIRMWARE_VERSION": "color_firmware_version",
	"K4A_DEPTH_FIRMWARE_VERSION": "depth_firmware_version",
}

// Recorder tags holding nanosecond delays, reported in microseconds as
// the SDK's configuration struct does.
var delayTags = map[string]string{
	"K4A_DEPTH_DELAY_NS":       "depth_delay_off_color_usec",
	"K4A_SUBORDINATE_DELAY_NS": "subordinate_delay_off_master_usec",
	"K4A_START_OFFSET_NS":      "start_timestamp_offset_usec",
}

// configurationFromTags rebuilds the device configuration from the
// recorder's container tags. A container with no recorder tags at all
// has no configuration record, which is distinct from one whose values
// could not be decoded.
func configurationFromTags(tags map[string]string, id identifyOutput) *k4a.Configuration {
	found := false
	for name := range tags {
		if strings.HasPrefix(name, "K4A_") {
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	cfg := &k4a.Configuration{
		CameraFPS: frameRate(id),
		Extra:     map[string]any{},
	}
	cfg.ColorFormat, cfg.ColorResolution = parseColorMode(tags["K4A_COLOR_MODE"])

	if v := tags["K4A_DEPTH_MODE"]; v != "" {
		if k4a.DepthModes.Has(v) {
			cfg.DepthMode = k4a.Symbol(v)
		} else {
			cfg.DepthMode = k4a.Text(v)
		}
	}
	if v := tags["K4A_WIRED_SYNC_MODE"]; v != "" {
		if k4a.WiredSyncModes.Has(v) {
			cfg.WiredSyncMode = k4a.Symbol(v)
		} else {
			cfg.WiredSyncMode = k4a.Text(v)
		}
	}

	for tag, field := range passthroughTags {
		if v, ok := tags[tag]; ok {
			cfg.Extra[field] = v
		}
	}
	for tag, field := range delayTags {
		v, ok := tags[tag]
		if !ok {
			continue
		}
		ns, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			cfg.Extra[field] = v
			continue
		}
		cfg.Extra[field] = ns / 1000
	}
	return cfg
}
