// Package k4a describes the read surface of a recorded Azure Kinect
// capture. It deliberately contains no container parsing: concrete
// bindings (see the mkvtool package) implement the interfaces declared
// here, and everything above them works purely in these terms.
package k4a

import "strconv"

// Enum maps a device-mode wire code to the SDK's symbolic name.
type Enum map[int64]string

// Name returns the symbolic name for code.
func (e Enum) Name(code int64) (string, bool) {
	name, ok := e[code]
	return name, ok
}

// Has reports whether name is one of the enum's symbolic names.
func (e Enum) Has(name string) bool {
	for _, n := range e {
		if n == name {
			return true
		}
	}
	return false
}

// Mode enums, codes and names as defined by the Azure Kinect SDK.
var (
	ImageFormats = Enum{
		0: "COLOR_MJPG",
		1: "COLOR_NV12",
		2: "COLOR_YUY2",
		3: "COLOR_BGRA32",
		4: "DEPTH16",
		5: "IR16",
		6: "CUSTOM8",
		7: "CUSTOM16",
		8: "CUSTOM",
	}

	ColorResolutions = Enum{
		0: "OFF",
		1: "RES_720P",
		2: "RES_1080P",
		3: "RES_1440P",
		4: "RES_1536P",
		5: "RES_2160P",
		6: "RES_3072P",
	}

	DepthModes = Enum{
		0: "OFF",
		1: "NFOV_2X2BINNED",
		2: "NFOV_UNBINNED",
		3: "WFOV_2X2BINNED",
		4: "WFOV_UNBINNED",
		5: "PASSIVE_IR",
	}

	FrameRates = Enum{
		0: "FPS_5",
		1: "FPS_15",
		2: "FPS_30",
	}

	WiredSyncModes = Enum{
		0: "STANDALONE",
		1: "MASTER",
		2: "SUBORDINATE",
	}
)

// Raw is a configuration value as surfaced by a playback binding.
// Bindings differ in fidelity: some decode values to symbolic names,
// some only carry the integer code found in the container, and some can
// do no better than free text. At most one of the three forms is set.
type Raw struct {
	Name    string
	Code    int64
	HasCode bool
	Text    string
}

// Symbol wraps an already-decoded symbolic name.
func Symbol(name string) Raw { return Raw{Name: name} }

// Code wraps an integer wire code.
func Code(code int64) Raw { return Raw{Code: code, HasCode: true} }

// Text wraps a value the binding could not decode.
func Text(s string) Raw { return Raw{Text: s} }

// IsZero reports whether no form of the value was set at all.
func (r Raw) IsZero() bool {
	return r.Name == "" && !r.HasCode && r.Text == ""
}

// String returns the value's displayable form.
func (r Raw) String() string {
	switch {
	case r.Name != "":
		return r.Name
	case r.HasCode:
		return strconv.FormatInt(r.Code, 10)
	default:
		return r.Text
	}
}
