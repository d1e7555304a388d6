package mkvtool

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recolude/kinect-recordings/k4a"
)

// Trimmed mkvmerge -J output for a standard three-track recording.
const identifyFixture = `{
  "container": {
    "properties": {"duration": 9966766000}
  },
  "tracks": [
    {"id": 0, "type": "video", "properties": {"track_name": "COLOR", "default_duration": 33333333}},
    {"id": 1, "type": "video", "properties": {"track_name": "DEPTH", "default_duration": 33333333}},
    {"id": 2, "type": "video", "properties": {"track_name": "IR", "default_duration": 33333333}}
  ],
  "attachments": [
    {"id": 1, "file_name": "calibration.json", "content_type": "application/octet-stream"}
  ]
}`

func decodeIdentify(t *testing.T) identifyOutput {
	t.Helper()
	var id identifyOutput
	require.NoError(t, json.Unmarshal([]byte(identifyFixture), &id))
	return id
}

func TestTrackFlags(t *testing.T) {
	flags := trackFlags(decodeIdentify(t))
	assert.Equal(t, map[k4a.Track]bool{
		k4a.TrackColor: true,
		k4a.TrackDepth: true,
		k4a.TrackIR:    true,
		k4a.TrackIMU:   false,
	}, flags)
}

func TestFrameRate(t *testing.T) {
	assert.Equal(t, k4a.Symbol("FPS_30"), frameRate(decodeIdentify(t)))

	cases := []struct {
		defaultDuration int64
		want            k4a.Raw
	}{
		{66666666, k4a.Symbol("FPS_15")},
		{200000000, k4a.Symbol("FPS_5")},
		{41666666, k4a.Text("24")},
	}
	for _, c := range cases {
		id := decodeIdentify(t)
		for i := range id.Tracks {
			id.Tracks[i].Properties.DefaultDuration = c.defaultDuration
		}
		assert.Equal(t, c.want, frameRate(id), "default duration %d", c.defaultDuration)
	}

	// No video track at all.
	id := decodeIdentify(t)
	id.Tracks = nil
	assert.True(t, frameRate(id).IsZero())
}

func TestParseColorMode(t *testing.T) {
	format, res := parseColorMode("MJPG_1080P")
	assert.Equal(t, k4a.Symbol("COLOR_MJPG"), format)
	assert.Equal(t, k4a.Symbol("RES_1080P"), res)

	format, res = parseColorMode("NV12_720P")
	assert.Equal(t, k4a.Symbol("COLOR_NV12"), format)
	assert.Equal(t, k4a.Symbol("RES_720P"), res)

	format, res = parseColorMode("OFF")
	assert.True(t, format.IsZero())
	assert.Equal(t, k4a.Symbol("OFF"), res)

	format, res = parseColorMode("")
	assert.True(t, format.IsZero())
	assert.True(t, res.IsZero())

	// Unknown shapes degrade to text instead of failing.
	format, res = parseColorMode("RAW_9000P")
	assert.Equal(t, k4a.Text("RAW"), format)
	assert.Equal(t, k4a.Text("9000P"), res)
}

const tagsFixture = `<?xml version="1.0"?>
<Tags>
  <Tag>
    <Simple><Name>K4A_COLOR_MODE</Name><String>MJPG_1080P</String></Simple>
    <Simple><Name>K4A_DEPTH_MODE</Name><String>NFOV_UNBINNED</String></Simple>
    <Simple><Name>K4A_WIRED_SYNC_MODE</Name><String>STANDALONE</String></Simple>
    <Simple><Name>K4A_DEVICE_SERIAL_NUMBER</Name><String>000123456789</String></Simple>
    <Simple><Name>K4A_DEPTH_DELAY_NS</Name><String>-160000</String></Simple>
  </Tag>
</Tags>`

func TestParseTags(t *testing.T) {
	tags, err := parseTags([]byte(tagsFixture))
	require.NoError(t, err)
	assert.Equal(t, "MJPG_1080P", tags["K4A_COLOR_MODE"])
	assert.Equal(t, "NFOV_UNBINNED", tags["K4A_DEPTH_MODE"])
	assert.Len(t, tags, 5)
}

func TestConfigurationFromTags(t *testing.T) {
	tags, err := parseTags([]byte(tagsFixture))
	require.NoError(t, err)

	cfg := configurationFromTags(tags, decodeIdentify(t))
	require.NotNil(t, cfg)
	assert.Equal(t, k4a.Symbol("COLOR_MJPG"), cfg.ColorFormat)
	assert.Equal(t, k4a.Symbol("RES_1080P"), cfg.ColorResolution)
	assert.Equal(t, k4a.Symbol("NFOV_UNBINNED"), cfg.DepthMode)
	assert.Equal(t, k4a.Symbol("FPS_30"), cfg.CameraFPS)
	assert.Equal(t, k4a.Symbol("STANDALONE"), cfg.WiredSyncMode)
	assert.Equal(t, "000123456789", cfg.Extra["device_serial_number"])
	assert.Equal(t, int64(-160), cfg.Extra["depth_delay_off_color_usec"])
}

func TestConfigurationFromTagsWithoutRecorderTags(t *testing.T) {
	tags := map[string]string{"TITLE": "holiday video"}
	assert.Nil(t, configurationFromTags(tags, decodeIdentify(t)))
}
