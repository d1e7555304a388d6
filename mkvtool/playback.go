// Package mkvtool reads Azure Kinect capture metadata by delegating
// container parsing to the MKVToolNix executables. mkvmerge identifies
// the container, mkvextract pulls the recorder's tag block and the
// factory calibration attachment; this package only interprets their
// output. Opening the capture is the one fatal step, everything
// recovered afterwards is best effort.
package mkvtool

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/recolude/kinect-recordings/k4a"
)

var errInstallHint = errors.New("executable not found, install with: sudo apt install -y mkvtoolnix")

// Playback implements k4a.Playback for a capture identified through
// MKVToolNix. All container state is read during Open; Close has
// nothing left to release.
type Playback struct {
	path string

	cfg    *k4a.Configuration
	cfgErr error

	calib    *Calibration
	calibErr error

	tracks map[k4a.Track]bool

	durationUsec int64
	hasDuration  bool
}

var (
	_ k4a.Playback        = (*Playback)(nil)
	_ k4a.LastTimestamper = (*Playback)(nil)
)

// Open identifies the capture container. It fails only when the
// container itself cannot be read; missing tags or a missing
// calibration attachment surface later, per field.
func Open(path string) (*Playback, error) {
	out, err := exec.Command("mkvmerge", "-J", path).Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			err = errInstallHint
		}
		return nil, fmt.Errorf("identifying %s using mkvmerge: %w", path, err)
	}

	var id identifyOutput
	if err := json.Unmarshal(out, &id); err != nil {
		return nil, fmt.Errorf("parsing mkvmerge output for %s: %w", path, err)
	}

	pb := &Playback{
		path:   path,
		tracks: trackFlags(id),
	}
	if d := id.Container.Properties.Duration; d > 0 {
		pb.durationUsec = d / 1000
		pb.hasDuration = true
	}

	if raw, err := extractFile(path, "tags"); err != nil {
		pb.cfgErr = err
	} else if tags, err := parseTags(raw); err != nil {
		pb.cfgErr = fmt.Errorf("parsing container tags: %w", err)
	} else {
		pb.cfg = configurationFromTags(tags, id)
	}

	pb.readCalibration(id)

	return pb, nil
}

func (p *Playback) readCalibration(id identifyOutput) {
	attachment := -1
	for _, a := range id.Attachments {
		if a.FileName == "calibration.json" {
			attachment = a.ID
			break
		}
	}
	if attachment < 0 {
		// The recorder wrote no calibration; not an error.
		return
	}

	raw, err := extractFile(p.path, "attachments", strconv.Itoa(attachment))
	if err != nil {
		p.calibErr = err
		return
	}
	p.calib, p.calibErr = parseFactoryCalibration(raw)
}

// extractFile runs one mkvextract mode against the capture, routed
// through a scratch directory that is removed before returning. For
// "attachments" mode arg is the attachment ID.
func extractFile(path, mode string, arg ...string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "k4ameta")
	if err != nil {
		return nil, fmt.Errorf("making temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	dst := filepath.Join(dir, "extracted")
	spec := dst
	if len(arg) > 0 {
		spec = arg[0] + ":" + dst
	}
	if out, err := exec.Command("mkvextract", path, mode, spec).CombinedOutput(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			err = errInstallHint
		}
		return nil, fmt.Errorf("extracting %s using mkvextract: %v (%s)", mode, err, firstLine(out))
	}
	raw, err := os.ReadFile(dst)
	if err != nil {
		return nil, fmt.Errorf("reading extracted %s: %w", mode, err)
	}
	return raw, nil
}

func firstLine(out []byte) string {
	for i, b := range out {
		if b == '\n' {
			return string(out[:i])
		}
	}
	return string(out)
}

func (p *Playback) Configuration() (*k4a.Configuration, error) {
	return p.cfg, p.cfgErr
}

func (p *Playback) Calibration() (k4a.Calibration, error) {
	if p.calibErr != nil {
		return nil, p.calibErr
	}
	if p.calib == nil {
		return nil, nil
	}
	return p.calib, nil
}

func (p *Playback) Tracks() map[k4a.Track]bool {
	return p.tracks
}

// LastTimestampUsec reports the container duration as the capture's
// last timestamp.
func (p *Playback) LastTimestampUsec() (int64, error) {
	if !p.hasDuration {
		return 0, errors.New("container reports no duration")
	}
	return p.durationUsec, nil
}

func (p *Playback) Close() error {
	return nil
}
