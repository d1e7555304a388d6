// Package cloud builds small demonstration point clouds and writes
// them in viewer-friendly formats.
package cloud

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"math/rand"

	"github.com/EliCDavis/polyform/formats/ply"
	"github.com/EliCDavis/polyform/modeling"
	"github.com/EliCDavis/vector/vector3"
	"github.com/recolude/rap/format"
	"github.com/recolude/rap/format/encoding"
	rapio "github.com/recolude/rap/format/io"
	"github.com/recolude/rap/format/metadata"
	"github.com/seqsense/pcgol/pc"
)

// Uniform returns n points drawn uniformly from [-1, 1]^3, all painted
// the same color.
func Uniform(n int, seed int64, color vector3.Float64) modeling.Mesh {
	rng := rand.New(rand.NewSource(seed))

	positionData := make([]vector3.Float64, 0, n)
	colorData := make([]vector3.Float64, 0, n)
	for i := 0; i < n; i++ {
		positionData = append(positionData, vector3.New(
			rng.Float64()*2-1,
			rng.Float64()*2-1,
			rng.Float64()*2-1,
		))
		colorData = append(colorData, color)
	}

	return modeling.NewPointCloud(
		map[string][]vector3.Vector[float64]{
			modeling.PositionAttribute: positionData,
			modeling.ColorAttribute:    colorData,
		},
		nil,
		nil,
		nil,
	)
}

// WritePLY writes the cloud as binary PLY.
func WritePLY(w io.Writer, cloud modeling.Mesh) error {
	return ply.WriteBinary(w, cloud)
}

// WritePCD writes the cloud in PCD binary form with x, y, z and a
// packed rgb field.
func WritePCD(w io.Writer, cloud modeling.Mesh) error {
	view := cloud.View()
	positions := view.Float3Data[modeling.PositionAttribute]
	colors := view.Float3Data[modeling.ColorAttribute]

	const stride = 16
	data := make([]byte, 0, len(positions)*stride)
	for i, p := range positions {
		var point [stride]byte
		binary.LittleEndian.PutUint32(point[0:], math.Float32bits(float32(p.X())))
		binary.LittleEndian.PutUint32(point[4:], math.Float32bits(float32(p.Y())))
		binary.LittleEndian.PutUint32(point[8:], math.Float32bits(float32(p.Z())))
		binary.LittleEndian.PutUint32(point[12:], packColor(colors[i]))
		data = append(data, point[:]...)
	}

	return pc.Marshal(&pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Version:   0.7,
			Fields:    []string{"x", "y", "z", "rgb"},
			Size:      []int{4, 4, 4, 4},
			Type:      []string{"F", "F", "F", "U"},
			Count:     []int{1, 1, 1, 1},
			Width:     len(positions),
			Height:    1,
			Viewpoint: []float32{0, 0, 0, 1, 0, 0, 0},
		},
		Points: len(positions),
		Data:   data,
	}, w)
}

func packColor(c vector3.Float64) uint32 {
	r := uint32(c.X() * 255)
	g := uint32(c.Y() * 255)
	b := uint32(c.Z() * 255)
	return r<<16 | g<<8 | b
}

// ToRapBinary packages the cloud as a PLY-encoded recording binary.
func ToRapBinary(cloud modeling.Mesh) (rapio.Binary, error) {
	count := len(cloud.View().Float3Data[modeling.PositionAttribute])

	buf := bytes.Buffer{}
	if err := ply.WriteBinary(&buf, cloud); err != nil {
		return rapio.Binary{}, err
	}

	return rapio.NewBinary("points.ply", buf.Bytes(), metadata.NewBlock(map[string]metadata.Property{
		"points": metadata.NewIntProperty(count),
	})), nil
}

// WriteRecording writes the cloud as a recording whose only content is
// the PLY binary.
func WriteRecording(w io.Writer, cloud modeling.Mesh) error {
	bin, err := ToRapBinary(cloud)
	if err != nil {
		return err
	}

	count := len(cloud.View().Float3Data[modeling.PositionAttribute])
	recording := format.NewRecording(
		"cloud",
		"Generated Cloud",
		[]format.CaptureCollection{},
		nil,
		metadata.NewBlock(map[string]metadata.Property{
			"points": metadata.NewIntProperty(count),
		}),
		[]format.Binary{bin},
		[]format.BinaryReference{},
	)

	rapWriter := rapio.NewWriter([]encoding.Encoder{}, true, w, rapio.BST16)
	_, err = rapWriter.Write(recording)
	return err
}
