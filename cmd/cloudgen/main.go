package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/EliCDavis/vector/vector3"
	"github.com/urfave/cli/v2"

	"github.com/recolude/kinect-recordings/cloud"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "cloudgen",
		Usage: "Generates a random demonstration point cloud",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "points",
				Value: 1000,
				Usage: "number of points to generate",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "random seed (default: current time)",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Value:   "cloud.ply",
				Usage:   "output path; format chosen by extension (.ply, .pcd, .rap)",
			},
		},
		Action: generate,
	}
}

func generate(c *cli.Context) error {
	seed := c.Int64("seed")
	if !c.IsSet("seed") {
		seed = time.Now().UnixNano()
	}

	mesh := cloud.Uniform(c.Int("points"), seed, vector3.New(0.1, 0.7, 0.9))

	f, err := os.Create(c.String("out"))
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(c.String("out"))) {
	case ".pcd":
		return cloud.WritePCD(f, mesh)
	case ".rap":
		return cloud.WriteRecording(f, mesh)
	default:
		return cloud.WritePLY(f, mesh)
	}
}
