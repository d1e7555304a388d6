package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/recolude/kinect-recordings/mkvmeta"
	"github.com/recolude/kinect-recordings/mkvtool"
)

func main() {
	app := &cli.App{
		Name:      "k4ameta",
		Usage:     "Dumps Azure Kinect capture (.mkv) metadata to JSON",
		ArgsUsage: "<capture.mkv>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output .json path (default: capture path with the extension replaced by .json)",
			},
			&cli.BoolFlag{
				Name:  "no-stdout",
				Usage: "don't print the JSON document; only write the file",
			},
		},
		Action: dump,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dump(c *cli.Context) error {
	capture := c.Args().First()
	if capture == "" {
		return fmt.Errorf("missing capture file argument")
	}

	outPath := c.String("out")
	if outPath == "" {
		outPath = strings.TrimSuffix(capture, filepath.Ext(capture)) + ".json"
	}

	pb, err := mkvtool.Open(capture)
	if err != nil {
		return err
	}

	doc := mkvmeta.Build(pb, capture, time.Now())
	if err := pb.Close(); err != nil {
		return err
	}

	buf, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	buf = append(buf, '\n')

	if err := os.WriteFile(outPath, buf, 0o644); err != nil {
		return err
	}

	if !c.Bool("no-stdout") {
		fmt.Printf("wrote_json: %s\n", outPath)
		os.Stdout.Write(buf)
	}
	return nil
}
