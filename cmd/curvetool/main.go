// curvetool is a reference playback driver for curve documents: it loads
// HCL/JSON/YAML files, samples every curve over a time range, reports the
// events crossed along the way, and can convert documents between formats.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fogleman/ease"

	"github.com/kboxsoft/animcurve/pkg/clip"
	"github.com/kboxsoft/animcurve/pkg/codec"
	"github.com/kboxsoft/animcurve/pkg/curve"
)

var easings = map[string]func(float64) float64{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
}

func easingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	var (
		path        string
		from        float64
		to          float64
		step        float64
		easeName    string
		displayJSON bool
		outPath     string
	)

	flag.StringVar(&path, "path", "", "Path to a curve document or a directory of them (required)")
	flag.Float64Var(&from, "from", math.NaN(), "Start of the sampling range (default: first keyframe)")
	flag.Float64Var(&to, "to", math.NaN(), "End of the sampling range (default: last keyframe)")
	flag.Float64Var(&step, "step", 0.1, "Sampling step")
	flag.StringVar(&easeName, "ease", "", "Ease playback time: "+strings.Join(easingNames(), ", "))
	flag.BoolVar(&displayJSON, "json", false, "Display samples as JSON")
	flag.StringVar(&outPath, "out", "", "Re-save the loaded document to this file (.json or .yaml)")
	flag.Parse()

	if path == "" {
		logger.Error("Path parameter is required")
		flag.Usage()
		os.Exit(1)
	}
	if step <= 0 {
		logger.Error("Step must be positive", "step", step)
		os.Exit(1)
	}

	var easer func(float64) float64
	if easeName != "" {
		var ok bool
		easer, ok = easings[easeName]
		if !ok {
			logger.Error("Unknown easing", "ease", easeName)
			os.Exit(1)
		}
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		logger.Error("Failed to access path", "error", err)
		os.Exit(1)
	}

	var files []string
	if fileInfo.IsDir() {
		logger.Info("Processing directory", "path", path)
		files, err = findCurveFiles(path)
		if err != nil {
			logger.Error("Failed to read directory", "error", err)
			os.Exit(1)
		}
		if len(files) == 0 {
			logger.Error("No curve documents found in directory")
			os.Exit(1)
		}
	} else {
		files = []string{path}
	}

	logger.Info("Found curve documents", "count", len(files))

	failed := false
	for _, file := range files {
		if err := processFile(file, logger, from, to, step, easer, displayJSON, outPath); err != nil {
			logger.Error("Failed to process document", "file", file, "error", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// findCurveFiles returns every curve document under dir.
func findCurveFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".hcl", ".json", ".yaml", ".yml":
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

func processFile(file string, logger *slog.Logger, from, to, step float64,
	easer func(float64) float64, displayJSON bool, outPath string) error {

	doc, err := codec.LoadFile(file)
	if err != nil {
		return err
	}

	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	cl, err := codec.ToClip(doc, name, logger)
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := codec.SaveFile(outPath, doc); err != nil {
			return err
		}
		logger.Info("Saved document", "file", outPath)
	}

	if math.IsNaN(from) {
		from = cl.BeginTime()
	}
	if math.IsNaN(to) {
		to = cl.EndTime()
	}
	if math.IsInf(from, 0) || math.IsInf(to, 0) || to < from {
		logger.Warn("Clip has no sampling range", "clip", name)
		return nil
	}

	logger.Info("Sampling clip", "clip", name,
		"attributes", len(cl.Attributes()), "from", from, "to", to, "step", step)

	type row struct {
		Time      float64 `json:"time"`
		Attribute string  `json:"attribute"`
		Kind      string  `json:"kind"`
		Value     any     `json:"value"`
	}
	var rows []row

	prev := from
	for t := from; t <= to+step/2; t += step {
		playTime := t
		if easer != nil && to > from {
			u := (t - from) / (to - from)
			playTime = from + easer(math.Min(u, 1))*(to-from)
		}

		cl.Apply(playTime, clip.ApplierFunc(func(attr string, v curve.Value) {
			if displayJSON {
				kind, raw, err := codec.EncodeValue(v)
				if err != nil {
					return
				}
				rows = append(rows, row{Time: playTime, Attribute: attr, Kind: kind, Value: raw})
				return
			}
			fmt.Printf("%8.3f  %-16s %s\n", playTime, attr, v)
		}))

		begin, end := prev, playTime
		if end < begin {
			begin, end = end, begin
		}
		cl.EmitEvents(begin, end, func(attr string, frame curve.EventFrame) {
			logger.Info("Event", "clip", name, "attribute", attr,
				"time", frame.Time, "id", frame.EventID, "data", frame.Data)
		})
		prev = playTime
	}

	if displayJSON {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	}
	return nil
}
