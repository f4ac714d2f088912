package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/photonlab/go-optical-bench/pkg/core"
	"github.com/photonlab/go-optical-bench/pkg/scene"
	"github.com/photonlab/go-optical-bench/pkg/sensor"
	"github.com/photonlab/go-optical-bench/pkg/tracer"
	"github.com/photonlab/go-optical-bench/pkg/viz"
	"github.com/photonlab/go-optical-bench/web/server"
)

func main() {
	// Parse command line flags
	benchID := flag.String("bench", "spectrometer", "Bench preset to trace")
	modeName := flag.String("mode", "demosaiced", "Sensor readout: 'grayscale', 'bayer' or 'demosaiced'")
	rayCount := flag.Int("rays", 0, "Seed ray count override (0 keeps the preset default)")
	gridSize := flag.Int("size", scene.DefaultGridSize, "Detector pixels per side")
	imagePath := flag.String("image", "", "Object image for the camera bench (PNG or JPEG)")
	outDir := flag.String("out", "output", "Output directory")
	serve := flag.Bool("serve", false, "Start the web server instead of tracing")
	port := flag.Int("port", 8080, "Web server port (with -serve)")
	list := flag.Bool("list", false, "List available benches")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Optical Bench Tracer")
		fmt.Println("Usage: optical-bench [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Output will be saved to <out>/<bench>/layout_<timestamp>.png")
		fmt.Println("and <out>/<bench>/sensor_<timestamp>.png for benches with a detector.")
		return
	}

	if *list {
		fmt.Println("Available benches:")
		for _, info := range scene.List() {
			fmt.Printf("  %-20s %s\n", info.ID, info.Description)
		}
		return
	}

	if *serve {
		if err := server.NewServer(*port).Start(); err != nil {
			fmt.Printf("Error starting server: %v\n", err)
			os.Exit(1)
		}
		return
	}

	bench, err := scene.New(*benchID, scene.Options{GridSize: *gridSize, ImagePath: *imagePath})
	if err != nil {
		fmt.Printf("Error creating bench: %v\n", err)
		os.Exit(1)
	}
	if *rayCount > 0 && bench.Source.Kind != tracer.PatternObjectGrid {
		bench.Source.Count = *rayCount
	}

	logger := core.NewDefaultLogger()

	fmt.Printf("Tracing bench %q...\n", bench.Name)
	startTime := time.Now()
	result, acc, err := bench.Run(logger)
	traceTime := time.Since(startTime)
	if err != nil {
		fmt.Printf("Error tracing bench: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Trace completed in %v\n", traceTime)
	fmt.Printf("Paths traced: %d\n", len(result.Polylines))
	fmt.Printf("Detector hits: %d\n", result.DetectorHits)

	// Collimation diagnostic for benches without a detector
	if bench.Detector == nil {
		quality := tracer.CollimationQuality(result.FinalRays, bench.Source.Direction)
		if !math.IsNaN(quality) {
			fmt.Printf("Collimation quality (angular variance): %.3e rad^2\n", quality)
		}
	}

	// Create output directory for this bench
	outputDir := filepath.Join(*outDir, bench.Name)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	timestamp := time.Now().Format("20060102_150405")

	layoutFile := filepath.Join(outputDir, fmt.Sprintf("layout_%s.png", timestamp))
	if err := viz.SaveLayoutPNG(layoutFile, result, bench.Elements, viz.DefaultConfig()); err != nil {
		fmt.Printf("Error saving layout PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Layout saved as %s\n", layoutFile)

	if acc != nil {
		sensorFile := filepath.Join(outputDir, fmt.Sprintf("sensor_%s.png", timestamp))
		if err := savePNG(sensorFile, acc.Image(sensor.ParseMode(*modeName))); err != nil {
			fmt.Printf("Error saving sensor PNG: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Sensor readout saved as %s\n", sensorFile)
	}
}

func savePNG(filename string, img *image.RGBA) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}
