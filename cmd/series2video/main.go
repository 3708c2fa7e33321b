package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/ivlev/series2video/internal/chart"
	"github.com/ivlev/series2video/internal/config"
	"github.com/ivlev/series2video/internal/engine"
	"github.com/ivlev/series2video/internal/speech"
	"github.com/ivlev/series2video/internal/system"
	"github.com/ivlev/series2video/internal/timeseries"
)

func main() {
	configPtr := flag.String("config", "", "Path to YAML config (empty: built-in defaults)")
	dataPtr := flag.String("data", "", "Path to CSV data file x,y (empty: demo random-walk series)")
	chartPtr := flag.String("chart", "line", "Chart kind: line, bar, scatter")
	titlePtr := flag.String("title", "Economic Growth Analysis", "Title text")
	descPtr := flag.String("description", "2000-2020 GDP Trends", "Description line on the title card")
	narrationPtr := flag.String("narration", "", "Voiceover text (empty: no voice track)")
	musicPtr := flag.String("music", "", "Background music file (empty: newest file in input/music/, if any)")
	sourceURLPtr := flag.String("source-url", "", "Data source URL rendered as a QR code on the title card")
	outputPtr := flag.String("output", "output", "Output directory")
	workersPtr := flag.Int("workers", 0, "Render workers (0: derive from the machine)")
	ttsPtr := flag.String("tts-url", "", "TTS server base URL (overrides config)")
	titleDurPtr := flag.Float64("title-duration", 3, "Title card duration in seconds")
	statsPtr := flag.Bool("stats", false, "Print a performance report")
	flag.Parse()

	cfg, err := config.Load(*configPtr)
	if err != nil {
		log.Fatalf("[-] Config error: %v", err)
	}
	if *workersPtr > 0 {
		cfg.Workers = *workersPtr
	}
	if *ttsPtr != "" {
		cfg.TTSURL = *ttsPtr
	}

	kind, err := chart.ParseKind(*chartPtr)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}

	series, err := loadSeries(*dataPtr)
	if err != nil {
		log.Fatalf("[-] Data error: %v", err)
	}

	musicPath := *musicPtr
	if musicPath == "" {
		if latest, err := system.FindLatestAudio("input/music"); err == nil {
			musicPath = latest
			fmt.Printf("[*] Using music: %s\n", musicPath)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	project := &engine.Project{
		Config:       cfg,
		Series:       series,
		ChartKind:    kind,
		Title:        *titlePtr,
		Description:  *descPtr,
		Narration:    *narrationPtr,
		SourceURL:    *sourceURLPtr,
		MusicPath:    musicPath,
		OutputDir:    *outputPtr,
		TitleSeconds: *titleDurPtr,
		Synth:        speech.NewClient(cfg.TTSURL),
		ShowStats:    *statsPtr,
	}

	finalPath, err := project.Run(ctx)
	if err != nil {
		log.Fatalf("[-] Error generating video: %v", err)
	}

	fmt.Printf("[+++] Video successfully created: %s\n", finalPath)
}

// loadSeries reads the CSV input, or fabricates the demo series (a gentle
// upward random walk over 2000-2020) when no data file is given.
func loadSeries(path string) (timeseries.Series, error) {
	if path != "" {
		return timeseries.LoadCSV(path)
	}

	fmt.Println("[*] No data file given, using demo series")
	points := make([]timeseries.Point, 0, 21)
	value := 50.0
	for year := 2000; year <= 2020; year++ {
		value += rand.Float64()*6 - 1
		points = append(points, timeseries.Point{X: float64(year), Y: value})
	}
	return timeseries.New(points)
}
