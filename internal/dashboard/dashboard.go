// Package dashboard renders a live terminal UI for an in-flight load run.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/JackSam678/Stress/internal/metrics"
)

// TestConfig holds run parameters for display in the summary pane.
type TestConfig struct {
	TargetURL   string
	Concurrency int
	Total       int
	Rate        int
	Timeout     time.Duration
}

// Dashboard periodically snapshots the collector and redraws the UI. It only
// reads from the collector; all mutation stays with the workers.
type Dashboard struct {
	collector    *metrics.Collector
	ctx          context.Context
	cancel       context.CancelFunc
	shutdownFunc func()
	wg           sync.WaitGroup
	mu           sync.Mutex

	grid           *ui.Grid
	summaryPara    *widgets.Paragraph
	completionBar  *widgets.Gauge
	metricsPara    *widgets.Paragraph
	latencySparkle *widgets.SparklineGroup
	statusList     *widgets.List
	errorList      *widgets.List
	latencyHistory []float64
	startTime      time.Time
	testConfig     TestConfig
}

// New creates a Dashboard. The shutdown function is invoked when the user
// quits the UI mid-run.
func New(collector *metrics.Collector, cfg TestConfig, shutdownFunc func()) (*Dashboard, error) {
	if err := ui.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize termui: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	d := &Dashboard{
		collector:      collector,
		ctx:            ctx,
		cancel:         cancel,
		shutdownFunc:   shutdownFunc,
		latencyHistory: make([]float64, 0, 100),
		startTime:      time.Now(),
		testConfig:     cfg,
	}

	d.initWidgets()
	d.setupGrid()

	return d, nil
}

func (d *Dashboard) initWidgets() {
	d.summaryPara = widgets.NewParagraph()
	d.summaryPara.Title = "Run Summary"
	d.summaryPara.Text = "Initializing..."
	d.summaryPara.BorderStyle.Fg = ui.ColorCyan

	d.completionBar = widgets.NewGauge()
	d.completionBar.Title = "Completed"
	d.completionBar.Percent = 0
	d.completionBar.BarColor = ui.ColorBlue
	d.completionBar.BorderStyle.Fg = ui.ColorCyan
	d.completionBar.LabelStyle = ui.NewStyle(ui.ColorWhite)

	d.metricsPara = widgets.NewParagraph()
	d.metricsPara.Title = "Metrics"
	d.metricsPara.Text = "Waiting for data..."
	d.metricsPara.BorderStyle.Fg = ui.ColorCyan

	sparkline := widgets.NewSparkline()
	sparkline.Title = "Mean latency (ms)"
	sparkline.LineColor = ui.ColorGreen
	sparkline.Data = []float64{0}

	d.latencySparkle = widgets.NewSparklineGroup(sparkline)
	d.latencySparkle.Title = "Latency"
	d.latencySparkle.BorderStyle.Fg = ui.ColorCyan

	d.statusList = widgets.NewList()
	d.statusList.Title = "Status Codes"
	d.statusList.Rows = []string{"Awaiting data"}
	d.statusList.TextStyle = ui.NewStyle(ui.ColorCyan)
	d.statusList.BorderStyle.Fg = ui.ColorCyan

	d.errorList = widgets.NewList()
	d.errorList.Title = "Errors"
	d.errorList.Rows = []string{"No failures"}
	d.errorList.TextStyle = ui.NewStyle(ui.ColorYellow)
	d.errorList.BorderStyle.Fg = ui.ColorCyan
}

func (d *Dashboard) setupGrid() {
	termWidth, termHeight := ui.TerminalDimensions()

	d.grid = ui.NewGrid()
	d.grid.SetRect(0, 0, termWidth, termHeight)

	d.grid.Set(
		ui.NewRow(0.16,
			ui.NewCol(1.0, d.summaryPara),
		),
		ui.NewRow(0.16,
			ui.NewCol(1.0, d.completionBar),
		),
		ui.NewRow(0.34,
			ui.NewCol(0.5, d.metricsPara),
			ui.NewCol(0.5, d.latencySparkle),
		),
		ui.NewRow(0.34,
			ui.NewCol(0.5, d.statusList),
			ui.NewCol(0.5, d.errorList),
		),
	)
}

// Start begins the dashboard update loop.
func (d *Dashboard) Start() {
	d.wg.Add(1)
	go d.run()
}

// Stop stops the dashboard and restores the terminal.
func (d *Dashboard) Stop() {
	d.cancel()
	d.wg.Wait()
	ui.Close()
	// Give terminal time to restore
	time.Sleep(100 * time.Millisecond)
}

func (d *Dashboard) run() {
	defer d.wg.Done()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	uiEvents := ui.PollEvents()

	d.render()

	for {
		select {
		case <-d.ctx.Done():
			for len(uiEvents) > 0 {
				<-uiEvents
			}
			return
		case e := <-uiEvents:
			select {
			case <-d.ctx.Done():
				return
			default:
			}

			switch e.ID {
			case "q", "<C-c>":
				if d.shutdownFunc != nil {
					d.shutdownFunc()
				}
				// Wait for Stop() to cancel the context
			case "<Resize>":
				payload := e.Payload.(ui.Resize)
				d.grid.SetRect(0, 0, payload.Width, payload.Height)
				ui.Clear()
				d.render()
			}
		case <-ticker.C:
			d.update()
			d.render()
		}
	}
}

func (d *Dashboard) update() {
	d.mu.Lock()
	defer d.mu.Unlock()

	elapsed := time.Since(d.startTime)
	stats := d.collector.Stats(elapsed)
	target := d.collector.Target()

	percent := 0
	if target > 0 {
		percent = int(float64(stats.Total) / float64(target) * 100)
	}
	if percent > 100 {
		percent = 100
	}
	d.completionBar.Percent = percent
	d.completionBar.Label = fmt.Sprintf("%d/%d", stats.Total, target)

	if stats.MeanLatency > 0 {
		d.latencyHistory = append(d.latencyHistory, stats.MeanLatencyMs)
		if len(d.latencyHistory) > 100 {
			d.latencyHistory = d.latencyHistory[1:]
		}
		d.latencySparkle.Sparklines[0].Data = d.latencyHistory
		d.latencySparkle.Title = fmt.Sprintf(
			"Latency | Mean: %.2fms | Min: %.2fms | Max: %.2fms",
			stats.MeanLatencyMs,
			stats.MinLatencyMs,
			stats.MaxLatencyMs,
		)
	}

	successRate := 0.0
	if stats.Total > 0 {
		successRate = (float64(stats.Successes) / float64(stats.Total)) * 100
	}

	d.summaryPara.Text = fmt.Sprintf(
		"Target: %s\nWorkers: %d | Total: %d | Rate: %s | Timeout: %s\nElapsed: %s | Success Rate: %.1f%%",
		d.testConfig.TargetURL,
		d.testConfig.Concurrency,
		d.testConfig.Total,
		formatRate(d.testConfig.Rate),
		d.testConfig.Timeout,
		elapsed.Round(time.Second),
		successRate,
	)

	d.metricsPara.Text = fmt.Sprintf(
		"Completed:         %d\nSuccessful:        %d\nFailed:            %d\nCurrent RPS:       %.2f\nMean Latency:      %.2fms\nP50/P90/P99:       %.2f / %.2f / %.2f ms",
		stats.Total,
		stats.Successes,
		stats.Failures,
		stats.RequestsPerSec,
		stats.MeanLatencyMs,
		stats.P50LatencyMs,
		stats.P90LatencyMs,
		stats.P99LatencyMs,
	)

	d.statusList.Rows = formatStatusRows(stats.StatusCounts)
	d.errorList.Rows = formatErrorRows(stats.Errors)
}

func (d *Dashboard) render() {
	d.mu.Lock()
	defer d.mu.Unlock()

	ui.Render(d.grid)
}

func formatRate(rate int) string {
	if rate <= 0 {
		return "unpaced"
	}
	return fmt.Sprintf("%d/s", rate)
}

func formatStatusRows(counts map[int]int64) []string {
	rows := metrics.FlattenStatusCounts(counts)
	if len(rows) == 0 {
		return []string{"[No responses yet](fg:green)"}
	}
	formatted := make([]string, 0, len(rows))
	for _, row := range rows {
		formatted = append(formatted, fmt.Sprintf("[HTTP %d](fg:cyan) %d", row.Code, row.Count))
	}
	return formatted
}

func formatErrorRows(counts map[string]int64) []string {
	rows := metrics.FlattenErrorCounts(counts)
	if len(rows) == 0 {
		return []string{"[No failures](fg:green)"}
	}
	maxRows := len(rows)
	if maxRows > 10 {
		maxRows = 10
	}
	formatted := make([]string, 0, maxRows)
	for i := 0; i < maxRows; i++ {
		row := rows[i]
		formatted = append(formatted, fmt.Sprintf("[%s](fg:red) %d", metrics.DisplayKind(row.Kind), row.Count))
	}
	return formatted
}
