// Package report 基于历史打分记录生成 HTML 校准报告。
package report

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	_ "modernc.org/sqlite"

	"altscore/internal/logger"
)

const (
	colorBackground    = "#060c1b"
	colorTextPrimary   = "#eceff4"
	colorTextSecondary = "#9ca3af"
	colorLowBand       = "#34d399"
	colorMediumBand    = "#fbbf24"
	colorHighBand      = "#f87171"
	colorProbability   = "#3b82f6"

	chartWidthPx  = 1100
	chartHeightPx = 420

	scoreBucketWidth = 50
)

// Summary 汇总报告统计,随文件路径一起返回给调用方。
type Summary struct {
	Records    int
	Bands      map[string]int
	OutputPath string
}

// Generate 从历史库读取打分记录,渲染校准报告并写入 outputDir。
// 历史库由 gorm 写入,这里走只读的 database/sql 聚合查询。
func Generate(dbPath, outputDir string) (Summary, error) {
	var summary Summary
	if _, err := os.Stat(dbPath); err != nil {
		return summary, fmt.Errorf("history database not found at %s: %w", dbPath, err)
	}
	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return summary, fmt.Errorf("open history database failed: %w", err)
	}
	defer db.Close()

	buckets, err := queryScoreBuckets(db)
	if err != nil {
		return summary, err
	}
	bands, err := queryBandCounts(db)
	if err != nil {
		return summary, err
	}
	reliability, err := queryReliability(db)
	if err != nil {
		return summary, err
	}
	total := 0
	for _, n := range bands {
		total += n
	}
	if total == 0 {
		return summary, fmt.Errorf("history database %s has no score records", dbPath)
	}

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		buildScoreDistribution(buckets),
		buildBandBreakdown(bands),
		buildReliabilityCurve(reliability),
	)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return summary, fmt.Errorf("create report dir failed: %w", err)
	}
	name := fmt.Sprintf("calibration_%s.html", time.Now().UTC().Format("20060102_150405"))
	outPath := filepath.Join(outputDir, name)
	f, err := os.Create(outPath)
	if err != nil {
		return summary, fmt.Errorf("create report file failed: %w", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return summary, fmt.Errorf("render report failed: %w", err)
	}

	summary.Records = total
	summary.Bands = bands
	summary.OutputPath = outPath
	logger.Infof("校准报告已生成: %s (记录=%d)", outPath, total)
	return summary, nil
}

type scoreBucket struct {
	Low   int
	Count int
}

func queryScoreBuckets(db *sql.DB) ([]scoreBucket, error) {
	rows, err := db.Query(
		`SELECT (score / ?) * ? AS bucket, COUNT(*)
		 FROM score_records GROUP BY bucket ORDER BY bucket`,
		scoreBucketWidth, scoreBucketWidth,
	)
	if err != nil {
		return nil, fmt.Errorf("query score distribution failed: %w", err)
	}
	defer rows.Close()
	var buckets []scoreBucket
	for rows.Next() {
		var b scoreBucket
		if err := rows.Scan(&b.Low, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func queryBandCounts(db *sql.DB) (map[string]int, error) {
	rows, err := db.Query(`SELECT risk_band, COUNT(*) FROM score_records GROUP BY risk_band`)
	if err != nil {
		return nil, fmt.Errorf("query band breakdown failed: %w", err)
	}
	defer rows.Close()
	bands := make(map[string]int)
	for rows.Next() {
		var band string
		var n int
		if err := rows.Scan(&band, &n); err != nil {
			return nil, err
		}
		bands[band] = n
	}
	return bands, rows.Err()
}

type reliabilityPoint struct {
	Bucket      float64
	MeanDefault float64
	Predicted   float64
	Count       int
}

// queryReliability 按违约概率十分位聚合,对比模型输出与阈值判定占比。
func queryReliability(db *sql.DB) ([]reliabilityPoint, error) {
	rows, err := db.Query(
		`SELECT CAST(default_probability * 10 AS INTEGER) AS decile,
		        AVG(default_probability),
		        AVG(CASE WHEN predicted_default THEN 1.0 ELSE 0.0 END),
		        COUNT(*)
		 FROM score_records GROUP BY decile ORDER BY decile`)
	if err != nil {
		return nil, fmt.Errorf("query reliability curve failed: %w", err)
	}
	defer rows.Close()
	var points []reliabilityPoint
	for rows.Next() {
		var decile int
		var p reliabilityPoint
		if err := rows.Scan(&decile, &p.MeanDefault, &p.Predicted, &p.Count); err != nil {
			return nil, err
		}
		p.Bucket = float64(decile) / 10
		points = append(points, p)
	}
	return points, rows.Err()
}

func chartInit() opts.Initialization {
	return opts.Initialization{
		Theme:           types.ThemeWesteros,
		Width:           fmt.Sprintf("%dpx", chartWidthPx),
		Height:          fmt.Sprintf("%dpx", chartHeightPx),
		BackgroundColor: colorBackground,
	}
}

func buildScoreDistribution(buckets []scoreBucket) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(chartInit()),
		charts.WithTitleOpts(opts.Title{
			Title:      "Score Distribution",
			Subtitle:   fmt.Sprintf("bucket width %d", scoreBucketWidth),
			Left:       "left",
			TitleStyle: &opts.TextStyle{Color: colorTextPrimary, FontSize: 18},
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
			SplitLine: &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: colorTextSecondary, Opacity: opts.Float(0.2)}},
		}),
	)
	x := make([]string, len(buckets))
	data := make([]opts.BarData, len(buckets))
	for i, b := range buckets {
		x[i] = fmt.Sprintf("%d-%d", b.Low, b.Low+scoreBucketWidth-1)
		color := colorHighBand
		switch {
		case b.Low >= 720:
			color = colorLowBand
		case b.Low >= 540:
			color = colorMediumBand
		}
		data[i] = opts.BarData{
			Value:     b.Count,
			ItemStyle: &opts.ItemStyle{Color: color, Opacity: opts.Float(0.8)},
		}
	}
	bar.SetXAxis(x)
	bar.AddSeries("Borrowers", data)
	return bar
}

func buildBandBreakdown(bands map[string]int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(chartInit()),
		charts.WithTitleOpts(opts.Title{
			Title:      "Risk Band Breakdown",
			Left:       "left",
			TitleStyle: &opts.TextStyle{Color: colorTextPrimary, FontSize: 18},
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	order := []struct {
		band  string
		color string
	}{
		{"Low", colorLowBand},
		{"Medium", colorMediumBand},
		{"High", colorHighBand},
	}
	x := make([]string, 0, len(order))
	data := make([]opts.BarData, 0, len(order))
	for _, entry := range order {
		x = append(x, entry.band)
		data = append(data, opts.BarData{
			Value:     bands[entry.band],
			ItemStyle: &opts.ItemStyle{Color: entry.color, Opacity: opts.Float(0.85)},
		})
	}
	bar.SetXAxis(x)
	bar.AddSeries("Borrowers", data)
	return bar
}

func buildReliabilityCurve(points []reliabilityPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(chartInit()),
		charts.WithTitleOpts(opts.Title{
			Title:      "Reliability",
			Subtitle:   "mean default probability vs. flagged rate per decile",
			Left:       "left",
			TitleStyle: &opts.TextStyle{Color: colorTextPrimary, FontSize: 18},
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), TextStyle: &opts.TextStyle{Color: colorTextPrimary}}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{
			Min:       0,
			Max:       1,
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
			SplitLine: &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: colorTextSecondary, Opacity: opts.Float(0.2)}},
		}),
	)
	line.SetSeriesOptions(
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
	)
	x := make([]string, len(points))
	meanSeries := make([]opts.LineData, len(points))
	flagSeries := make([]opts.LineData, len(points))
	for i, p := range points {
		x[i] = fmt.Sprintf("%.1f", p.Bucket)
		meanSeries[i] = opts.LineData{Value: round(p.MeanDefault, 4)}
		flagSeries[i] = opts.LineData{Value: round(p.Predicted, 4)}
	}
	line.SetXAxis(x)
	line.AddSeries("Mean P(default)", meanSeries, charts.WithLineStyleOpts(opts.LineStyle{Color: colorProbability, Width: 2}))
	line.AddSeries("Flagged rate", flagSeries, charts.WithLineStyleOpts(opts.LineStyle{Color: colorHighBand, Width: 2}))
	return line
}

func round(val float64, decimals int) float64 {
	scale := 1.0
	for i := 0; i < decimals; i++ {
		scale *= 10
	}
	return float64(int64(val*scale+0.5)) / scale
}
