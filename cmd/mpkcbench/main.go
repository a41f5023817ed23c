//go:build analysis

// Command mpkcbench times key generation, encryption, decryption, signing
// and verification across every parameter preset and renders the results as
// an HTML page of charts plus a JSON stats file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"mpkc/mpkc"
	"mpkc/prof"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type summaryStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean_ms"`
	Std    float64 `json:"std_ms"`
	Min    float64 `json:"min_ms"`
	Median float64 `json:"median_ms"`
	Max    float64 `json:"max_ms"`
}

func computeStats(x []float64) summaryStats {
	n := len(x)
	if n == 0 {
		return summaryStats{}
	}
	cp := append([]float64(nil), x...)
	sort.Float64s(cp)
	var m float64
	for _, v := range x {
		m += v
	}
	m /= float64(n)
	var m2 float64
	for _, v := range x {
		d := v - m
		m2 += d * d
	}
	std := 0.0
	if n > 1 {
		std = math.Sqrt(m2 / float64(n-1))
	}
	return summaryStats{Count: n, Mean: m, Std: std, Min: cp[0], Median: cp[n/2], Max: cp[n-1]}
}

type presetResult struct {
	Name    string                  `json:"preset"`
	N       int                     `json:"n"`
	K       int                     `json:"k"`
	T       int                     `json:"t"`
	Timings map[string]summaryStats `json:"timings"`
}

var operations = []string{"keygen", "encrypt", "decrypt", "sign", "verify"}

func benchPreset(name string, params *mpkc.Parameters, keygenRuns, opRuns int) (presetResult, error) {
	res := presetResult{Name: name, N: params.N(), K: params.K(), T: params.T(), Timings: map[string]summaryStats{}}
	samples := map[string][]float64{}

	var pub *mpkc.PublicKey
	var priv *mpkc.PrivateKey
	for i := 0; i < keygenRuns; i++ {
		start := time.Now()
		p, s, err := mpkc.GenerateKeyPair(params, nil)
		if err != nil {
			return res, fmt.Errorf("keygen: %w", err)
		}
		prof.Track(start, name+"/keygen")
		pub, priv = p, s
	}

	enc, err := mpkc.NewCipher(params)
	if err != nil {
		return res, err
	}
	if err := enc.Initialize(pub); err != nil {
		return res, err
	}
	dec, err := mpkc.NewCipher(params)
	if err != nil {
		return res, err
	}
	if err := dec.Initialize(priv); err != nil {
		return res, err
	}

	message := make([]byte, pub.MaxPlainText())
	for i := 0; i < opRuns; i++ {
		start := time.Now()
		ct, err := enc.Encrypt(message)
		if err != nil {
			return res, fmt.Errorf("encrypt: %w", err)
		}
		prof.Track(start, name+"/encrypt")

		start = time.Now()
		if _, err := dec.Decrypt(ct); err != nil {
			return res, fmt.Errorf("decrypt: %w", err)
		}
		prof.Track(start, name+"/decrypt")
	}

	signer := new(mpkc.OneTimeSignature)
	if err := signer.Initialize(pub); err != nil {
		return res, err
	}
	verifier := new(mpkc.OneTimeSignature)
	if err := verifier.Initialize(priv); err != nil {
		return res, err
	}
	for i := 0; i < opRuns; i++ {
		start := time.Now()
		sig, err := signer.Sign(message)
		if err != nil {
			return res, fmt.Errorf("sign: %w", err)
		}
		prof.Track(start, name+"/sign")

		start = time.Now()
		ok, err := verifier.Verify(message, sig)
		if err != nil {
			return res, fmt.Errorf("verify: %w", err)
		}
		if !ok {
			return res, fmt.Errorf("verify: fresh signature rejected")
		}
		prof.Track(start, name+"/verify")
	}

	for _, e := range prof.SnapshotAndReset() {
		op := e.Label[len(name)+1:]
		samples[op] = append(samples[op], float64(e.Dur)/float64(time.Millisecond))
	}
	for _, op := range operations {
		res.Timings[op] = computeStats(samples[op])
	}
	return res, nil
}

func newOperationChart(op string, results []presetResult) *charts.Bar {
	labels := make([]string, len(results))
	items := make([]opts.BarData, len(results))
	for i, r := range results {
		labels[i] = r.Name
		items[i] = opts.BarData{Value: r.Timings[op].Mean}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: op, Subtitle: "mean duration (ms) per preset"}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "mpkc timings", Width: "1200px", Height: "500px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("mean ms", items).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))
	return bar
}

func saveJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func main() {
	keygenRuns := flag.Int("keygen-runs", 3, "key generations per preset")
	opRuns := flag.Int("op-runs", 20, "encrypt/decrypt and sign/verify iterations per preset")
	outDir := flag.String("out", "Measure_Reports", "output directory for reports")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}

	presets := []struct {
		name   string
		params *mpkc.Parameters
	}{
		{"fujisaki-sha2", mpkc.FujisakiSHA2()},
		{"fujisaki-sha3", mpkc.FujisakiSHA3()},
		{"fujisaki-blake2b", mpkc.FujisakiBlake2b()},
		{"fujisaki-sha2-512", mpkc.FujisakiSHA2Large()},
		{"pointcheval-sha2", mpkc.PointchevalSHA2()},
		{"pointcheval-sha3", mpkc.PointchevalSHA3()},
	}

	var results []presetResult
	for i, p := range presets {
		log.Printf("[bench] preset %d/%d: %s", i+1, len(presets), p.name)
		r, err := benchPreset(p.name, p.params, *keygenRuns, *opRuns)
		if err != nil {
			log.Fatalf("%s: %v", p.name, err)
		}
		results = append(results, r)
	}

	ts := time.Now().Format("20060102_150405")
	jsonPath := filepath.Join(*outDir, fmt.Sprintf("mpkc_timings_%s.json", ts))
	if err := saveJSON(jsonPath, results); err != nil {
		log.Printf("warn: save stats: %v", err)
	}

	page := components.NewPage()
	for _, op := range operations {
		page.AddCharts(newOperationChart(op, results))
	}
	htmlPath := filepath.Join(*outDir, fmt.Sprintf("mpkc_timings_%s.html", ts))
	f, err := os.Create(htmlPath)
	if err != nil {
		log.Fatalf("create html: %v", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalf("render html: %v", err)
	}
	fmt.Println("Timing page:", htmlPath)
	fmt.Println("Stats JSON:", jsonPath)
}
