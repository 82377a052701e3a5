package main

import (
	"bytes"
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:8080"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numClients   = 400
)

var sampleRNs = []int{14806, 29685, 15528, 29237, 71341, 51884, 61661, 56323, 77388, 13000, 150000}

var sampleBrands = []string{"Carhartt", "Pendleton", "Woolrich", "Nike", "Levi's"}

// 1x1 transparent PNG, enough for the simulated scan path.
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	limited   int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== GrailHunter Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Simulated clients: %d\n\n", numWorkers, testDuration, numClients)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: RN lookups (GET /api/rn) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doLookup(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed RN load ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.60:
			return doLookup(rng)
		case r < 0.85:
			return doValidate(rng)
		case r < 0.95:
			return doGet(rng, "/api/rn/brands")
		default:
			return doGet(rng, "/health")
		}
	})

	fmt.Println("\n--- Phase 3: Scan burst (POST /api/scan, simulation mode) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doScan(rng)
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
					totalOps.Add(1)
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			switch {
			case r.status == http.StatusTooManyRequests:
				s.limited++
			case r.err:
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps, totalErrors, totalLimited int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Endpoint", "Reqs", "Errs", "429", "Avg", "P50", "P95", "P99"})

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors
		totalLimited += s.limited

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		t.AppendRow(table.Row{
			ep, s.count, s.errors, s.limited,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)),
		})
	}

	if totalOps > 0 {
		t.AppendFooter(table.Row{
			"Total", totalOps, totalErrors, totalLimited,
			fmt.Sprintf("%.0f rps", float64(totalOps)/duration.Seconds()),
			fmt.Sprintf("%.1f%% err", float64(totalErrors)/float64(totalOps)*100),
		})
	}
	t.Render()
}

func clientAddr(rng *rand.Rand) string {
	n := rng.Intn(numClients)
	return fmt.Sprintf("10.%d.%d.%d", n/65536, (n/256)%256, n%256)
}

func send(rng *rand.Rand, name string, req *http.Request, want int) result {
	req.Header.Set("X-Forwarded-For", clientAddr(rng))
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{name, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{name, resp.StatusCode, lat, resp.StatusCode != want}
}

func doLookup(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/api/rn?q=RN%%20%d", baseURL, sampleRNs[rng.Intn(len(sampleRNs))])
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	return send(rng, "GET /api/rn", req, http.StatusOK)
}

func doValidate(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/api/rn/validate?rn=%d&brand=%s", baseURL,
		sampleRNs[rng.Intn(len(sampleRNs))], sampleBrands[rng.Intn(len(sampleBrands))])
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	return send(rng, "GET /api/rn/validate", req, http.StatusOK)
}

func doGet(rng *rand.Rand, path string) result {
	req, _ := http.NewRequest(http.MethodGet, baseURL+path, nil)
	return send(rng, "GET "+path, req, http.StatusOK)
}

func doScan(rng *rand.Rand) result {
	data, _ := json.Marshal(map[string]string{"imageBase64": tinyPNG})
	req, _ := http.NewRequest(http.MethodPost, baseURL+"/api/scan", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return send(rng, "POST /api/scan", req, http.StatusOK)
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
