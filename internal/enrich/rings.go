package enrich

import (
	"math"
	"math/rand"
)

// Cluster is one synthetic fraud ring: a disjoint group of hub IPs that
// share a fingerprint, a biased ad subset, and an email-handle pool.
// Clusters live only for the duration of a run.
type Cluster struct {
	ID          int
	IPs         []string
	TargetAds   []string
	Fingerprint string
	EmailPool   []string
}

// SelectHubs draws max(1, round(len(ips)*fraction)) distinct IPs without
// replacement to act as fraud-ring anchors. An empty IP set yields no
// hubs, which downstream treats as a successful zero-cluster run.
func SelectHubs(rng *rand.Rand, ips []string, fraction float64) []string {
	if len(ips) == 0 {
		return nil
	}
	n := int(math.Round(float64(len(ips)) * fraction))
	if n < 1 {
		n = 1
	}
	if n > len(ips) {
		n = len(ips)
	}

	// Partial Fisher-Yates over a copy: first n slots are the sample.
	pool := append([]string(nil), ips...)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// BuildClusters walks the hub list front to back, consuming a random
// group of size [minSize, maxSize] per step into a new cluster. Cluster
// ids are sequential from 1 with no gaps. The final group may be smaller
// than minSize when fewer IPs remain.
func BuildClusters(rng *rand.Rand, hubs []string, minSize, maxSize int) []*Cluster {
	var clusters []*Cluster
	id := 1
	for cursor := 0; cursor < len(hubs); id++ {
		size := minSize + rng.Intn(maxSize-minSize+1)
		end := cursor + size
		if end > len(hubs) {
			end = len(hubs)
		}
		clusters = append(clusters, &Cluster{
			ID:  id,
			IPs: append([]string(nil), hubs[cursor:end]...),
		})
		cursor = end
	}
	return clusters
}

// SampleTargetAds draws 1–3 ads without replacement from the fraud-prone
// subset for one cluster.
func SampleTargetAds(rng *rand.Rand, fraudAds []string) []string {
	n := 1 + rng.Intn(3)
	if n > len(fraudAds) {
		n = len(fraudAds)
	}
	pool := append([]string(nil), fraudAds...)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
