package enrich

import (
	"fmt"
	"math/rand"
	"testing"
)

func ipRange(n int) []string {
	ips := make([]string, n)
	for i := range ips {
		ips[i] = fmt.Sprintf("%d", 1000+i)
	}
	return ips
}

// ─── SelectHubs ───────────────────────────────────────────────────────────────

func TestSelectHubs_Size(t *testing.T) {
	cases := []struct {
		n        int
		fraction float64
		want     int
	}{
		{1000, 0.05, 50},
		{100, 0.05, 5},
		{10, 0.05, 1},  // rounds to 1 via the max(1, …) floor
		{30, 0.05, 2},  // round(1.5) = 2, half away from zero
		{29, 0.05, 1},  // round(1.45) = 1
		{3, 0.9, 3},
	}
	for _, tc := range cases {
		rng := rand.New(rand.NewSource(42))
		got := SelectHubs(rng, ipRange(tc.n), tc.fraction)
		if len(got) != tc.want {
			t.Errorf("SelectHubs(n=%d, f=%v) returned %d hubs, want %d", tc.n, tc.fraction, len(got), tc.want)
		}
	}
}

func TestSelectHubs_Empty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	if got := SelectHubs(rng, nil, 0.05); len(got) != 0 {
		t.Errorf("empty IP set should yield no hubs, got %d", len(got))
	}
}

func TestSelectHubs_WithoutReplacement(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ips := ipRange(200)
	hubs := SelectHubs(rng, ips, 0.5)
	seen := make(map[string]bool, len(hubs))
	valid := make(map[string]bool, len(ips))
	for _, ip := range ips {
		valid[ip] = true
	}
	for _, h := range hubs {
		if seen[h] {
			t.Errorf("hub %s drawn twice", h)
		}
		seen[h] = true
		if !valid[h] {
			t.Errorf("hub %s is not in the source IP set", h)
		}
	}
}

func TestSelectHubs_Deterministic(t *testing.T) {
	a := SelectHubs(rand.New(rand.NewSource(42)), ipRange(500), 0.1)
	b := SelectHubs(rand.New(rand.NewSource(42)), ipRange(500), 0.1)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("hub %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}

// ─── BuildClusters ────────────────────────────────────────────────────────────

func TestBuildClusters_Partition(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	hubs := ipRange(50)
	clusters := BuildClusters(rng, hubs, 2, 5)

	seen := make(map[string]int)
	total := 0
	for _, c := range clusters {
		for _, ip := range c.IPs {
			if prev, ok := seen[ip]; ok {
				t.Errorf("IP %s in clusters %d and %d", ip, prev, c.ID)
			}
			seen[ip] = c.ID
			total++
		}
	}
	if total != len(hubs) {
		t.Errorf("clusters cover %d IPs, want %d", total, len(hubs))
	}
	for _, ip := range hubs {
		if _, ok := seen[ip]; !ok {
			t.Errorf("hub %s missing from every cluster", ip)
		}
	}
}

func TestBuildClusters_SequentialIDs(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	clusters := BuildClusters(rng, ipRange(37), 2, 5)
	for i, c := range clusters {
		if c.ID != i+1 {
			t.Errorf("cluster %d has id %d, want %d", i, c.ID, i+1)
		}
	}
}

func TestBuildClusters_SizeRange(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	clusters := BuildClusters(rng, ipRange(83), 2, 5)
	for i, c := range clusters {
		if len(c.IPs) > 5 {
			t.Errorf("cluster %d has %d IPs, want <= 5", c.ID, len(c.IPs))
		}
		// Only the final group may undershoot the minimum.
		if len(c.IPs) < 2 && i != len(clusters)-1 {
			t.Errorf("non-final cluster %d has %d IPs, want >= 2", c.ID, len(c.IPs))
		}
	}
}

func TestBuildClusters_Empty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	if got := BuildClusters(rng, nil, 2, 5); len(got) != 0 {
		t.Errorf("no hubs should yield no clusters, got %d", len(got))
	}
}

func TestBuildClusters_SingleSize(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	clusters := BuildClusters(rng, ipRange(9), 3, 3)
	if len(clusters) != 3 {
		t.Fatalf("9 hubs at fixed size 3 should form 3 clusters, got %d", len(clusters))
	}
	for _, c := range clusters {
		if len(c.IPs) != 3 {
			t.Errorf("cluster %d has %d IPs, want 3", c.ID, len(c.IPs))
		}
	}
}

// ─── SampleTargetAds ──────────────────────────────────────────────────────────

func TestSampleTargetAds(t *testing.T) {
	fraudAds := []string{"AD001", "AD002", "AD003", "AD004", "AD005"}
	valid := make(map[string]bool)
	for _, ad := range fraudAds {
		valid[ad] = true
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		ads := SampleTargetAds(rng, fraudAds)
		if len(ads) < 1 || len(ads) > 3 {
			t.Fatalf("SampleTargetAds returned %d ads, want 1..3", len(ads))
		}
		seen := make(map[string]bool)
		for _, ad := range ads {
			if !valid[ad] {
				t.Errorf("ad %s not in the fraud-prone subset", ad)
			}
			if seen[ad] {
				t.Errorf("ad %s drawn twice (with replacement)", ad)
			}
			seen[ad] = true
		}
	}
}

func TestSampleTargetAds_SmallSubset(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		ads := SampleTargetAds(rng, []string{"AD001"})
		if len(ads) != 1 || ads[0] != "AD001" {
			t.Fatalf("single-ad subset should always yield [AD001], got %v", ads)
		}
	}
}
