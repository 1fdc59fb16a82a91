package enrich

import (
	"fmt"
	"math"
	"math/rand"
)

// PartitionByCluster groups row indices by the cluster owning their
// source IP, preserving row order within each group. Rows outside every
// cluster are left out. The hub-IP sets must be disjoint across clusters;
// a violation is a programming defect in cluster construction and is
// reported as an error.
func PartitionByCluster(recs []*Record, clusters []*Cluster) (map[int][]int, error) {
	owner := make(map[string]int)
	for _, c := range clusters {
		for _, ip := range c.IPs {
			if prev, ok := owner[ip]; ok && prev != c.ID {
				return nil, fmt.Errorf("hub IP %s claimed by clusters %d and %d", ip, prev, c.ID)
			}
			owner[ip] = c.ID
		}
	}

	groups := make(map[int][]int, len(clusters))
	for i, r := range recs {
		if cid, ok := owner[r.IP]; ok {
			groups[cid] = append(groups[cid], i)
		}
	}
	return groups, nil
}

// ApplyClusterOverrides imprints one ring's coordinated-fraud signature
// on every row in the group: biased ad targeting, the shared device
// fingerprint, emails drawn from the ring's handle pool, and sock-puppet
// user-id rotation. Rows outside the group are untouched.
func ApplyClusterOverrides(rng *rand.Rand, recs []*Record, c *Cluster, group []int, fraudDomains []string) {
	for _, i := range group {
		r := recs[i]
		r.ClusterID = c.ID
		r.Fraud = true
		r.AdID = c.TargetAds[rng.Intn(len(c.TargetAds))]
		r.Fingerprint = c.Fingerprint
		handle := c.EmailPool[rng.Intn(len(c.EmailPool))]
		r.Email = handle + "@" + fraudDomains[rng.Intn(len(fraudDomains))]
	}

	rotateUserIDs(rng, recs, group)
}

// rotateUserIDs resamples user_id over the union of a fresh synthetic
// identity pool and the ids currently on the group's rows. Duplicates
// are kept on purpose: the skew produces both identity reuse (many rows
// converging on few ids) and identity churn (one signal under many ids).
func rotateUserIDs(rng *rand.Rand, recs []*Record, group []int) {
	poolSize := len(group) / 10
	if poolSize < 50 {
		poolSize = 50
	}

	universe := make([]string, 0, poolSize+len(group))
	for i := 0; i < poolSize; i++ {
		universe = append(universe, fmt.Sprintf("u%06d", rng.Intn(1_000_000)))
	}
	for _, i := range group {
		universe = append(universe, recs[i].UserID)
	}

	for _, i := range group {
		recs[i].UserID = universe[rng.Intn(len(universe))]
	}
}

// ApplyGeoNoise overwrites country on a uniform round(fraction*|group|)
// sub-sample of the group, drawn without replacement, modeling proxy and
// VPN location inconsistency. The rest of the group keeps its baseline
// country.
func ApplyGeoNoise(rng *rand.Rand, recs []*Record, group []int, countries []string, fraction float64) int {
	k := int(math.Round(fraction * float64(len(group))))
	if k <= 0 {
		return 0
	}

	idx := append([]int(nil), group...)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	for _, i := range idx[:k] {
		recs[i].Country = countries[rng.Intn(len(countries))]
	}
	return k
}
