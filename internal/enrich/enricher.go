package enrich

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/fraudsim-project/fraudsim/internal/core"
)

// Enricher runs the full enrichment pass: baseline identity assignment
// over every row, then fraud-ring synthesis over a hub subset of IPs.
// All randomness comes from one explicitly seeded generator consumed in
// a fixed order (baseline → hub selection → cluster sizing → pool
// generation → per-cluster overrides → geographic sub-sampling), so a
// fixed seed and input reproduce the output byte for byte.
type Enricher struct {
	cfg *core.Config
	log zerolog.Logger
}

// Summary reports what one run produced. Rings carries the ephemeral
// cluster roster for inspection; it is never persisted.
type Summary struct {
	Rows        int
	DistinctIPs int
	HubIPs      int
	Clusters    int
	FraudRows   int
	GeoNoised   int
	Rings       []*Cluster
}

func New(cfg *core.Config, log zerolog.Logger) *Enricher {
	return &Enricher{cfg: cfg, log: log}
}

// Run reads the input log, enriches it, and writes the output file.
// Nothing is written unless the whole transform succeeds.
func (e *Enricher) Run() (*Summary, error) {
	recs, err := ReadRecords(e.cfg.Pipeline.InputPath)
	if err != nil {
		return nil, err
	}
	e.log.Info().Int("rows", len(recs)).Str("input", e.cfg.Pipeline.InputPath).Msg("loaded raw click log")

	sum, err := e.Enrich(recs)
	if err != nil {
		return nil, err
	}

	if err := WriteRecords(e.cfg.Pipeline.OutputPath, recs); err != nil {
		return nil, err
	}
	e.log.Info().
		Int("fraud_rows", sum.FraudRows).
		Int("clusters", sum.Clusters).
		Str("output", e.cfg.Pipeline.OutputPath).
		Msg("enriched sample written")
	return sum, nil
}

// Enrich mutates recs in place: baseline enrichment for every row, then
// ring overrides for rows whose IP lands in a cluster. Row count and
// order are never altered.
func (e *Enricher) Enrich(recs []*Record) (*Summary, error) {
	sim := e.cfg.Simulation
	rng := rand.New(rand.NewSource(sim.Seed))

	e.baseline(rng, recs)

	ips := distinctIPs(recs)
	hubs := SelectHubs(rng, ips, sim.HubFraction)
	clusters := BuildClusters(rng, hubs, sim.ClusterMinSize, sim.ClusterMaxSize)

	for _, c := range clusters {
		c.EmailPool = BuildEmailPool(rng, sim.EmailHandleRoot, sim.EmailPoolSize)
		c.TargetAds = SampleTargetAds(rng, sim.FraudTargetAds)
		c.Fingerprint = ClusterFingerprint(c.IPs)
	}

	groups, err := PartitionByCluster(recs, clusters)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		Rows:        len(recs),
		DistinctIPs: len(ips),
		HubIPs:      len(hubs),
		Clusters:    len(clusters),
		Rings:       clusters,
	}

	for _, c := range clusters {
		group := groups[c.ID]
		if len(group) == 0 {
			continue
		}
		ApplyClusterOverrides(rng, recs, c, group, sim.FraudEmailDomains)
		sum.FraudRows += len(group)
	}
	for _, c := range clusters {
		sum.GeoNoised += ApplyGeoNoise(rng, recs, groups[c.ID], sim.Countries, sim.GeoNoiseFraction)
	}

	e.log.Debug().
		Int("distinct_ips", sum.DistinctIPs).
		Int("hub_ips", sum.HubIPs).
		Int("clusters", sum.Clusters).
		Msg("fraud rings injected")
	return sum, nil
}

// baseline assigns the non-fraud enrichment to every row. user_id and
// device_fingerprint are deterministic over row attributes; the rest is
// uniform over the configured lists.
func (e *Enricher) baseline(rng *rand.Rand, recs []*Record) {
	sim := e.cfg.Simulation
	for _, r := range recs {
		r.AdID = sim.AdCatalog[rng.Intn(len(sim.AdCatalog))]
		r.UserID = UserID(r.IP, r.Device, r.OS)
		r.Country = sim.Countries[rng.Intn(len(sim.Countries))]
		r.Fingerprint = Fingerprint(r.Device, r.OS, r.App, r.Channel)
		r.ConnType = sim.ConnectionTypes[rng.Intn(len(sim.ConnectionTypes))]
		r.Email = baselineEmail(r.UserID, sim.BaselineEmailDomains[rng.Intn(len(sim.BaselineEmailDomains))])
		r.ClusterID = 0
		r.Fraud = false
	}
}

// baselineEmail derives the non-fraud email handle from the trailing six
// characters of the user id.
func baselineEmail(userID, domain string) string {
	handle := userID
	if len(handle) > 6 {
		handle = handle[len(handle)-6:]
	}
	return "user" + handle + "@" + domain
}

// distinctIPs returns the distinct source IPs in first-appearance order,
// so hub selection does not depend on map iteration.
func distinctIPs(recs []*Record) []string {
	seen := make(map[string]struct{}, len(recs))
	var ips []string
	for _, r := range recs {
		if _, ok := seen[r.IP]; !ok {
			seen[r.IP] = struct{}{}
			ips = append(ips, r.IP)
		}
	}
	return ips
}
