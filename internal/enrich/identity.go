package enrich

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// HashToInt maps an ordered tuple of values to a stable integer in
// [0, modulo) using SHA-256 over the pipe-joined string form. Identical
// inputs always yield identical output.
func HashToInt(modulo uint64, parts ...string) uint64 {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	n := new(big.Int).SetBytes(sum[:])
	return n.Mod(n, new(big.Int).SetUint64(modulo)).Uint64()
}

// UserID derives the baseline user identifier from the row's physical
// signal (IP, device, OS), reduced into a 7-digit numeric space.
func UserID(ip, device, os string) string {
	return fmt.Sprintf("U%07d", HashToInt(1_000_000, ip, device, os))
}

// Fingerprint derives the baseline device fingerprint: a short stable
// hex string over device, OS, application and channel.
func Fingerprint(device, os, app, channel string) string {
	base := fmt.Sprintf("%s-%s-%s-%s", device, os, app, channel)
	sum := md5.Sum([]byte(base))
	return hex.EncodeToString(sum[:])[:16]
}

// ClusterFingerprint derives the single fingerprint shared by a fraud
// ring from its full hub-IP membership. The IPs are sorted first so the
// result does not depend on incidental set order.
func ClusterFingerprint(ips []string) string {
	sorted := append([]string(nil), ips...)
	sort.Strings(sorted)
	return fmt.Sprintf("fp_%08d", HashToInt(100_000_000, sorted...))
}
