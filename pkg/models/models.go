package models

import "fmt"

// MeasurementRecord is one parsed row of the speed test result CSV. The
// upstream tool writes rows pre-sorted by desirability, so slice order is
// meaningful and must be preserved.
type MeasurementRecord struct {
	IP         string
	Port       int
	SpeedMBps  float64
	Latency    string
	RegionCode string
	RegionName string
}

// DisplayName is the node label used by both upload targets.
func (r MeasurementRecord) DisplayName() string {
	return fmt.Sprintf("%s-%.2fMB/s", r.RegionName, r.SpeedMBps)
}

// Line renders the record in the ip:port#name format consumed by proxy
// clients. No whitespace around the separators.
func (r MeasurementRecord) Line() string {
	return fmt.Sprintf("%s:%d#%s", r.IP, r.Port, r.DisplayName())
}

// BatchEntry is the wire payload unit for the preferred-IP registry API.
type BatchEntry struct {
	IP   string `json:"ip"`
	Port int    `json:"port"`
	Name string `json:"name"`
}

func (r MeasurementRecord) BatchEntry() BatchEntry {
	return BatchEntry{IP: r.IP, Port: r.Port, Name: r.DisplayName()}
}

// Cap returns the first n records, or all of them when fewer exist.
func Cap(records []MeasurementRecord, n int) []MeasurementRecord {
	if n < 0 || n > len(records) {
		n = len(records)
	}
	return records[:n]
}

// UploadStats is the structured outcome of a registry upload.
type UploadStats struct {
	Added   int
	Skipped int
	Failed  int
}
