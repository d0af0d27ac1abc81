package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayNameFormat(t *testing.T) {
	r := MeasurementRecord{IP: "1.2.3.4", Port: 443, SpeedMBps: 2.5, RegionName: "香港"}
	assert.Equal(t, "香港-2.50MB/s", r.DisplayName())
}

func TestLineFormat(t *testing.T) {
	r := MeasurementRecord{IP: "1.2.3.4", Port: 8443, SpeedMBps: 12.345, RegionName: "新加坡"}
	assert.Equal(t, "1.2.3.4:8443#新加坡-12.35MB/s", r.Line())
}

func TestBatchEntry(t *testing.T) {
	r := MeasurementRecord{IP: "1.2.3.4", Port: 2053, SpeedMBps: 0, RegionName: "LAX"}
	e := r.BatchEntry()
	assert.Equal(t, "1.2.3.4", e.IP)
	assert.Equal(t, 2053, e.Port)
	assert.Equal(t, "LAX-0.00MB/s", e.Name)
}

func TestCapBounds(t *testing.T) {
	records := []MeasurementRecord{{IP: "a"}, {IP: "b"}, {IP: "c"}}

	assert.Len(t, Cap(records, 2), 2)
	// More requested than available uploads exactly what exists.
	assert.Len(t, Cap(records, 10), 3)
	assert.Len(t, Cap(records, -1), 3)
	assert.Len(t, Cap(nil, 5), 0)
	// Order preserved.
	assert.Equal(t, "a", Cap(records, 1)[0].IP)
}
