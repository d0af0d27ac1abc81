package result

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cfst-runner/pkg/colo"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "result.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestHeaderSynonymInvariance(t *testing.T) {
	table := colo.Builtin()
	variants := []string{
		"IP 地址,端口,平均延迟,下载速度(MB/s),地区码\n1.2.3.4,443,150,2.55,HKG\n",
		"IP地址,Port,延迟,下载速度 (MB/s),Colo\n1.2.3.4,443,150,2.55,HKG\n",
		"IP,port,latency,下载速度,colo\n1.2.3.4,443,150,2.55,HKG\n",
	}
	for _, csv := range variants {
		records, err := ReadRecords(writeCSV(t, csv), table)
		require.NoError(t, err)
		require.Len(t, records, 1)
		r := records[0]
		assert.Equal(t, "1.2.3.4", r.IP)
		assert.Equal(t, 443, r.Port)
		assert.Equal(t, "150", r.Latency)
		assert.Equal(t, 2.55, r.SpeedMBps)
		assert.Equal(t, "HKG", r.RegionCode)
		assert.Equal(t, "香港", r.RegionName)
	}
}

func TestRegionDisplayName(t *testing.T) {
	csv := "IP 地址,下载速度(MB/s),地区码\n1.2.3.4,2.55,HKG\n5.6.7.8,1.00,XXX\n9.9.9.9,1.00,\n"
	records, err := ReadRecords(writeCSV(t, csv), colo.Builtin())
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "香港-2.55MB/s", records[0].DisplayName())
	// Unknown code passes through as its own display name.
	assert.Equal(t, "XXX", records[1].RegionName)
	assert.Equal(t, colo.UnknownRegion, records[2].RegionName)
}

func TestIPPortLiteralSplit(t *testing.T) {
	table := colo.Builtin()

	// Empty port column: the literal wins.
	csv := "IP 地址,端口\n1.2.3.4:8443,\n"
	records, err := ReadRecords(writeCSV(t, csv), table)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1.2.3.4", records[0].IP)
	assert.Equal(t, 8443, records[0].Port)

	// Non-empty port column beats the literal.
	csv = "IP 地址,端口\n1.2.3.4:8443,2053\n"
	records, err = ReadRecords(writeCSV(t, csv), table)
	require.NoError(t, err)
	assert.Equal(t, 2053, records[0].Port)

	// IPv6 literals are never split.
	csv = "IP 地址,端口\n2606:4700::1,\n"
	records, err = ReadRecords(writeCSV(t, csv), table)
	require.NoError(t, err)
	assert.Equal(t, "2606:4700::1", records[0].IP)
	assert.Equal(t, DefaultPort, records[0].Port)
}

func TestDefaults(t *testing.T) {
	csv := "IP 地址\n1.2.3.4\n"
	records, err := ReadRecords(writeCSV(t, csv), colo.Builtin())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 443, records[0].Port)
	assert.Equal(t, "N/A", records[0].Latency)
	assert.Equal(t, 0.0, records[0].SpeedMBps)
}

func TestBadRowsDroppedSilently(t *testing.T) {
	csv := "IP 地址,端口,下载速度(MB/s)\n" +
		",443,1.0\n" + // no IP
		"1.2.3.4,not-a-port,1.0\n" + // bad port
		"5.6.7.8,443,fast\n" + // bad speed
		"9.9.9.9,443,3.0\n"
	records, err := ReadRecords(writeCSV(t, csv), colo.Builtin())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "9.9.9.9", records[0].IP)
}

func TestOrderPreserved(t *testing.T) {
	csv := "IP 地址\n3.3.3.3\n1.1.1.1\n2.2.2.2\n"
	records, err := ReadRecords(writeCSV(t, csv), colo.Builtin())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "3.3.3.3", records[0].IP)
	assert.Equal(t, "2.2.2.2", records[2].IP)
}

func TestEmptyFile(t *testing.T) {
	_, err := ReadRecords(writeCSV(t, ""), colo.Builtin())
	assert.Error(t, err)
}

func TestRereadsFully(t *testing.T) {
	path := writeCSV(t, "IP 地址\n1.1.1.1\n")
	table := colo.Builtin()

	first, err := ReadRecords(path, table)
	require.NoError(t, err)
	require.Len(t, first, 1)

	require.NoError(t, os.WriteFile(path, []byte("IP 地址\n1.1.1.1\n2.2.2.2\n"), 0644))
	second, err := ReadRecords(path, table)
	require.NoError(t, err)
	assert.Len(t, second, 2)
}
