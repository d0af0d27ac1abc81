// Package result parses the measurement tool's output CSV. The tool's header
// spellings have drifted across releases and locales, so every field is
// matched against a synonym list rather than a fixed name.
package result

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cfst-runner/pkg/colo"
	"cfst-runner/pkg/models"
)

var (
	ipHeaders      = []string{"IP 地址", "IP地址", "IP", "ip"}
	portHeaders    = []string{"端口", "Port", "port"}
	speedHeaders   = []string{"下载速度(MB/s)", "下载速度 (MB/s)", "下载速度", "Speed", "speed"}
	latencyHeaders = []string{"平均延迟", "延迟", "latency", "Latency"}
	coloHeaders    = []string{"地区码", "Colo", "colo"}
)

// DefaultPort applies when neither a port column nor an ip:port literal
// supplies one.
const DefaultPort = 443

// ReadRecords parses the result file at path into ordered records, resolving
// region names through table. The file is re-read in full on every call.
// Rows with no usable IP are dropped silently; rows with unparsable numeric
// fields are dropped the same way.
func ReadRecords(path string, table *colo.Table) ([]models.MeasurementRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open result file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("result file is empty: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := indexColumns(header)
	var records []models.MeasurementRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if rec, ok := parseRow(row, cols, table); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

type columns struct {
	ip, port, speed, latency, colo int
}

func indexColumns(header []string) columns {
	cols := columns{ip: -1, port: -1, speed: -1, latency: -1, colo: -1}
	find := func(names []string) int {
		for _, name := range names {
			for i, h := range header {
				if strings.TrimSpace(h) == name {
					return i
				}
			}
		}
		return -1
	}
	cols.ip = find(ipHeaders)
	cols.port = find(portHeaders)
	cols.speed = find(speedHeaders)
	cols.latency = find(latencyHeaders)
	cols.colo = find(coloHeaders)
	return cols
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseRow(row []string, cols columns, table *colo.Table) (models.MeasurementRecord, bool) {
	ip := field(row, cols.ip)
	port := field(row, cols.port)

	// An "ip:port" literal supplies the port only when the port column is
	// empty; an explicit column always wins. IPv6 literals contain colons
	// too, so only a single-colon split is treated as ip:port.
	if strings.Count(ip, ":") == 1 {
		parts := strings.SplitN(ip, ":", 2)
		ip = parts[0]
		if port == "" {
			port = parts[1]
		}
	}
	if ip == "" {
		return models.MeasurementRecord{}, false
	}

	portNum := DefaultPort
	if port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return models.MeasurementRecord{}, false
		}
		portNum = n
	}

	speed := 0.0
	if s := field(row, cols.speed); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return models.MeasurementRecord{}, false
		}
		speed = v
	}

	latency := field(row, cols.latency)
	if latency == "" {
		latency = "N/A"
	}

	code := field(row, cols.colo)
	return models.MeasurementRecord{
		IP:         ip,
		Port:       portNum,
		SpeedMBps:  speed,
		Latency:    latency,
		RegionCode: code,
		RegionName: table.DisplayName(code),
	}, true
}
