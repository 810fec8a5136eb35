package types

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GeographyPoint is a PostGIS geography(Point,4326) column. The zero value
// (0,0) is a degenerate but valid location used for pharmacies that never set
// coordinates.
type GeographyPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Value produces an EWKT literal Postgres casts to geography on write.
func (g GeographyPoint) Value() (driver.Value, error) {
	return fmt.Sprintf("SRID=4326;POINT(%f %f)", g.Lng, g.Lat), nil
}

// Scan accepts the shapes Postgres hands back depending on query path:
// EWKT/WKT text, raw (E)WKB bytes, or hex-encoded (E)WKB.
func (g *GeographyPoint) Scan(value interface{}) error {
	if value == nil {
		*g = GeographyPoint{}
		return nil
	}

	switch v := value.(type) {
	case string:
		return g.decodeText(v)
	case []byte:
		text := strings.TrimSpace(string(v))
		upper := strings.ToUpper(text)
		if strings.HasPrefix(upper, "SRID=") || strings.HasPrefix(upper, "POINT(") {
			return g.decodeText(text)
		}
		return g.decodeWKB(v)
	default:
		if stringer, ok := value.(fmt.Stringer); ok {
			return g.decodeText(stringer.String())
		}
		return fmt.Errorf("geography: unsupported scan type %T", value)
	}
}

func (g *GeographyPoint) decodeText(raw string) error {
	raw = strings.TrimSpace(raw)
	upper := strings.ToUpper(raw)

	// EWKT carries a leading SRID section.
	if strings.HasPrefix(upper, "SRID=") {
		if idx := strings.Index(raw, ";"); idx != -1 {
			return g.decodeText(raw[idx+1:])
		}
		return fmt.Errorf("geography: malformed EWKT %q", raw)
	}

	if !strings.HasPrefix(upper, "POINT(") {
		// Not WKT at all; PostGIS hex output lands here.
		if b, err := hex.DecodeString(raw); err == nil {
			return g.decodeWKB(b)
		}
		return fmt.Errorf("geography: unsupported text %q", raw)
	}
	if !strings.HasSuffix(raw, ")") {
		return fmt.Errorf("geography: unsupported text %q", raw)
	}

	fields := strings.Fields(strings.TrimSpace(raw[len("POINT(") : len(raw)-1]))
	if len(fields) != 2 {
		return fmt.Errorf("geography: unexpected POINT content %q", raw)
	}
	lng, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return fmt.Errorf("geography: parse longitude: %w", err)
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return fmt.Errorf("geography: parse latitude: %w", err)
	}
	g.Lng, g.Lat = lng, lat
	return nil
}

// ewkbSRIDFlag marks an EWKB geometry that embeds a 4-byte SRID.
const ewkbSRIDFlag = 0x20000000

func (g *GeographyPoint) decodeWKB(raw []byte) error {
	if len(raw) < 21 {
		return fmt.Errorf("geography: wkb too short")
	}

	var order binary.ByteOrder
	switch raw[0] {
	case 0:
		order = binary.BigEndian
	case 1:
		order = binary.LittleEndian
	default:
		return fmt.Errorf("geography: invalid byte order %d", raw[0])
	}

	geomType := order.Uint32(raw[1:5])
	coords := raw[5:]
	if geomType&ewkbSRIDFlag != 0 {
		geomType &^= ewkbSRIDFlag
		if len(raw) < 25 {
			return fmt.Errorf("geography: ewkb too short")
		}
		coords = raw[9:]
	}
	if geomType != 1 {
		return fmt.Errorf("geography: unexpected geometry type %d", geomType)
	}
	if len(coords) < 16 {
		return fmt.Errorf("geography: truncated point")
	}

	g.Lng = math.Float64frombits(order.Uint64(coords[0:8]))
	g.Lat = math.Float64frombits(order.Uint64(coords[8:16]))
	return nil
}
