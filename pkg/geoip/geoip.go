package geoip

import (
	"net/netip"

	"github.com/admpub/log"
	"github.com/oschwald/maxminddb-golang/v2"
)

type Names struct {
	En string `maxminddb:"en"`
}

type DBRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
		Names   Names  `maxminddb:"names"` // {en: "United Kingdom"}
	} `maxminddb:"country"`
	Subdivisions []struct {
		Names Names `maxminddb:"names"` // {en: "England"}
	} `maxminddb:"subdivisions"`
	City struct {
		Names Names `maxminddb:"names"` // {en: "Cambridge"}
	} `maxminddb:"city"`
	Continent struct {
		Code  string `maxminddb:"code"`  // EU
		Names Names  `maxminddb:"names"` // {en: "Europe"}
	} `maxminddb:"continent"`
}

// LocationString orders names from the most to the least specific:
// "Cambridge, England, United Kingdom, Europe".
func (d DBRecord) LocationString() string {
	var lo string
	var sep string
	if len(d.Continent.Names.En) > 0 {
		lo = d.Continent.Names.En
		sep = `, `
	}
	if len(d.Country.Names.En) > 0 {
		lo = d.Country.Names.En + sep + lo
		sep = `, `
	}
	for _, row := range d.Subdivisions {
		if len(row.Names.En) == 0 {
			continue
		}
		lo = row.Names.En + sep + lo
		sep = `, `
	}
	if len(d.City.Names.En) > 0 {
		lo = d.City.Names.En + sep + lo
	}
	return lo
}

// DB is a GeoIP database provider
type DB struct {
	reader *maxminddb.Reader
}

// New GeoIP database provider. An empty filename returns a nil DB.
func New(filename string) (*DB, error) {
	if filename == "" {
		return nil, nil
	}
	reader, err := maxminddb.Open(filename)
	if err != nil {
		return nil, err
	}
	log.Debugf("using geo IP database: %s", filename)
	return &DB{
		reader: reader,
	}, nil
}

// Close GeoIP database
func (db *DB) Close() error {
	if db != nil && db.reader != nil {
		return db.reader.Close()
	}
	return nil
}

// LookupCountry find IP country code
func (db *DB) LookupCountry(ip netip.Addr) (DBRecord, error) {
	record := DBRecord{}
	err := db.reader.Lookup(ip.Unmap()).Decode(&record)
	return record, err
}
