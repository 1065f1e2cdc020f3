package visitor

import (
	"fmt"
	"net/http"
	"net/netip"

	"github.com/admpub/log"
	"github.com/medama-io/go-useragent"

	"github.com/vedaangh/microblog/pkg/geoip"
)

var ua = useragent.NewParser()

// Visitor describes the client behind a request, for access logging.
type Visitor struct {
	IP       string `json:"ip"`
	Browser  string `json:"browser,omitempty"`
	OS       string `json:"os,omitempty"`
	Device   string `json:"device,omitempty"`
	Country  string `json:"country,omitempty"`
	Location string `json:"location,omitempty"`
}

// ParseIP accepts "host:port" and bare addresses as set by RealIP.
func ParseIP(remoteAddr string) (netip.Addr, bool) {
	if ap, err := netip.ParseAddrPort(remoteAddr); err == nil {
		return ap.Addr(), true
	}
	if addr, err := netip.ParseAddr(remoteAddr); err == nil {
		return addr, true
	}
	return netip.Addr{}, false
}

// FromRequest collects user agent details and, when db is not nil, the
// visitor's country.
func FromRequest(r *http.Request, db *geoip.DB) Visitor {
	v := Visitor{IP: r.RemoteAddr}
	addr, ok := ParseIP(r.RemoteAddr)
	if ok {
		v.IP = addr.String()
	}
	if userAgent := r.UserAgent(); len(userAgent) > 0 {
		agent := ua.Parse(userAgent)
		v.Browser = fmt.Sprint(agent.Browser())
		v.OS = fmt.Sprint(agent.OS())
		v.Device = fmt.Sprint(agent.Device())
	}
	if db != nil && ok {
		record, err := db.LookupCountry(addr)
		if err != nil {
			log.Warnf("unable to retrieve IP country code: %v", err)
		} else {
			v.Country = record.Country.ISOCode
			v.Location = record.LocationString()
		}
	}
	return v
}

func (v Visitor) String() string {
	s := v.IP
	if len(v.Browser) > 0 {
		s += ` ` + v.Browser + `/` + v.OS + `/` + v.Device
	}
	switch {
	case len(v.Location) > 0:
		s += ` [` + v.Country + ` ` + v.Location + `]`
	case len(v.Country) > 0:
		s += ` [` + v.Country + `]`
	}
	return s
}
