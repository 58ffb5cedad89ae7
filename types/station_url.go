package types

import "strings"

// StationURL is an implementation of rdv::StationURL, the rendezvous
// address format NEX uses to describe reachable peers. It is encoded as a
// NexString of the form "scheme:/key=value;key=value;...".
type StationURL struct {
	Scheme        string
	Address       string
	Port          string
	Stream        string
	Sid           string
	CID           string
	PID           string
	TransportType string
	RVCID         string
	NATM          string
	NATF          string
	UPnP          string
	PMP           string
	ProbeInit     string
	PRID          string
}

var stationURLFieldNames = []struct {
	key string
	get func(*StationURL) string
	set func(*StationURL, string)
}{
	{"address", func(s *StationURL) string { return s.Address }, func(s *StationURL, v string) { s.Address = v }},
	{"port", func(s *StationURL) string { return s.Port }, func(s *StationURL, v string) { s.Port = v }},
	{"stream", func(s *StationURL) string { return s.Stream }, func(s *StationURL, v string) { s.Stream = v }},
	{"sid", func(s *StationURL) string { return s.Sid }, func(s *StationURL, v string) { s.Sid = v }},
	{"CID", func(s *StationURL) string { return s.CID }, func(s *StationURL, v string) { s.CID = v }},
	{"PID", func(s *StationURL) string { return s.PID }, func(s *StationURL, v string) { s.PID = v }},
	{"type", func(s *StationURL) string { return s.TransportType }, func(s *StationURL, v string) { s.TransportType = v }},
	{"RVCID", func(s *StationURL) string { return s.RVCID }, func(s *StationURL, v string) { s.RVCID = v }},
	{"natm", func(s *StationURL) string { return s.NATM }, func(s *StationURL, v string) { s.NATM = v }},
	{"natf", func(s *StationURL) string { return s.NATF }, func(s *StationURL, v string) { s.NATF = v }},
	{"upnp", func(s *StationURL) string { return s.UPnP }, func(s *StationURL, v string) { s.UPnP = v }},
	{"pmp", func(s *StationURL) string { return s.PMP }, func(s *StationURL, v string) { s.PMP = v }},
	{"probeinit", func(s *StationURL) string { return s.ProbeInit }, func(s *StationURL, v string) { s.ProbeInit = v }},
	{"PRID", func(s *StationURL) string { return s.PRID }, func(s *StationURL, v string) { s.PRID = v }},
}

// WriteTo writes the StationURL to the given writable, encoded as a NexString
func (su *StationURL) WriteTo(writable Writable) {
	String(su.EncodeToString()).WriteTo(writable)
}

// ExtractFrom extracts the StationURL from the given readable
func (su *StationURL) ExtractFrom(readable Readable) error {
	var raw String
	if err := raw.ExtractFrom(readable); err != nil {
		return err
	}

	su.decodeFromString(string(raw))
	return nil
}

// Copy returns a pointer to a copy of the StationURL. Requires type assertion when used
func (su *StationURL) Copy() RVType {
	copied := *su
	return &copied
}

// Equals checks if the input is equal in value to the current instance
func (su *StationURL) Equals(o RVType) bool {
	other, ok := o.(*StationURL)
	if !ok {
		return false
	}

	return *su == *other
}

func (su *StationURL) decodeFromString(raw string) {
	*su = StationURL{}

	schemeSplit := strings.SplitN(raw, ":/", 2)
	su.Scheme = schemeSplit[0]

	if len(schemeSplit) < 2 {
		return
	}

	for _, field := range strings.Split(schemeSplit[1], ";") {
		kv := strings.SplitN(field, "=", 2)
		if len(kv) != 2 {
			continue
		}

		for _, entry := range stationURLFieldNames {
			if entry.key == kv[0] {
				entry.set(su, kv[1])
				break
			}
		}
	}
}

// EncodeToString reassembles the StationURL's "scheme:/key=value;..." form
func (su *StationURL) EncodeToString() string {
	var fields []string

	for _, entry := range stationURLFieldNames {
		value := entry.get(su)
		if value != "" {
			fields = append(fields, entry.key+"="+value)
		}
	}

	if len(fields) == 0 {
		return su.Scheme + ":/"
	}

	return su.Scheme + ":/" + strings.Join(fields, ";")
}

// NewStationURL returns a new, empty StationURL
func NewStationURL() *StationURL {
	return &StationURL{}
}

// NewStationURLFromString parses a StationURL out of its encoded form
func NewStationURLFromString(raw string) *StationURL {
	su := &StationURL{}
	su.decodeFromString(raw)
	return su
}
