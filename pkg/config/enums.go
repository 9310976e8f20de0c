package config

// TaggerFailurePolicy decides what happens to a unit whose tagger call failed
type TaggerFailurePolicy string

const (
	// TaggerFailureDegrade masks the unit with the regex stage only and flags it degraded
	TaggerFailureDegrade TaggerFailurePolicy = "degrade"
	// TaggerFailureStrict excludes the unit from output and reports it
	TaggerFailureStrict TaggerFailurePolicy = "strict"
)

// IsValid checks if the failure policy is valid
func (p TaggerFailurePolicy) IsValid() bool {
	switch p {
	case TaggerFailureDegrade, TaggerFailureStrict:
		return true
	default:
		return false
	}
}

// TaggerTransport selects how the entity tagger is reached
type TaggerTransport string

const (
	// TaggerTransportNone disables the entity stage (regex-only masking)
	TaggerTransportNone TaggerTransport = "none"
	// TaggerTransportHTTP talks JSON over HTTP
	TaggerTransportHTTP TaggerTransport = "http"
	// TaggerTransportGRPC talks gRPC with structpb messages
	TaggerTransportGRPC TaggerTransport = "grpc"
)

// IsValid checks if the transport is valid
func (t TaggerTransport) IsValid() bool {
	switch t {
	case TaggerTransportNone, TaggerTransportHTTP, TaggerTransportGRPC:
		return true
	default:
		return false
	}
}

// OffsetUnit is the unit a tagger reports span offsets in
type OffsetUnit string

const (
	// OffsetUnitByte means offsets index UTF-8 bytes
	OffsetUnitByte OffsetUnit = "byte"
	// OffsetUnitRune means offsets index code points
	OffsetUnitRune OffsetUnit = "rune"
)

// IsValid checks if the offset unit is valid
func (u OffsetUnit) IsValid() bool {
	return u == OffsetUnitByte || u == OffsetUnitRune
}

// CacheBackend selects the tagger response cache
type CacheBackend string

const (
	CacheBackendNone   CacheBackend = "none"
	CacheBackendMemory CacheBackend = "memory"
	CacheBackendRedis  CacheBackend = "redis"
)

// IsValid checks if the cache backend is valid
func (b CacheBackend) IsValid() bool {
	switch b {
	case CacheBackendNone, CacheBackendMemory, CacheBackendRedis:
		return true
	default:
		return false
	}
}

// Gazetteer names a configured word list a rule pattern is generated from
type Gazetteer string

const (
	// GazetteerCities generates a city-name alternation from Masking.Cities
	GazetteerCities Gazetteer = "cities"
	// GazetteerTitles generates a title alternation from Masking.Titles
	GazetteerTitles Gazetteer = "titles"
)

// IsValid checks if the gazetteer is valid
func (g Gazetteer) IsValid() bool {
	return g == GazetteerCities || g == GazetteerTitles
}
