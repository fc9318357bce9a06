package entitlement

// Feature tags a gated capability
type Feature string

// Gated features
const (
	FeatureClients      Feature = "clients"
	FeatureProjects     Feature = "projects"
	FeatureInvoices     Feature = "invoices"
	FeatureTimeTracking Feature = "time_tracking"
	FeatureStorage      Feature = "storage"
	FeatureInsights     Feature = "insights"
)

// Features lists every known feature tag
var Features = []Feature{
	FeatureClients, FeatureProjects, FeatureInvoices,
	FeatureTimeTracking, FeatureStorage, FeatureInsights,
}

// Valid reports whether f is a known feature
func (f Feature) Valid() bool {
	for _, known := range Features {
		if f == known {
			return true
		}
	}
	return false
}

// State is the resolution state of an entitlement
type State string

// Entitlement states
const (
	StateLoading State = "loading"
	StateAllowed State = "allowed"
	StateBlocked State = "blocked"
)

// Entitlement pairs a state with the info it was resolved from. Info is nil
// while loading.
type Entitlement struct {
	State State      `json:"state"`
	Info  *TrialInfo `json:"info,omitempty"`
}

// Loading is the entitlement before the profile has been read
func Loading() Entitlement {
	return Entitlement{State: StateLoading}
}

// Resolve builds the loaded entitlement for info
func Resolve(info TrialInfo) Entitlement {
	state := StateBlocked
	if info.CanUseFeatures {
		state = StateAllowed
	}
	return Entitlement{State: state, Info: &info}
}

// Known reports whether the entitlement has been loaded
func (e Entitlement) Known() bool {
	return e.State != StateLoading && e.Info != nil
}

// CanUseFeatures is optimistic while loading
func (e Entitlement) CanUseFeatures() bool {
	if !e.Known() {
		return true
	}
	return e.Info.CanUseFeatures
}

// HasReachedLimit is true only once loaded and expired. The feature's numeric
// quota is not compared against usage.
func (e Entitlement) HasReachedLimit(feature Feature) bool {
	if !e.Known() {
		return false
	}
	return e.Info.IsExpired
}
