package enums

// AIHealthStatus is the tri-state result of probing the inference service.
type AIHealthStatus string

const (
	// AIHealthOK means the status endpoint answered 200.
	AIHealthOK AIHealthStatus = "ok"
	// AIHealthUnhealthy means the service answered with a non-200 status.
	AIHealthUnhealthy AIHealthStatus = "unhealthy"
	// AIHealthUnavailable means the service could not be reached at all.
	AIHealthUnavailable AIHealthStatus = "unavailable"
)

// String implements fmt.Stringer.
func (a AIHealthStatus) String() string {
	return string(a)
}
