package domain

type CtxKey string

const (
	KeyPrincipal CtxKey = "Principal"
	KeyRequestID CtxKey = "RequestID"
)

// SeekerPrincipal is the authenticated caller on seeker-only routes.
type SeekerPrincipal struct {
	ID string
}

// EmployerPrincipal is the authenticated caller on employer-only routes.
type EmployerPrincipal struct {
	ID string
}
