//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// ListOptions controls paging and filtering for resource listings.
// Filtering semantics are owned by the backend; the client forwards them.
type ListOptions struct {
	Limit  int
	Offset int
	Q      string // substring match, backend-defined fields
	Status string // exact match where the resource has a status
}
