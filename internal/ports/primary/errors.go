package primary

import "fmt"

// IngestionError reports input that cannot be read or has no identifiable schema.
// It is fatal: the lifecycle run aborts before any store mutation.
type IngestionError struct {
	Reason string
	Err    error
}

func (e *IngestionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ingestion failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("ingestion failed: %s", e.Reason)
}

func (e *IngestionError) Unwrap() error { return e.Err }

// StorageError reports a transaction that was rolled back.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// PolicyError reports a single retention sub-policy that failed while the
// remaining policies still ran.
type PolicyError struct {
	Policy string
	Err    error
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("retention policy %s failed: %v", e.Policy, e.Err)
}

func (e *PolicyError) Unwrap() error { return e.Err }
