package core

// Transformer rewrites a skeleton after extraction, e.g. to redact secrets.
type Transformer interface {
	Transform(s *Skeleton) error
}

// Chain applies transformers to s in order, stopping at the first error.
func Chain(s *Skeleton, transformers ...Transformer) error {
	for _, t := range transformers {
		if t == nil {
			continue
		}
		if err := t.Transform(s); err != nil {
			return err
		}
	}
	return nil
}
