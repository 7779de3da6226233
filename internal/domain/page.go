package domain

import "encoding/json"

// Page is the list envelope returned by backend list endpoints.
// The backend returns either a bare JSON array or a {results, count}
// pagination envelope; UnmarshalJSON accepts both shapes.
type Page[T any] struct {
	Results []T `json:"results"`
	Count   int `json:"count"`
}

// UnmarshalJSON decodes either a bare array or a paginated envelope.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	// Bare array shape.
	var bare []T
	if err := json.Unmarshal(data, &bare); err == nil {
		p.Results = bare
		p.Count = len(bare)
		return nil
	}

	// Envelope shape. An alias type avoids recursing into this method.
	type envelope struct {
		Results []T `json:"results"`
		Count   int `json:"count"`
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	p.Results = env.Results
	p.Count = env.Count
	return nil
}
