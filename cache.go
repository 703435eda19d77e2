package btbb

// Sighting summarises the packets seen for one LAP.
type Sighting struct {
	LAP     uint32 `json:"lap"`
	UAP     uint8  `json:"uap"`
	Hits    int    `json:"hits"`
	Headers int    `json:"headers"`
}

// Merge adds the counts of o into s. The UAP of o wins when o carries
// validated headers.
func (s *Sighting) Merge(o Sighting) {
	s.Hits += o.Hits
	if o.Headers > 0 {
		s.UAP = o.UAP
	}
	s.Headers += o.Headers
}

// SightingCache persists sightings between runs.
type SightingCache interface {
	Store(Sighting) error
	Load(lap uint32) (Sighting, error)
	All() ([]Sighting, error)
	Clear() error
}
