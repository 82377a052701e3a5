package models

// StoresRequest uses pointers so a missing coordinate is distinguishable
// from the equator or the prime meridian.
type StoresRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func (r *StoresRequest) Validate() error {
	if r.Lat == nil || r.Lng == nil {
		return badRequest("Missing or invalid lat/lng")
	}
	if *r.Lat < -90 || *r.Lat > 90 || *r.Lng < -180 || *r.Lng > 180 {
		return badRequest("Missing or invalid lat/lng")
	}
	return nil
}

type NearbyStore struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Rating  *float64 `json:"rating,omitempty"`
	URI     string   `json:"uri"`
}
